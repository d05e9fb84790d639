// Copyright The Prometheus Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package schema

import (
	"fmt"

	"github.com/parquet-go/parquet-go"
)

const (
	SourceMd     = "hpo2gene_source"
	NumRecordsMd = "hpo2gene_num_records"
)

// ParquetSchema returns the schema of the Parquet rendition of the dataset.
func ParquetSchema() *parquet.Schema {
	return parquet.SchemaOf(Row{})
}

// Validate checks that s carries every dataset column as a string leaf.
func Validate(s *parquet.Schema) error {
	for _, col := range Columns {
		lc, ok := s.Lookup(col)
		if !ok {
			return fmt.Errorf("column %v not found", col)
		}
		if kind := lc.Node.Type().Kind(); kind != parquet.ByteArray {
			return fmt.Errorf("column %v has type %v, expected %v", col, kind, parquet.ByteArray)
		}
	}
	return nil
}

// Metadata returns the key/value metadata written alongside a converted file.
func Metadata(source string, numRecords int64) map[string]string {
	return map[string]string{
		SourceMd:     source,
		NumRecordsMd: fmt.Sprintf("%d", numRecords),
	}
}
