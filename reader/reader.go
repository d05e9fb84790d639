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

// Package reader decodes dataset sources into records, one at a time.
package reader

import (
	"context"
	"fmt"

	"github.com/hpo2gene/hpo2gene/schema"
	"github.com/hpo2gene/hpo2gene/storage"
)

// RecordReader yields the records of a source in source order.
//
// Next returns io.EOF once the source is exhausted. A *schema.RowError
// reports a single bad row; the reader stays usable and the following call
// moves on to the next row. Any other error is terminal.
type RecordReader interface {
	Next() (schema.Record, error)
	Close() error
}

// Open returns a RecordReader over src, choosing the decoder by src.Format().
func Open(ctx context.Context, src *storage.Source) (RecordReader, error) {
	switch src.Format() {
	case storage.FormatTSV:
		rc, err := src.Open(ctx)
		if err != nil {
			return nil, err
		}
		return NewTSVReader(rc), nil
	case storage.FormatParquet:
		ra, size, err := src.ReaderAt(ctx)
		if err != nil {
			return nil, err
		}
		return NewParquetReader(ra, size)
	default:
		return nil, fmt.Errorf("unsupported source format %v", src.Format())
	}
}
