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

	"github.com/hpo2gene/hpo2gene/termid"
)

const (
	PhenotypeIDColumn   = "hpo_id"
	PhenotypeNameColumn = "hpo_name"
	NCBIGeneIDColumn    = "ncbi_gene_id"
	GeneSymbolColumn    = "gene_symbol"
	DiseaseIDColumn     = "disease_id"

	NumColumns = 5
)

// Columns lists the dataset columns in file order.
var Columns = [NumColumns]string{
	PhenotypeIDColumn,
	PhenotypeNameColumn,
	NCBIGeneIDColumn,
	GeneSymbolColumn,
	DiseaseIDColumn,
}

// Record is one validated dataset row.
type Record struct {
	PhenotypeID   termid.TermID
	PhenotypeName string
	NCBIGeneID    string
	GeneSymbol    string
	DiseaseID     termid.TermID
}

// Row is the raw form of a record, before identifier validation. It doubles
// as the Parquet row type.
type Row struct {
	PhenotypeID   string `parquet:"hpo_id,dict"`
	PhenotypeName string `parquet:"hpo_name,dict"`
	NCBIGeneID    string `parquet:"ncbi_gene_id,dict"`
	GeneSymbol    string `parquet:"gene_symbol,dict"`
	DiseaseID     string `parquet:"disease_id,dict"`
}

// Record validates the identifier columns of r.
func (r Row) Record() (Record, error) {
	hpo, err := termid.Parse(r.PhenotypeID)
	if err != nil {
		return Record{}, fmt.Errorf("%w: column %s: %w", ErrInvalidIdentifier, PhenotypeIDColumn, err)
	}
	disease, err := termid.Parse(r.DiseaseID)
	if err != nil {
		return Record{}, fmt.Errorf("%w: column %s: %w", ErrInvalidIdentifier, DiseaseIDColumn, err)
	}
	return Record{
		PhenotypeID:   hpo,
		PhenotypeName: r.PhenotypeName,
		NCBIGeneID:    r.NCBIGeneID,
		GeneSymbol:    r.GeneSymbol,
		DiseaseID:     disease,
	}, nil
}

// RowOf returns the raw form of rec.
func RowOf(rec Record) Row {
	return Row{
		PhenotypeID:   rec.PhenotypeID.String(),
		PhenotypeName: rec.PhenotypeName,
		NCBIGeneID:    rec.NCBIGeneID,
		GeneSymbol:    rec.GeneSymbol,
		DiseaseID:     rec.DiseaseID.String(),
	}
}

// ParseFields builds a record from the fields of one delimited line. The
// fields must be in Columns order.
func ParseFields(fields []string) (Record, error) {
	if len(fields) != NumColumns {
		return Record{}, fmt.Errorf("%w: expected %d columns, got %d", ErrMalformedRow, NumColumns, len(fields))
	}
	return Row{
		PhenotypeID:   fields[0],
		PhenotypeName: fields[1],
		NCBIGeneID:    fields[2],
		GeneSymbol:    fields[3],
		DiseaseID:     fields[4],
	}.Record()
}
