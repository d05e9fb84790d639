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

package mapper

import (
	"context"
	"fmt"

	"github.com/hpo2gene/hpo2gene/schema"
	"github.com/hpo2gene/hpo2gene/storage"
)

// MemoryMapper holds every valid record of its source and builds indices by
// walking them. It is safe for concurrent use.
type MemoryMapper struct {
	src     *storage.Source
	records []schema.Record
}

// NewMemoryMapper reads src in full. The source is released before returning.
func NewMemoryMapper(ctx context.Context, src *storage.Source, opts ...Option) (_ *MemoryMapper, err error) {
	cfg := buildOpts(opts)

	ctx, span := startSpan(ctx, "MemoryMapper.Load", src)
	defer func() { endSpan(span, err) }()

	var records []schema.Record
	stats, err := scan(ctx, src, cfg, func(rec schema.Record) {
		records = append(records, rec)
	})
	if err != nil {
		return nil, fmt.Errorf("unable to load records: %w", err)
	}
	cfg.logger.Debug("loaded records", "source", src.Name(), "records", stats.records, "skipped", stats.skipped)

	return &MemoryMapper{src: src, records: records}, nil
}

// MemoryMapperFromFile is NewMemoryMapper over a local file.
func MemoryMapperFromFile(ctx context.Context, path string, opts ...Option) (*MemoryMapper, error) {
	return NewMemoryMapper(ctx, storage.NewFileSource(path), opts...)
}

// Len returns the number of resident records.
func (m *MemoryMapper) Len() int {
	return len(m.records)
}

func (m *MemoryMapper) GeneToPhenotypes(ctx context.Context) (GenePhenotypes, error) {
	_, span := startSpan(ctx, "MemoryMapper.GeneToPhenotypes", m.src)
	defer endSpan(span, nil)

	idx := make(GenePhenotypes)
	for _, rec := range m.records {
		addToSet(idx, rec.GeneSymbol, rec.PhenotypeID)
	}
	return idx, nil
}

func (m *MemoryMapper) PhenotypeToGenes(ctx context.Context) (PhenotypeGenes, error) {
	_, span := startSpan(ctx, "MemoryMapper.PhenotypeToGenes", m.src)
	defer endSpan(span, nil)

	idx := make(PhenotypeGenes)
	for _, rec := range m.records {
		addToSet(idx, rec.PhenotypeID, rec.GeneSymbol)
	}
	return idx, nil
}

func (m *MemoryMapper) GeneToDiseases(ctx context.Context) (GeneDiseases, error) {
	_, span := startSpan(ctx, "MemoryMapper.GeneToDiseases", m.src)
	defer endSpan(span, nil)

	idx := make(GeneDiseases)
	for _, rec := range m.records {
		addToSet(idx, rec.GeneSymbol, rec.DiseaseID)
	}
	return idx, nil
}

func (m *MemoryMapper) PhenotypeNameToNCBIIDs(ctx context.Context) (PhenotypeNameNCBIIDs, error) {
	_, span := startSpan(ctx, "MemoryMapper.PhenotypeNameToNCBIIDs", m.src)
	defer endSpan(span, nil)

	idx := make(PhenotypeNameNCBIIDs)
	for _, rec := range m.records {
		addToSet(idx, rec.PhenotypeName, rec.NCBIGeneID)
	}
	return idx, nil
}

func (m *MemoryMapper) NCBIToSymbol(ctx context.Context) (NCBISymbols, error) {
	_, span := startSpan(ctx, "MemoryMapper.NCBIToSymbol", m.src)
	defer endSpan(span, nil)

	idx := make(NCBISymbols)
	for _, rec := range m.records {
		putFirst(idx, rec.NCBIGeneID, rec.GeneSymbol)
	}
	return idx, nil
}
