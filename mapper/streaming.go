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

	"github.com/hpo2gene/hpo2gene/schema"
	"github.com/hpo2gene/hpo2gene/storage"
)

// StreamingMapper keeps only the location of its source. Every query opens
// the source, decodes it row by row and closes it again, so source errors
// surface at query time.
type StreamingMapper struct {
	src  *storage.Source
	opts mapperOpts
}

func NewStreamingMapper(src *storage.Source, opts ...Option) *StreamingMapper {
	return &StreamingMapper{src: src, opts: buildOpts(opts)}
}

// StreamingMapperFromFile is NewStreamingMapper over a local file. It does no
// I/O.
func StreamingMapperFromFile(path string, opts ...Option) *StreamingMapper {
	return NewStreamingMapper(storage.NewFileSource(path), opts...)
}

func (m *StreamingMapper) GeneToPhenotypes(ctx context.Context) (_ GenePhenotypes, err error) {
	ctx, span := startSpan(ctx, "StreamingMapper.GeneToPhenotypes", m.src)
	defer func() { endSpan(span, err) }()

	idx := make(GenePhenotypes)
	if _, err := scan(ctx, m.src, m.opts, func(rec schema.Record) {
		addToSet(idx, rec.GeneSymbol, rec.PhenotypeID)
	}); err != nil {
		return nil, err
	}
	return idx, nil
}

func (m *StreamingMapper) PhenotypeToGenes(ctx context.Context) (_ PhenotypeGenes, err error) {
	ctx, span := startSpan(ctx, "StreamingMapper.PhenotypeToGenes", m.src)
	defer func() { endSpan(span, err) }()

	idx := make(PhenotypeGenes)
	if _, err := scan(ctx, m.src, m.opts, func(rec schema.Record) {
		addToSet(idx, rec.PhenotypeID, rec.GeneSymbol)
	}); err != nil {
		return nil, err
	}
	return idx, nil
}

func (m *StreamingMapper) GeneToDiseases(ctx context.Context) (_ GeneDiseases, err error) {
	ctx, span := startSpan(ctx, "StreamingMapper.GeneToDiseases", m.src)
	defer func() { endSpan(span, err) }()

	idx := make(GeneDiseases)
	if _, err := scan(ctx, m.src, m.opts, func(rec schema.Record) {
		addToSet(idx, rec.GeneSymbol, rec.DiseaseID)
	}); err != nil {
		return nil, err
	}
	return idx, nil
}

func (m *StreamingMapper) PhenotypeNameToNCBIIDs(ctx context.Context) (_ PhenotypeNameNCBIIDs, err error) {
	ctx, span := startSpan(ctx, "StreamingMapper.PhenotypeNameToNCBIIDs", m.src)
	defer func() { endSpan(span, err) }()

	idx := make(PhenotypeNameNCBIIDs)
	if _, err := scan(ctx, m.src, m.opts, func(rec schema.Record) {
		addToSet(idx, rec.PhenotypeName, rec.NCBIGeneID)
	}); err != nil {
		return nil, err
	}
	return idx, nil
}

func (m *StreamingMapper) NCBIToSymbol(ctx context.Context) (_ NCBISymbols, err error) {
	ctx, span := startSpan(ctx, "StreamingMapper.NCBIToSymbol", m.src)
	defer func() { endSpan(span, err) }()

	idx := make(NCBISymbols)
	if _, err := scan(ctx, m.src, m.opts, func(rec schema.Record) {
		putFirst(idx, rec.NCBIGeneID, rec.GeneSymbol)
	}); err != nil {
		return nil, err
	}
	return idx, nil
}
