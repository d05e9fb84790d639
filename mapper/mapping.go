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

// Package mapper derives gene, phenotype and disease lookup indices from a
// phenotype-to-genes dataset.
//
// Two strategies implement Mapping. MemoryMapper reads the source once and
// answers every query from the resident records. StreamingMapper keeps only
// the source location and rescans it on every query. Given the same source
// and RowPolicy both return identical indices.
package mapper

import (
	"context"

	"github.com/hpo2gene/hpo2gene/termid"
)

type (
	// GenePhenotypes maps a gene symbol to its phenotype term ids.
	GenePhenotypes map[string]Set[termid.TermID]
	// PhenotypeGenes maps a phenotype term id to gene symbols.
	PhenotypeGenes map[termid.TermID]Set[string]
	// GeneDiseases maps a gene symbol to disease ids.
	GeneDiseases map[string]Set[termid.TermID]
	// PhenotypeNameNCBIIDs maps a phenotype name to NCBI gene ids.
	PhenotypeNameNCBIIDs map[string]Set[string]
	// NCBISymbols maps an NCBI gene id to the gene symbol of the first row
	// carrying it.
	NCBISymbols map[string]string
)

// Mapping is the set of derived indices served by every strategy. Each call
// builds a fresh index owned by the caller.
type Mapping interface {
	GeneToPhenotypes(ctx context.Context) (GenePhenotypes, error)
	PhenotypeToGenes(ctx context.Context) (PhenotypeGenes, error)
	GeneToDiseases(ctx context.Context) (GeneDiseases, error)
	PhenotypeNameToNCBIIDs(ctx context.Context) (PhenotypeNameNCBIIDs, error)
	NCBIToSymbol(ctx context.Context) (NCBISymbols, error)
}

var (
	_ Mapping = &MemoryMapper{}
	_ Mapping = &StreamingMapper{}
)

// Set is an unordered collection of distinct values.
type Set[T comparable] map[T]struct{}

func NewSet[T comparable](vs ...T) Set[T] {
	s := make(Set[T], len(vs))
	for _, v := range vs {
		s.Add(v)
	}
	return s
}

func (s Set[T]) Add(v T) { s[v] = struct{}{} }

func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

func (s Set[T]) Len() int { return len(s) }

// Slice returns the members of s in no particular order.
func (s Set[T]) Slice() []T {
	res := make([]T, 0, len(s))
	for v := range s {
		res = append(res, v)
	}
	return res
}

func addToSet[K, V comparable](m map[K]Set[V], k K, v V) {
	s, ok := m[k]
	if !ok {
		s = make(Set[V], 1)
		m[k] = s
	}
	s.Add(v)
}

// putFirst stores v under k unless k already has a value.
func putFirst[K comparable, V any](m map[K]V, k K, v V) {
	if _, ok := m[k]; !ok {
		m[k] = v
	}
}
