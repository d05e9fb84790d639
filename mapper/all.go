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

	"golang.org/x/sync/errgroup"
)

// Indices bundles every index of a Mapping.
type Indices struct {
	GeneToPhenotypes       GenePhenotypes
	PhenotypeToGenes       PhenotypeGenes
	GeneToDiseases         GeneDiseases
	PhenotypeNameToNCBIIDs PhenotypeNameNCBIIDs
	NCBIToSymbol           NCBISymbols
}

// BuildAll runs the five queries of m concurrently. It returns either every
// index or the first error; the remaining queries are cancelled.
func BuildAll(ctx context.Context, m Mapping) (*Indices, error) {
	var res Indices
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		res.GeneToPhenotypes, err = m.GeneToPhenotypes(ctx)
		return err
	})
	g.Go(func() (err error) {
		res.PhenotypeToGenes, err = m.PhenotypeToGenes(ctx)
		return err
	})
	g.Go(func() (err error) {
		res.GeneToDiseases, err = m.GeneToDiseases(ctx)
		return err
	})
	g.Go(func() (err error) {
		res.PhenotypeNameToNCBIIDs, err = m.PhenotypeNameToNCBIIDs(ctx)
		return err
	})
	g.Go(func() (err error) {
		res.NCBIToSymbol, err = m.NCBIToSymbol(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &res, nil
}
