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

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hpo2gene/hpo2gene/mapper"
	"github.com/hpo2gene/hpo2gene/termid"
	"github.com/hpo2gene/hpo2gene/util"
)

// table is an index flattened to strings, values sorted.
type table map[string][]string

type query struct {
	use   string
	short string
	run   func(ctx context.Context, m mapper.Mapping) (table, error)
}

var queries = []query{
	{
		use:   "gene-to-phenotypes",
		short: "Phenotype term ids per gene symbol",
		run: func(ctx context.Context, m mapper.Mapping) (table, error) {
			idx, err := m.GeneToPhenotypes(ctx)
			if err != nil {
				return nil, err
			}
			t := make(table, len(idx))
			for gene, ids := range idx {
				t[gene] = termIDStrings(ids)
			}
			return t, nil
		},
	},
	{
		use:   "phenotype-to-genes",
		short: "Gene symbols per phenotype term id",
		run: func(ctx context.Context, m mapper.Mapping) (table, error) {
			idx, err := m.PhenotypeToGenes(ctx)
			if err != nil {
				return nil, err
			}
			t := make(table, len(idx))
			for id, genes := range idx {
				t[id.String()] = util.MergeUnsortedSlices(0, genes.Slice())
			}
			return t, nil
		},
	},
	{
		use:   "gene-to-diseases",
		short: "Disease ids per gene symbol",
		run: func(ctx context.Context, m mapper.Mapping) (table, error) {
			idx, err := m.GeneToDiseases(ctx)
			if err != nil {
				return nil, err
			}
			t := make(table, len(idx))
			for gene, ids := range idx {
				t[gene] = termIDStrings(ids)
			}
			return t, nil
		},
	},
	{
		use:   "phenotype-name-to-ncbi",
		short: "NCBI gene ids per phenotype name",
		run: func(ctx context.Context, m mapper.Mapping) (table, error) {
			idx, err := m.PhenotypeNameToNCBIIDs(ctx)
			if err != nil {
				return nil, err
			}
			t := make(table, len(idx))
			for name, ids := range idx {
				t[name] = util.MergeUnsortedSlices(0, ids.Slice())
			}
			return t, nil
		},
	},
	{
		use:   "ncbi-to-symbol",
		short: "Gene symbol per NCBI gene id",
		run: func(ctx context.Context, m mapper.Mapping) (table, error) {
			idx, err := m.NCBIToSymbol(ctx)
			if err != nil {
				return nil, err
			}
			t := make(table, len(idx))
			for id, symbol := range idx {
				t[id] = []string{symbol}
			}
			return t, nil
		},
	},
}

func termIDStrings(ids mapper.Set[termid.TermID]) []string {
	res := make([]string, 0, len(ids))
	for id := range ids {
		res = append(res, id.String())
	}
	return util.MergeUnsortedSlices(0, res)
}

func newQueryCmd(opts *globalOptions, q query) *cobra.Command {
	return &cobra.Command{
		Use:   q.use + " [KEY...]",
		Short: q.short,
		RunE: func(cmd *cobra.Command, keys []string) error {
			ctx := cmd.Context()
			m, err := opts.mapping(ctx)
			if err != nil {
				return err
			}
			t, err := q.run(ctx, m)
			if err != nil {
				return err
			}
			return printTable(cmd.OutOrStdout(), cmd.ErrOrStderr(), t, keys)
		},
	}
}

// printTable writes one "key<TAB>v1,v2" line per key. Without keys every
// entry is printed in key order.
func printTable(out, errOut io.Writer, t table, keys []string) error {
	if len(keys) == 0 {
		keys = util.SortedKeys(t)
	}

	missing := 0
	for _, k := range keys {
		vs, ok := t[k]
		if !ok {
			fmt.Fprintf(errOut, "%s: not found\n", k)
			missing++
			continue
		}
		if _, err := fmt.Fprintf(out, "%s\t%s\n", k, strings.Join(vs, ",")); err != nil {
			return err
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d of %d keys not found", missing, len(keys))
	}
	return nil
}
