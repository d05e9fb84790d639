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
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpo2gene/hpo2gene/schema"
	"github.com/hpo2gene/hpo2gene/storage"
	"github.com/hpo2gene/hpo2gene/termid"
)

const (
	samplePath    = "testdata/sample_phenotype_to_genes.txt"
	malformedPath = "testdata/malformed_phenotype_to_genes.txt"
)

var (
	hpoMyelination = termid.MustParse("HP:0002188")
	hpoSeizure     = termid.MustParse("HP:0001250")
	hpoHearing     = termid.MustParse("HP:0000365")
	hpoDevDelay    = termid.MustParse("HP:0001263")

	omim619031 = termid.MustParse("OMIM:619031")
	omim619036 = termid.MustParse("OMIM:619036")
	omim300232 = termid.MustParse("OMIM:300232")
)

type strategy struct {
	name string
	open func(t *testing.T, path string, opts ...Option) (Mapping, error)
}

var strategies = []strategy{
	{
		name: "memory",
		open: func(t *testing.T, path string, opts ...Option) (Mapping, error) {
			m, err := MemoryMapperFromFile(context.Background(), path, opts...)
			if err != nil {
				return nil, err
			}
			return m, nil
		},
	},
	{
		name: "streaming",
		open: func(t *testing.T, path string, opts ...Option) (Mapping, error) {
			return StreamingMapperFromFile(path, opts...), nil
		},
	},
}

func TestSampleFile(t *testing.T) {
	ctx := context.Background()

	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			m, err := s.open(t, samplePath)
			require.NoError(t, err)

			geneToHPO, err := m.GeneToPhenotypes(ctx)
			require.NoError(t, err)
			require.Equal(t, NewSet(hpoMyelination, hpoSeizure), geneToHPO["ALG14"])
			require.Equal(t, NewSet(hpoMyelination, hpoHearing), geneToHPO["AIFM1"])
			require.Equal(t, NewSet(hpoDevDelay), geneToHPO["ALG14-AS1"])
			require.Len(t, geneToHPO, 3)

			hpoToGenes, err := m.PhenotypeToGenes(ctx)
			require.NoError(t, err)
			require.Equal(t, NewSet("ALG14", "AIFM1"), hpoToGenes[hpoMyelination])
			require.Equal(t, NewSet("ALG14"), hpoToGenes[hpoSeizure])
			require.Len(t, hpoToGenes, 4)

			geneToDiseases, err := m.GeneToDiseases(ctx)
			require.NoError(t, err)
			require.Equal(t, NewSet(omim619031, omim619036), geneToDiseases["ALG14"])
			require.Equal(t, NewSet(omim619036, omim300232), geneToDiseases["AIFM1"])

			nameToNCBI, err := m.PhenotypeNameToNCBIIDs(ctx)
			require.NoError(t, err)
			require.Equal(t, NewSet("199857", "9131"), nameToNCBI["Delayed CNS myelination"])
			require.Equal(t, NewSet("9131"), nameToNCBI["Hearing impairment"])

			ncbiToSymbol, err := m.NCBIToSymbol(ctx)
			require.NoError(t, err)
			require.Equal(t, NCBISymbols{"199857": "ALG14", "9131": "AIFM1"}, ncbiToSymbol)
		})
	}
}

func TestSetSemantics(t *testing.T) {
	ctx := context.Background()

	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			m, err := s.open(t, samplePath)
			require.NoError(t, err)

			// OMIM:300232 appears in two identical AIFM1 rows.
			geneToDiseases, err := m.GeneToDiseases(ctx)
			require.NoError(t, err)
			require.Equal(t, 2, geneToDiseases["AIFM1"].Len())

			// ALG14 carries HP:0001250 twice, with different diseases.
			hpoToGenes, err := m.PhenotypeToGenes(ctx)
			require.NoError(t, err)
			require.Equal(t, 1, hpoToGenes[hpoSeizure].Len())
		})
	}
}

func TestFirstWriteWins(t *testing.T) {
	ctx := context.Background()

	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			m, err := s.open(t, samplePath)
			require.NoError(t, err)

			// 199857 is paired with ALG14-AS1 on the last row.
			ncbiToSymbol, err := m.NCBIToSymbol(ctx)
			require.NoError(t, err)
			require.Equal(t, "ALG14", ncbiToSymbol["199857"])
		})
	}
}

func TestIdempotence(t *testing.T) {
	ctx := context.Background()

	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			m, err := s.open(t, samplePath)
			require.NoError(t, err)

			first, err := BuildAll(ctx, m)
			require.NoError(t, err)
			second, err := BuildAll(ctx, m)
			require.NoError(t, err)
			require.Equal(t, first, second)

			// results are owned by the caller
			first.NCBIToSymbol["199857"] = "changed"
			first.GeneToPhenotypes["ALG14"].Add(hpoHearing)
			third, err := BuildAll(ctx, m)
			require.NoError(t, err)
			require.Equal(t, second, third)
		})
	}
}

func TestStrategiesAgree(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		path   string
		policy RowPolicy
	}{
		{path: samplePath, policy: Strict},
		{path: samplePath, policy: Lenient},
		{path: malformedPath, policy: Lenient},
	} {
		t.Run(filepath.Base(tc.path)+"/"+tc.policy.String(), func(t *testing.T) {
			mem, err := MemoryMapperFromFile(ctx, tc.path, WithRowPolicy(tc.policy))
			require.NoError(t, err)
			stream := StreamingMapperFromFile(tc.path, WithRowPolicy(tc.policy))

			want, err := BuildAll(ctx, mem)
			require.NoError(t, err)
			got, err := BuildAll(ctx, stream)
			require.NoError(t, err)
			require.Equal(t, want, got)
		})
	}
}

func TestMalformedRowStrict(t *testing.T) {
	ctx := context.Background()

	_, err := MemoryMapperFromFile(ctx, malformedPath)
	require.ErrorIs(t, err, schema.ErrMalformedRow)
	var re *schema.RowError
	require.ErrorAs(t, err, &re)
	require.Equal(t, 3, re.Line)

	m := StreamingMapperFromFile(malformedPath, WithRowPolicy(Strict))
	queries := map[string]func() error{
		"GeneToPhenotypes":       func() error { _, err := m.GeneToPhenotypes(ctx); return err },
		"PhenotypeToGenes":       func() error { _, err := m.PhenotypeToGenes(ctx); return err },
		"GeneToDiseases":         func() error { _, err := m.GeneToDiseases(ctx); return err },
		"PhenotypeNameToNCBIIDs": func() error { _, err := m.PhenotypeNameToNCBIIDs(ctx); return err },
		"NCBIToSymbol":           func() error { _, err := m.NCBIToSymbol(ctx); return err },
	}
	for name, q := range queries {
		t.Run(name, func(t *testing.T) {
			err := q()
			require.ErrorIs(t, err, schema.ErrMalformedRow)
			require.True(t, schema.IsRowError(err))
		})
	}

	_, err = BuildAll(ctx, m)
	require.ErrorIs(t, err, schema.ErrMalformedRow)
}

func TestMalformedRowLenient(t *testing.T) {
	ctx := context.Background()

	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			m, err := s.open(t, malformedPath, WithRowPolicy(Lenient))
			require.NoError(t, err)

			all, err := BuildAll(ctx, m)
			require.NoError(t, err)

			require.Equal(t, GenePhenotypes{
				"ALG14": NewSet(hpoMyelination),
				"AIFM1": NewSet(hpoMyelination, hpoHearing),
			}, all.GeneToPhenotypes)
			require.Equal(t, PhenotypeGenes{
				hpoMyelination: NewSet("ALG14", "AIFM1"),
				hpoHearing:     NewSet("AIFM1"),
			}, all.PhenotypeToGenes)
			require.Equal(t, GeneDiseases{
				"ALG14": NewSet(omim619031),
				"AIFM1": NewSet(omim619036, omim300232),
			}, all.GeneToDiseases)
			require.Equal(t, PhenotypeNameNCBIIDs{
				"Delayed CNS myelination": NewSet("199857", "9131"),
				"Hearing impairment":      NewSet("9131"),
			}, all.PhenotypeNameToNCBIIDs)
			require.Equal(t, NCBISymbols{"199857": "ALG14", "9131": "AIFM1"}, all.NCBIToSymbol)
		})
	}
}

func TestLenientQuotedLabels(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "quoted.txt")
	data := "hpo_id\thpo_name\tncbi_gene_id\tgene_symbol\tdisease_id\n" +
		"HP:0000001\t\"Odd label\t1\tA\tOMIM:1\n" +
		"HP:0000002\t\"Unclosed\t2\n" +
		"HP:0002188\tDelayed CNS myelination\t199857\tALG14\tOMIM:619031\n" +
		"HP:0002188\tDelayed CNS myelination\t9131\tAIFM1\tOMIM:619036\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			m, err := s.open(t, path, WithRowPolicy(Lenient))
			require.NoError(t, err)

			idx, err := m.NCBIToSymbol(ctx)
			require.NoError(t, err)
			require.Equal(t, NCBISymbols{"1": "A", "199857": "ALG14", "9131": "AIFM1"}, idx)

			names, err := m.PhenotypeNameToNCBIIDs(ctx)
			require.NoError(t, err)
			require.Equal(t, NewSet("1"), names["\"Odd label"])
		})
	}
}

func TestLenientLogsSkippedRows(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	m, err := MemoryMapperFromFile(context.Background(), malformedPath, WithRowPolicy(Lenient), WithLogger(logger))
	require.NoError(t, err)
	require.Equal(t, 3, m.Len())
	require.Contains(t, buf.String(), "skipped rows failing validation")
	require.Contains(t, buf.String(), "skipped=2")
}

func TestSourceUnavailable(t *testing.T) {
	ctx := context.Background()
	missing := filepath.Join(t.TempDir(), "missing.txt")

	_, err := MemoryMapperFromFile(ctx, missing)
	require.True(t, storage.IsSourceUnavailable(err))

	// construction never fails, the query does
	m := StreamingMapperFromFile(missing)
	_, err = m.GeneToPhenotypes(ctx)
	require.True(t, storage.IsSourceUnavailable(err))
	_, err = m.NCBIToSymbol(ctx)
	require.True(t, storage.IsSourceUnavailable(err))
	_, err = BuildAll(ctx, m)
	require.True(t, storage.IsSourceUnavailable(err))
}

func TestStreamingRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := StreamingMapperFromFile(samplePath)
	_, err := m.PhenotypeToGenes(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseRowPolicy(t *testing.T) {
	for in, want := range map[string]RowPolicy{"": Strict, "strict": Strict, "LENIENT": Lenient} {
		got, err := ParseRowPolicy(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseRowPolicy("skip")
	require.Error(t, err)
}

func TestSet(t *testing.T) {
	s := NewSet("a", "b", "a")
	require.Equal(t, 2, s.Len())
	require.True(t, s.Has("a"))
	require.False(t, s.Has("c"))
	require.ElementsMatch(t, []string{"a", "b"}, s.Slice())
}
