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

// Command hpo2gene prints lookup indices derived from an HPO
// phenotype-to-genes file.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/prometheus/common/promslog"
	"github.com/spf13/cobra"

	"github.com/hpo2gene/hpo2gene/mapper"
	"github.com/hpo2gene/hpo2gene/storage"
)

type globalOptions struct {
	configFile string
	source     string
	strategy   string
	lenient    bool

	cfg    Config
	logger *slog.Logger
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	opts := &globalOptions{logger: logger}

	root := &cobra.Command{
		Use:          "hpo2gene",
		Short:        "Query gene, phenotype and disease indices of a phenotype-to-genes file",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.resolve(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "YAML config file")
	pf.StringVar(&opts.source, "source", "", "phenotype-to-genes file (.txt/.tsv, or .parquet)")
	pf.StringVar(&opts.strategy, "strategy", strategyEager, "indexing strategy: eager or streaming")
	pf.BoolVar(&opts.lenient, "lenient", false, "skip rows that fail validation instead of failing")

	for _, q := range queries {
		root.AddCommand(newQueryCmd(opts, q))
	}
	root.AddCommand(newConvertCmd(opts))
	return root
}

// resolve merges the config file with the flags that were set explicitly.
func (o *globalOptions) resolve(cmd *cobra.Command) error {
	o.cfg = defaultConfig()
	if o.configFile != "" {
		cfg, err := loadConfig(o.configFile)
		if err != nil {
			return err
		}
		o.cfg = cfg
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		o.cfg.Source = o.source
	}
	if flags.Changed("strategy") {
		o.cfg.Strategy = o.strategy
	}
	if flags.Changed("lenient") {
		if o.lenient {
			o.cfg.RowPolicy = mapper.Lenient.String()
		} else {
			o.cfg.RowPolicy = mapper.Strict.String()
		}
	}
	if err := o.cfg.validate(); err != nil {
		return err
	}

	if o.logger == nil {
		o.logger = promslog.New(&promslog.Config{})
	}
	return nil
}

func (o *globalOptions) rowPolicy() mapper.RowPolicy {
	p, _ := mapper.ParseRowPolicy(o.cfg.RowPolicy)
	return p
}

func (o *globalOptions) mapping(ctx context.Context) (mapper.Mapping, error) {
	src := storage.NewFileSource(o.cfg.Source)
	mopts := []mapper.Option{
		mapper.WithRowPolicy(o.rowPolicy()),
		mapper.WithLogger(o.logger),
	}

	if o.cfg.Strategy == strategyStreaming {
		return mapper.NewStreamingMapper(src, mopts...), nil
	}
	m, err := mapper.NewMemoryMapper(ctx, src, mopts...)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("loaded dataset", "source", o.cfg.Source, "records", m.Len())
	return m, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(nil).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
