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
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/thanos-io/objstore/providers/filesystem"

	"github.com/hpo2gene/hpo2gene/convert"
	"github.com/hpo2gene/hpo2gene/storage"
)

func newConvertCmd(opts *globalOptions) *cobra.Command {
	var (
		out          string
		rowGroupSize int
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Write the source as a Parquet file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if storage.FormatOf(out) != storage.FormatParquet {
				return fmt.Errorf("output %q must end in .parquet", out)
			}
			dir, name := filepath.Split(filepath.Clean(out))
			if dir == "" {
				dir = "."
			}
			bkt, err := filesystem.NewBucket(dir)
			if err != nil {
				return err
			}
			defer func() { _ = bkt.Close() }()

			n, err := convert.ConvertTSV(cmd.Context(), storage.NewFileSource(opts.cfg.Source), bkt, name, opts.logger,
				convert.WithRowGroupSize(rowGroupSize),
				convert.WithRowPolicy(opts.rowPolicy()),
			)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", n, out)
			return err
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output Parquet file")
	cmd.Flags().IntVar(&rowGroupSize, "row-group-size", convert.DefaultRowGroupSize, "rows per Parquet row group")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
