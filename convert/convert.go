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

// Package convert writes a Parquet rendition of a phenotype-to-genes dataset.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/efficientgo/core/errcapture"
	"github.com/parquet-go/parquet-go"
	"github.com/thanos-io/objstore"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/hpo2gene/hpo2gene/mapper"
	"github.com/hpo2gene/hpo2gene/reader"
	"github.com/hpo2gene/hpo2gene/schema"
	"github.com/hpo2gene/hpo2gene/storage"
)

var tracer = otel.Tracer("github.com/hpo2gene/hpo2gene/convert")

type convertOpts struct {
	rowGroupSize    int
	pageBufferSize  int
	writeBufferSize int
	batchSize       int
	rowPolicy       mapper.RowPolicy
}

// DefaultRowGroupSize is the number of rows per Parquet row group unless
// WithRowGroupSize says otherwise.
const DefaultRowGroupSize = 100_000

var DefaultConvertOpts = convertOpts{
	rowGroupSize:    DefaultRowGroupSize,
	pageBufferSize:  parquet.DefaultPageBufferSize,
	writeBufferSize: parquet.DefaultWriteBufferSize,
	batchSize:       1024,
	rowPolicy:       mapper.Strict,
}

type ConvertOption func(*convertOpts)

func WithRowGroupSize(size int) ConvertOption {
	return func(opts *convertOpts) {
		opts.rowGroupSize = size
	}
}

func WithPageBufferSize(size int) ConvertOption {
	return func(opts *convertOpts) {
		opts.pageBufferSize = size
	}
}

func WithWriteBufferSize(size int) ConvertOption {
	return func(opts *convertOpts) {
		opts.writeBufferSize = size
	}
}

// WithRowPolicy decides whether rows failing validation abort the conversion
// or are left out of the output.
func WithRowPolicy(p mapper.RowPolicy) ConvertOption {
	return func(opts *convertOpts) {
		opts.rowPolicy = p
	}
}

// ConvertTSV reads every record of src and uploads them as a Parquet object
// called name into bkt. It returns the number of rows written. On failure the
// partially uploaded object is removed.
func ConvertTSV(ctx context.Context, src *storage.Source, bkt objstore.Bucket, name string, logger *slog.Logger, opts ...ConvertOption) (n int64, err error) {
	cfg := DefaultConvertOpts
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, span := tracer.Start(ctx, "ConvertTSV")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(attribute.Int64("rows", n))
		span.End()
	}()

	rr, err := reader.Open(ctx, src)
	if err != nil {
		return 0, err
	}
	defer errcapture.Do(&err, rr.Close, "close %s", src.Name())

	w := newPipeFileWriter(ctx, bkt, name,
		parquet.MaxRowsPerRowGroup(int64(cfg.rowGroupSize)),
		parquet.PageBufferSize(cfg.pageBufferSize),
		parquet.WriteBufferSize(cfg.writeBufferSize),
	)

	n, skipped, err := copyRows(ctx, w, rr, cfg)
	if err != nil {
		w.abort(err)
		if derr := bkt.Delete(context.WithoutCancel(ctx), name); derr != nil && !bkt.IsObjNotFoundErr(derr) {
			logger.Warn("unable to remove partial object", "name", name, "err", derr)
		}
		return 0, fmt.Errorf("unable to convert %s: %w", src.Name(), err)
	}

	for k, v := range schema.Metadata(src.Name(), n) {
		w.pw.SetKeyValueMetadata(k, v)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("unable to close writer: %w", err)
	}

	logger.Info("converted dataset", "source", src.Name(), "target", name, "rows", n, "skipped", skipped)
	return n, nil
}

func copyRows(ctx context.Context, w *pipeFileWriter, rr reader.RecordReader, cfg convertOpts) (n int64, skipped int, err error) {
	batch := make([]schema.Row, 0, cfg.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if _, err := w.Write(batch); err != nil {
			return fmt.Errorf("unable to write rows: %w", err)
		}
		n += int64(len(batch))
		batch = batch[:0]
		return nil
	}

	for {
		rec, err := rr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if cfg.rowPolicy == mapper.Lenient && schema.IsRowError(err) {
				skipped++
				continue
			}
			return n, skipped, err
		}

		batch = append(batch, schema.RowOf(rec))
		if len(batch) == cap(batch) {
			if err := ctx.Err(); err != nil {
				return n, skipped, err
			}
			if err := flush(); err != nil {
				return n, skipped, err
			}
		}
	}
	return n, skipped, flush()
}
