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
	"errors"
	"fmt"
	"io"

	"github.com/efficientgo/core/errcapture"
	"github.com/hashicorp/go-multierror"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hpo2gene/hpo2gene/reader"
	"github.com/hpo2gene/hpo2gene/schema"
	"github.com/hpo2gene/hpo2gene/storage"
)

const (
	// maxReportedRowErrors bounds the row errors kept for the lenient summary.
	maxReportedRowErrors = 10
	ctxCheckInterval     = 1024
)

var tracer = otel.Tracer("github.com/hpo2gene/hpo2gene/mapper")

type scanStats struct {
	records int
	skipped int
}

// scan decodes src from the start and hands each valid record to fn in source
// order. Bad rows abort the scan under Strict and are skipped under Lenient.
func scan(ctx context.Context, src *storage.Source, opts mapperOpts, fn func(schema.Record)) (stats scanStats, err error) {
	rr, err := reader.Open(ctx, src)
	if err != nil {
		return stats, err
	}
	defer errcapture.Do(&err, rr.Close, "close %s", src.Name())

	var rowErrs *multierror.Error
	for i := 0; ; i++ {
		if i%ctxCheckInterval == 0 {
			if cerr := ctx.Err(); cerr != nil {
				return stats, cerr
			}
		}

		rec, rerr := rr.Next()
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			if opts.rowPolicy == Lenient && schema.IsRowError(rerr) {
				stats.skipped++
				if stats.skipped <= maxReportedRowErrors {
					rowErrs = multierror.Append(rowErrs, rerr)
				}
				continue
			}
			return stats, fmt.Errorf("unable to read %s: %w", src.Name(), rerr)
		}
		stats.records++
		fn(rec)
	}

	if stats.skipped > 0 {
		opts.logger.Warn("skipped rows failing validation",
			"source", src.Name(),
			"skipped", stats.skipped,
			"err", rowErrs.ErrorOrNil(),
		)
	}
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int("records", stats.records),
		attribute.Int("skipped", stats.skipped),
	)
	return stats, nil
}

func startSpan(ctx context.Context, name string, src *storage.Source) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("source", src.Name()),
		attribute.String("format", src.Format().String()),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
