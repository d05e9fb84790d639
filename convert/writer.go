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

package convert

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/parquet-go/parquet-go"
	"github.com/thanos-io/objstore"
	"golang.org/x/sync/errgroup"

	"github.com/hpo2gene/hpo2gene/schema"
)

// pipeFileWriter encodes rows into a pipe whose other end is uploaded to the
// bucket concurrently, so the file is never buffered in full.
type pipeFileWriter struct {
	pw       *parquet.GenericWriter[schema.Row]
	w        *io.PipeWriter
	errGroup *errgroup.Group
}

func newPipeFileWriter(ctx context.Context, bkt objstore.Bucket, name string, options ...parquet.WriterOption) *pipeFileWriter {
	errGroup, ctx := errgroup.WithContext(ctx)

	r, w := io.Pipe()
	errGroup.Go(func() error {
		defer func() { _ = r.Close() }()
		return bkt.Upload(ctx, name, r)
	})

	return &pipeFileWriter{
		pw:       parquet.NewGenericWriter[schema.Row](w, options...),
		w:        w,
		errGroup: errGroup,
	}
}

func (s *pipeFileWriter) Write(rows []schema.Row) (int, error) {
	n, err := s.pw.Write(rows)
	if err != nil {
		return n, err
	}
	if n != len(rows) {
		return n, fmt.Errorf("unable to write rows: %d != %d", n, len(rows))
	}
	return n, nil
}

// abort fails the upload with cause and waits for it to finish.
func (s *pipeFileWriter) abort(cause error) {
	_ = s.w.CloseWithError(cause)
	_ = s.errGroup.Wait()
}

func (s *pipeFileWriter) Close() error {
	var err error
	if errClose := s.pw.Close(); errClose != nil {
		err = multierror.Append(err, errClose)
	}
	if errClose := s.w.Close(); errClose != nil {
		err = multierror.Append(err, errClose)
	}
	if errClose := s.errGroup.Wait(); errClose != nil {
		err = multierror.Append(err, errClose)
	}
	return err
}
