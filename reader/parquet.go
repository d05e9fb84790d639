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

package reader

import (
	"errors"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/hpo2gene/hpo2gene/schema"
)

const parquetReadBatch = 256

type parquetReader struct {
	r *parquet.GenericReader[schema.Row]

	buf  []schema.Row
	pos  int
	n    int
	rows int
	eof  bool
}

// NewParquetReader decodes records from a Parquet file of the given size.
func NewParquetReader(ra io.ReaderAt, size int64) (RecordReader, error) {
	f, err := parquet.OpenFile(ra, size)
	if err != nil {
		return nil, fmt.Errorf("unable to open parquet file: %w", err)
	}
	if err := schema.Validate(f.Schema()); err != nil {
		return nil, fmt.Errorf("unexpected parquet schema: %w", err)
	}
	return &parquetReader{
		r:   parquet.NewGenericReader[schema.Row](f),
		buf: make([]schema.Row, parquetReadBatch),
	}, nil
}

func (r *parquetReader) Next() (schema.Record, error) {
	if r.pos == r.n {
		if err := r.fill(); err != nil {
			return schema.Record{}, err
		}
	}
	row := r.buf[r.pos]
	r.pos++
	r.rows++

	rec, err := row.Record()
	if err != nil {
		return schema.Record{}, &schema.RowError{Line: r.rows, Err: err}
	}
	return rec, nil
}

func (r *parquetReader) fill() error {
	for {
		if r.eof {
			return io.EOF
		}
		n, err := r.r.Read(r.buf)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return fmt.Errorf("unable to read rows: %w", err)
			}
			r.eof = true
		}
		if n > 0 {
			r.pos, r.n = 0, n
			return nil
		}
	}
}

func (r *parquetReader) Close() error {
	return r.r.Close()
}
