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
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/hpo2gene/hpo2gene/schema"
)

// tsvReadBufferSize is the initial read buffer; longer lines still decode.
const tsvReadBufferSize = 64 * 1024

type tsvReader struct {
	rc io.ReadCloser
	br *bufio.Reader

	line int
	eof  bool
}

// NewTSVReader decodes tab separated rows from rc. The first line is the
// header and is skipped. Fields are split on tabs only; quotes are plain
// text. The reader owns rc and closes it on Close.
func NewTSVReader(rc io.ReadCloser) RecordReader {
	return &tsvReader{rc: rc, br: bufio.NewReaderSize(rc, tsvReadBufferSize)}
}

func (r *tsvReader) Next() (schema.Record, error) {
	if r.line == 0 {
		if _, err := r.readLine(); err != nil {
			return schema.Record{}, err
		}
	}

	line, err := r.readLine()
	if err != nil {
		return schema.Record{}, err
	}
	rec, err := schema.ParseFields(strings.Split(line, "\t"))
	if err != nil {
		return schema.Record{}, &schema.RowError{Line: r.line, Err: err}
	}
	return rec, nil
}

// readLine returns the next line without its terminator. A final line
// without a newline is returned as is; io.EOF follows it.
func (r *tsvReader) readLine() (string, error) {
	if r.eof {
		return "", io.EOF
	}
	s, err := r.br.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		r.eof = true
		if s == "" {
			return "", io.EOF
		}
	}
	r.line++
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r"), nil
}

func (r *tsvReader) Close() error {
	return r.rc.Close()
}
