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

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/thanos-io/objstore"
	"github.com/thanos-io/objstore/providers/filesystem"
)

type Format int

const (
	FormatTSV Format = iota
	FormatParquet
)

func (f Format) String() string {
	switch f {
	case FormatTSV:
		return "tsv"
	case FormatParquet:
		return "parquet"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf infers the format of an object from its name.
func FormatOf(name string) Format {
	if strings.EqualFold(filepath.Ext(name), ".parquet") {
		return FormatParquet
	}
	return FormatTSV
}

// Source locates a dataset object in a bucket. A Source holds no open
// handles; every Open acquires the object anew.
type Source struct {
	bkt    objstore.BucketReader
	name   string
	format Format

	// set when the bucket itself could not be built; surfaced on Open
	err error
}

func NewSource(bkt objstore.BucketReader, name string) *Source {
	return &Source{bkt: bkt, name: name, format: FormatOf(name)}
}

// NewFileSource returns a Source for a local file. It does not touch the file
// system; a missing or unreadable file is reported by Open.
func NewFileSource(path string) *Source {
	dir, name := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}
	bkt, err := filesystem.NewBucket(dir)
	if err != nil {
		return &Source{name: path, format: FormatOf(name), err: err}
	}
	return NewSource(bkt, name)
}

func (s *Source) Name() string   { return s.name }
func (s *Source) Format() Format { return s.format }

// Open returns a reader over the whole object.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	if s.err != nil {
		return nil, newSourceUnavailable(s.name, s.err)
	}
	rc, err := s.bkt.Get(ctx, s.name)
	if err != nil {
		return nil, newSourceUnavailable(s.name, pkgerrors.Wrapf(err, "get %s", s.name))
	}
	return rc, nil
}

// Size returns the object size in bytes.
func (s *Source) Size(ctx context.Context) (int64, error) {
	if s.err != nil {
		return 0, newSourceUnavailable(s.name, s.err)
	}
	attrs, err := s.bkt.Attributes(ctx, s.name)
	if err != nil {
		return 0, newSourceUnavailable(s.name, pkgerrors.Wrapf(err, "attributes %s", s.name))
	}
	return attrs.Size, nil
}

// ReaderAt returns a ranged reader over the object together with its size.
func (s *Source) ReaderAt(ctx context.Context) (io.ReaderAt, int64, error) {
	size, err := s.Size(ctx)
	if err != nil {
		return nil, 0, err
	}
	return NewBucketReadAt(ctx, s.name, s.bkt), size, nil
}

type sourceUnavailable struct {
	name string
	err  error
}

func newSourceUnavailable(name string, err error) error {
	return &sourceUnavailable{name: name, err: err}
}

func (e *sourceUnavailable) Error() string {
	return fmt.Sprintf("source %s unavailable: %s", e.name, e.err)
}

func (e *sourceUnavailable) Unwrap() error {
	return e.err
}

// IsSourceUnavailable reports whether err means the source could not be
// opened for reading.
func IsSourceUnavailable(err error) bool {
	var target *sourceUnavailable
	return errors.As(err, &target)
}
