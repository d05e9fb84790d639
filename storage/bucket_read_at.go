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
	"io"

	"github.com/efficientgo/core/errcapture"
	"github.com/thanos-io/objstore"
)

// bReadAt departs from io.ReaderAt at the end of the object: a read that
// crosses it returns the bytes that exist and a nil error instead of io.EOF.
// Parquet readers never read past the size they are given, so callers see
// full reads in practice.
type bReadAt struct {
	path string
	obj  objstore.BucketReader
	ctx  context.Context
}

// NewBucketReadAt serves ReadAt with ranged Get calls against the bucket.
// Reads past the end of the object return a short count and no error.
func NewBucketReadAt(ctx context.Context, path string, obj objstore.BucketReader) io.ReaderAt {
	return &bReadAt{
		path: path,
		obj:  obj,
		ctx:  ctx,
	}
}

func (b *bReadAt) ReadAt(p []byte, off int64) (n int, err error) {
	rc, err := b.obj.GetRange(b.ctx, b.path, off, int64(len(p)))
	if err != nil {
		return 0, err
	}
	defer errcapture.Do(&err, rc.Close, "close range reader")

	// GetRange readers may hand back fewer bytes per Read than asked for.
	n, err = io.ReadFull(rc, p)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return n, nil
	}
	return n, err
}
