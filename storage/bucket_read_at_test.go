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
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/efficientgo/core/testutil"
	"github.com/thanos-io/objstore"
)

// limitedReader is a reader that returns at most n bytes per read
type limitedReader struct {
	r io.Reader
	n int
}

func (r *limitedReader) Read(p []byte) (int, error) {
	if len(p) > r.n {
		p = p[:r.n]
	}
	return r.r.Read(p)
}

// chunkedBucket serves a single object whose range readers return at most
// two bytes per read. Only GetRange is exercised.
type chunkedBucket struct {
	objstore.Bucket
	content []byte
}

func (m *chunkedBucket) GetRange(_ context.Context, _ string, off, length int64) (io.ReadCloser, error) {
	if off >= int64(len(m.content)) {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	end := min(off+length, int64(len(m.content)))
	return io.NopCloser(&limitedReader{r: bytes.NewReader(m.content[off:end]), n: 2}), nil
}

func TestBucketReadAtWithLimitedReader(t *testing.T) {
	testData := []byte("HP:0002188\tDelayed CNS myelination\t199857\tALG14\tOMIM:619031\n")
	reader := NewBucketReadAt(context.Background(), "phenotype_to_genes.txt", &chunkedBucket{content: testData})

	buf := make([]byte, len(testData))
	n, err := reader.ReadAt(buf, 0)
	testutil.Ok(t, err)
	testutil.Equals(t, len(testData), n)
	testutil.Equals(t, testData, buf)

	partial := make([]byte, 10)
	n, err = reader.ReadAt(partial, 11)
	testutil.Ok(t, err)
	testutil.Equals(t, 10, n)
	testutil.Equals(t, testData[11:21], partial)

	// short read at the tail
	tail := make([]byte, 10)
	n, err = reader.ReadAt(tail, int64(len(testData)-4))
	testutil.Ok(t, err)
	testutil.Equals(t, 4, n)

	empty := make([]byte, 10)
	n, err = reader.ReadAt(empty, int64(len(testData)+5))
	testutil.Ok(t, err)
	testutil.Equals(t, 0, n)
}
