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

package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRow is returned for a row that does not decode into the
	// expected columns.
	ErrMalformedRow = errors.New("malformed row")
	// ErrInvalidIdentifier is returned for a row whose identifier column is
	// not a valid term id.
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

// RowError ties a row-level failure to its position in the source.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// IsRowError reports whether err is a row-level failure, as opposed to a
// failure of the source itself.
func IsRowError(err error) bool {
	var re *RowError
	return errors.As(err, &re)
}
