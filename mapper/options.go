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
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/common/promslog"
)

// RowPolicy decides what a scan does with a row that fails validation.
type RowPolicy int

const (
	// Strict fails the load or query with the first bad row.
	Strict RowPolicy = iota
	// Lenient drops bad rows and indexes the rest.
	Lenient
)

func (p RowPolicy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	default:
		return fmt.Sprintf("RowPolicy(%d)", int(p))
	}
}

func ParseRowPolicy(s string) (RowPolicy, error) {
	switch strings.ToLower(s) {
	case "", "strict":
		return Strict, nil
	case "lenient":
		return Lenient, nil
	default:
		return Strict, fmt.Errorf("unknown row policy %q", s)
	}
}

type mapperOpts struct {
	rowPolicy RowPolicy
	logger    *slog.Logger
}

var DefaultMapperOpts = mapperOpts{
	rowPolicy: Strict,
	logger:    promslog.NewNopLogger(),
}

type Option func(*mapperOpts)

// WithRowPolicy sets the handling of rows that fail validation. Defaults to
// Strict for both strategies.
func WithRowPolicy(p RowPolicy) Option {
	return func(opts *mapperOpts) {
		opts.rowPolicy = p
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(opts *mapperOpts) {
		opts.logger = logger
	}
}

func buildOpts(opts []Option) mapperOpts {
	cfg := DefaultMapperOpts
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
