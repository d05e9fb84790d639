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

// Package termid parses ontology term identifiers of the form PREFIX:LOCALID,
// such as HP:0002188 or OMIM:619031.
package termid

import (
	"errors"
	"fmt"
	"strings"
)

const delim = ":"

var ErrInvalid = errors.New("invalid term id")

// TermID is a validated ontology term identifier. It is comparable and can be
// used as a map key.
type TermID struct {
	Prefix string
	ID     string
}

// Parse validates s and splits it at the first colon.
func Parse(s string) (TermID, error) {
	prefix, id, ok := strings.Cut(s, delim)
	if !ok {
		return TermID{}, fmt.Errorf("%w %q: missing %q", ErrInvalid, s, delim)
	}
	if !validPrefix(prefix) {
		return TermID{}, fmt.Errorf("%w %q: bad prefix", ErrInvalid, s)
	}
	if !validLocalID(id) {
		return TermID{}, fmt.Errorf("%w %q: bad local id", ErrInvalid, s)
	}
	return TermID{Prefix: prefix, ID: id}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) TermID {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TermID) String() string {
	return t.Prefix + delim + t.ID
}

func (t TermID) IsZero() bool {
	return t == TermID{}
}

func (t TermID) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TermID) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func validPrefix(p string) bool {
	if p == "" || !isLetter(p[0]) {
		return false
	}
	for i := 1; i < len(p); i++ {
		c := p[i]
		if !isLetter(c) && !isDigit(c) && c != '_' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

func validLocalID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if r == ':' || r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f' {
			return false
		}
	}
	return true
}

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
