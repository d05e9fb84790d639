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

package util

import (
	"cmp"
	"slices"
)

// MergeSlices merges sorted slices into one sorted slice without duplicates.
// A limit greater than zero caps the length of the result.
func MergeSlices(limit int, a ...[]string) []string {
	if len(a) == 0 {
		return nil
	}

	var res []string
	heads := make([]int, len(a))
	for {
		next := -1
		for i, s := range a {
			if heads[i] >= len(s) {
				continue
			}
			if next == -1 || s[heads[i]] < a[next][heads[next]] {
				next = i
			}
		}
		if next == -1 {
			return res
		}

		v := a[next][heads[next]]
		heads[next]++
		if len(res) > 0 && res[len(res)-1] == v {
			continue
		}
		res = append(res, v)
		if limit > 0 && len(res) == limit {
			return res
		}
	}
}

// MergeUnsortedSlices is MergeSlices for inputs in arbitrary order. The
// inputs are not modified.
func MergeUnsortedSlices(limit int, a ...[]string) []string {
	sorted := make([][]string, len(a))
	for i, s := range a {
		sorted[i] = slices.Clone(s)
		slices.Sort(sorted[i])
	}
	return MergeSlices(limit, sorted...)
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
