// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package subst

// Set is a deduplicated collection of Substs. Bogus additions are
// silently discarded, matching the e-matching contract: a pattern
// that produces an inconsistent binding for one incoming
// substitution simply contributes nothing to the result set.
type Set struct {
	buckets map[uint64][]Subst
	size    int
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{buckets: make(map[uint64][]Subst)}
}

// Add inserts s into the set, discarding it if it is Bogus or
// already present.
func (set *Set) Add(s Subst) {
	if s.IsBogus() {
		return
	}
	bucket := set.buckets[s.hash]
	for _, existing := range bucket {
		if existing.Equal(s) {
			return
		}
	}
	set.buckets[s.hash] = append(bucket, s)
	set.size++
}

// Len returns the number of distinct substitutions in the set.
func (set *Set) Len() int {
	return set.size
}

// Each calls f once for every substitution in the set. Iteration
// order is unspecified, as e-matching's result-set semantics require
// no particular order (spec: "Iteration order over tables is
// unspecified").
func (set *Set) Each(f func(Subst)) {
	for _, bucket := range set.buckets {
		for _, s := range bucket {
			f(s)
		}
	}
}

// All returns every substitution in the set as a slice. The slice
// order is unspecified.
func (set *Set) All() []Subst {
	out := make([]Subst, 0, set.size)
	set.Each(func(s Subst) { out = append(out, s) })
	return out
}

// Contains reports whether s is present in the set.
func (set *Set) Contains(s Subst) bool {
	for _, existing := range set.buckets[s.hash] {
		if existing.Equal(s) {
			return true
		}
	}
	return false
}
