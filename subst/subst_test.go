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

import (
	"testing"

	"github.com/latticeql/eqsat/uf"
)

func TestBindNewVar(t *testing.T) {
	var s Subst
	s2 := s.Bind("x", 1)
	if s2.IsBogus() {
		t.Fatal("binding a fresh var should not be bogus")
	}
	id, ok := s2.Lookup("x")
	if !ok || id != 1 {
		t.Fatalf("got (%d, %v); want (1, true)", id, ok)
	}
}

func TestBindSameValueReusesSelf(t *testing.T) {
	var s Subst
	s1 := s.Bind("x", 1)
	s2 := s1.Bind("x", 1)
	if !s1.Equal(s2) {
		t.Fatal("rebinding the same var to the same value should be consistent")
	}
}

func TestBindConsistency(t *testing.T) {
	var s Subst
	s1 := s.Bind("x", 1)
	s2 := s1.Bind("x", 2)
	if !s2.IsBogus() {
		t.Fatal("rebinding a var to a different value should be bogus (x != y case)")
	}
	s3 := s1.Bind("x", 1)
	if s3.IsBogus() {
		t.Fatal("rebinding a var to the same value should not be bogus (x == y case)")
	}
}

func TestBogusAbsorbing(t *testing.T) {
	b := Bogus.Bind("anything", 99)
	if !b.IsBogus() {
		t.Fatal("binding bogus should return bogus")
	}
}

func TestSubstHashIndependentOfOrder(t *testing.T) {
	var a, b Subst
	a = a.Bind("x", 1).Bind("y", 2)
	b = b.Bind("y", 2).Bind("x", 1)
	if !a.Equal(b) {
		t.Fatal("substitutions with the same bindings in different insertion order should be Equal")
	}
	if a.Hash() != b.Hash() {
		t.Fatal("hashes should match for equal substitutions")
	}
}

func TestSetDiscardsBogus(t *testing.T) {
	set := NewSet()
	set.Add(Bogus)
	if set.Len() != 0 {
		t.Fatalf("got Len() = %d; want 0", set.Len())
	}
}

func TestSetDedup(t *testing.T) {
	set := NewSet()
	var s1, s2 Subst
	s1 = s1.Bind("x", 1)
	s2 = s2.Bind("x", 1)
	set.Add(s1)
	set.Add(s2)
	if set.Len() != 1 {
		t.Fatalf("got Len() = %d; want 1 (duplicate substitutions should be deduplicated)", set.Len())
	}
}

func TestSetMultipleDistinct(t *testing.T) {
	set := NewSet()
	var s1, s2 Subst
	s1 = s1.Bind("x", 1)
	s2 = s2.Bind("y", 2)
	set.Add(s1)
	set.Add(s2)
	if set.Len() != 2 {
		t.Fatalf("got Len() = %d; want 2", set.Len())
	}
}

func TestSetContains(t *testing.T) {
	set := NewSet()
	var s Subst
	s = s.Bind("x", uf.Id(7))
	set.Add(s)
	if !set.Contains(s) {
		t.Fatal("set should contain the substitution just added")
	}
	var other Subst
	other = other.Bind("x", uf.Id(8))
	if set.Contains(other) {
		t.Fatal("set should not contain a substitution never added")
	}
}
