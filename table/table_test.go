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

package table

import (
	"testing"

	"github.com/latticeql/eqsat/uf"
)

func mkIds(u *uf.UF, n int) []uf.Id {
	ids := make([]uf.Id, n)
	for i := range ids {
		ids[i] = u.MkSet()
	}
	return ids
}

func TestAppTabGetNewEnode(t *testing.T) {
	u := &uf.UF{}
	ids := mkIds(u, 3)
	tab := NewAppTab(u)
	got := tab.Get(ids)
	if got != 3 {
		t.Fatalf("got %d; want 3", got)
	}
}

func TestAppTabGetExistingEnode(t *testing.T) {
	u := &uf.UF{}
	ids := mkIds(u, 6)
	tab := NewAppTab(u)
	e0 := tab.Get(ids[0:3])
	e1 := tab.Get(ids[3:6])
	e2 := tab.Get(ids[0:3])
	if e0 != 6 || e1 != 7 || e2 != 6 {
		t.Fatalf("got (%d, %d, %d); want (6, 7, 6)", e0, e1, e2)
	}
}

func TestAppTabSetMergesOnCollision(t *testing.T) {
	u := &uf.UF{}
	ids := mkIds(u, 6)
	tab := NewAppTab(u)
	e0 := tab.Get(ids[0:3])
	e1 := tab.Get(ids[3:6])
	tab.Set(ids[0:3], e1)
	if u.Find(e0) != u.Find(e1) {
		t.Fatal("set on an existing tuple should union the two results (congruence)")
	}
}

func TestAppTabRebuildRestoresCongruence(t *testing.T) {
	u := &uf.UF{}
	ids := mkIds(u, 4)
	tab := NewAppTab(u)
	ids0 := []uf.Id{ids[0], ids[1], ids[2]}
	ids1 := []uf.Id{ids[0], ids[1], ids[3]}
	e0 := tab.Get(ids0)
	e1 := tab.Get(ids1)
	if e0 == e1 {
		t.Fatal("distinct argument tuples should start in distinct classes")
	}
	u.Union(ids[2], ids[3]) // violates functional dependency from outside the table
	tab.Rebuild()
	if u.Find(e0) != u.Find(e1) {
		t.Fatal("rebuild should restore congruence after an external union")
	}
}

func TestAppTabRebuildIsFixedPointWhenClean(t *testing.T) {
	u := &uf.UF{}
	ids := mkIds(u, 3)
	tab := NewAppTab(u)
	id := tab.Get(ids)
	tab.Rebuild()
	if got := tab.Get(ids); got != id {
		t.Fatalf("rebuilding a clean table should not change its mapping, got %d want %d", got, id)
	}
}

func TestAppTabEntriesSortedByArgs(t *testing.T) {
	u := &uf.UF{}
	ids := mkIds(u, 4)
	tab := NewAppTab(u)
	tab.Get([]uf.Id{ids[1], ids[2]})
	tab.Get([]uf.Id{ids[0], ids[3]})
	entries := tab.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries; want 2", len(entries))
	}
	if entries[0].Args[0] != ids[0] {
		t.Fatalf("entries should be sorted by argument tuple, got first args %v", entries[0].Args)
	}
}

func minRepair(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func TestFunTabGetMissingFails(t *testing.T) {
	u := &uf.UF{}
	ids := mkIds(u, 2)
	tab := NewFunTab(u, minRepair)
	if _, ok := tab.Get(ids); ok {
		t.Fatal("Get on an absent tuple should report ok=false")
	}
}

func TestFunTabSetRepairsOnCollision(t *testing.T) {
	u := &uf.UF{}
	ids := mkIds(u, 2)
	tab := NewFunTab(u, minRepair)
	tab.Set(ids, 5)
	got := tab.Set(ids, 3)
	if got != 3 {
		t.Fatalf("repair(5, 3) with min should give 3, got %d", got)
	}
	if !tab.Dirty() {
		t.Fatal("a repair that changes the stored value should mark the table dirty")
	}
}

func TestFunTabSetIdempotentRepairNotDirty(t *testing.T) {
	u := &uf.UF{}
	ids := mkIds(u, 2)
	tab := NewFunTab(u, minRepair)
	tab.Set(ids, 3)
	tab.ClearDirty()
	tab.Set(ids, 5) // min(3, 5) == 3, no change
	if tab.Dirty() {
		t.Fatal("a repair that does not change the stored value should not mark the table dirty")
	}
}

func TestFunTabRebuildMergesCanonicalized(t *testing.T) {
	u := &uf.UF{}
	ids := mkIds(u, 3)
	tab := NewFunTab(u, minRepair)
	tab.Set([]uf.Id{ids[0], ids[1]}, 4)
	tab.Set([]uf.Id{ids[0], ids[2]}, 2)
	u.Union(ids[1], ids[2])
	tab.ClearDirty()
	tab.Rebuild()
	got, ok := tab.Get([]uf.Id{ids[0], u.Find(ids[1])})
	if !ok || got != 2 {
		t.Fatalf("got (%d, %v); want (2, true) after rebuild merges the two entries via min", got, ok)
	}
}

func TestAnyFunTabEntriesErasesValue(t *testing.T) {
	u := &uf.UF{}
	ids := mkIds(u, 2)
	tab := NewFunTab(u, minRepair)
	tab.Set(ids, 7)
	var any AnyFunTab = tab
	entries := any.Entries()
	if len(entries) != 1 || entries[0].Value.(int) != 7 {
		t.Fatalf("got %+v; want one entry with Value 7", entries)
	}
}
