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
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/latticeql/eqsat/uf"
)

// FunEntry is one canonicalized row of a FunTab, with its value
// erased to any so heterogeneous FunTabs (one per analysis, each
// with its own value type) can be iterated uniformly during
// e-matching. See AnyFunTab.
type FunEntry struct {
	Args  []uf.Id
	Value any
}

// AnyFunTab is the type-erased view of a FunTab[V] that the egraph
// package stores and iterates without knowing V.
type AnyFunTab interface {
	Rebuild()
	Dirty() bool
	ClearDirty()
	Entries() []FunEntry
	String() string
	// GetAny returns the value stored for ids, erased to any.
	GetAny(ids []uf.Id) (any, bool)
	// SetAny writes val for ids after asserting it is of this
	// table's value type V; it fails with ok=false if val's
	// dynamic type does not match V.
	SetAny(ids []uf.Id, val any) (result any, ok bool)
}

// funEntry is one row of a FunTab[V]'s backing map.
type funEntry[V comparable] struct {
	args []uf.Id
	val  V
}

// FunTab maps an operator's argument-id tuples to a value in a
// user-defined analysis domain V. Unlike AppTab, Get can fail (an
// absent tuple is not auto-created, since there is no canonical
// "zero value" of an arbitrary analysis domain). A collision on Set
// is resolved by Repair, a join that must be commutative,
// associative, and idempotent so repeated rebuilds converge to a
// fixed point regardless of entry insertion order.
type FunTab[V comparable] struct {
	uf     *uf.UF
	Repair func(a, b V) V
	dirty  bool
	tab    map[string]funEntry[V]
}

// NewFunTab returns an empty FunTab backed by u, joining colliding
// values with repair.
func NewFunTab[V comparable](u *uf.UF, repair func(a, b V) V) *FunTab[V] {
	return &FunTab[V]{uf: u, Repair: repair, tab: make(map[string]funEntry[V])}
}

// Get returns the value stored for ids and whether an entry exists.
func (t *FunTab[V]) Get(ids []uf.Id) (V, bool) {
	e, ok := t.tab[key(ids)]
	return e.val, ok
}

// Set writes res for ids. If ids already has an entry, the stored
// value is replaced by Repair(old, res); if that changes the value,
// Dirty is set so the egraph knows another Rebuild pass is needed.
func (t *FunTab[V]) Set(ids []uf.Id, res V) V {
	k := key(ids)
	if e, ok := t.tab[k]; ok {
		joined := t.Repair(e.val, res)
		if joined != e.val {
			t.dirty = true
		}
		res = joined
	}
	t.tab[k] = funEntry[V]{args: append([]uf.Id(nil), ids...), val: res}
	return res
}

// GetAny is Get with its value erased to any, satisfying AnyFunTab.
func (t *FunTab[V]) GetAny(ids []uf.Id) (any, bool) {
	v, ok := t.Get(ids)
	return v, ok
}

// SetAny is Set with its value accepted as any, satisfying
// AnyFunTab; it reports ok=false without writing anything if val is
// not of type V.
func (t *FunTab[V]) SetAny(ids []uf.Id, val any) (any, bool) {
	v, ok := val.(V)
	if !ok {
		return nil, false
	}
	return t.Set(ids, v), true
}

// Dirty reports whether a Set call has changed a stored value since
// the last ClearDirty.
func (t *FunTab[V]) Dirty() bool { return t.dirty }

// ClearDirty resets the dirty flag.
func (t *FunTab[V]) ClearDirty() { t.dirty = false }

// Rebuild performs one canonicalization pass: every entry's argument
// ids are replaced by their current union-find representatives and
// re-inserted via Set, repairing any collision a rebuild reveals.
func (t *FunTab[V]) Rebuild() {
	old := t.tab
	t.tab = make(map[string]funEntry[V], len(old))
	for _, e := range old {
		ids := make([]uf.Id, len(e.args))
		for i, a := range e.args {
			ids[i] = t.uf.Find(a)
		}
		t.Set(ids, e.val)
	}
}

// Entries returns every row sorted by argument tuple, with values
// erased to any for AnyFunTab's uniform iteration.
func (t *FunTab[V]) Entries() []FunEntry {
	rows := make([]funEntry[V], 0, len(t.tab))
	for _, e := range t.tab {
		rows = append(rows, e)
	}
	sort.Slice(rows, func(i, j int) bool { return lessIds(rows[i].args, rows[j].args) })
	out := make([]FunEntry, len(rows))
	for i, e := range rows {
		out[i] = FunEntry{Args: e.args, Value: e.val}
	}
	return out
}

// String renders one "args... -> value" line per entry, sorted by
// argument tuple.
func (t *FunTab[V]) String() string {
	var out strings.Builder
	for _, e := range t.Entries() {
		for _, a := range e.Args {
			out.WriteString(strconv.FormatUint(uint64(a), 10))
			out.WriteByte('\t')
		}
		out.WriteString("->\t")
		fmt.Fprint(&out, e.Value)
		out.WriteByte('\n')
	}
	return out.String()
}
