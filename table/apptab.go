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

// Package table implements the two enode table shapes an e-graph
// keeps per operator: AppTab (argument ids -> result e-class id,
// restoring functional dependency by union) and FunTab (argument
// ids -> an analysis value, restoring functional dependency by a
// user-supplied repair/join function). Both maintain congruence
// under union only up to the next Rebuild: a merge performed through
// a different table can invalidate an AppTab/FunTab's functional
// dependency, so the egraph package periodically canonicalizes and
// re-inserts every entry until nothing changes.
package table

import (
	"sort"
	"strconv"
	"strings"

	"github.com/latticeql/eqsat/uf"
)

// AppEntry is one canonicalized row of an AppTab.
type AppEntry struct {
	Args   []uf.Id
	Result uf.Id
}

// AppTab maps an operator's argument-id tuples to a result e-class
// id. Get auto-creates a fresh class for an unseen tuple; Set
// restores functional dependency on a collision by unioning the two
// candidate results rather than overwriting one with the other.
type AppTab struct {
	uf  *uf.UF
	tab map[string]AppEntry
}

// NewAppTab returns an empty AppTab backed by u.
func NewAppTab(u *uf.UF) *AppTab {
	return &AppTab{uf: u, tab: make(map[string]AppEntry)}
}

// Get returns the result id for ids, allocating a fresh e-class if
// this is the first time the tuple has been seen.
func (t *AppTab) Get(ids []uf.Id) uf.Id {
	k := key(ids)
	if e, ok := t.tab[k]; ok {
		return e.Result
	}
	id := t.uf.MkSet()
	t.tab[k] = AppEntry{Args: append([]uf.Id(nil), ids...), Result: id}
	return id
}

// Set records that ids maps to id. If ids is already present, the
// two candidate results are unioned to restore functional
// dependency (the union-find tracks whether this actually changed
// anything via its dirty flag). The id actually stored — the union
// result on a collision, id otherwise — is returned.
func (t *AppTab) Set(ids []uf.Id, id uf.Id) uf.Id {
	k := key(ids)
	if e, ok := t.tab[k]; ok {
		id = t.uf.Union(e.Result, id)
	}
	t.tab[k] = AppEntry{Args: append([]uf.Id(nil), ids...), Result: id}
	return id
}

// Rebuild performs one canonicalization pass: every entry's argument
// ids and result id are replaced by their current union-find
// representatives and re-inserted via Set, which merges any classes
// that a rebuild reveals should be congruent. The egraph package
// calls this repeatedly (alongside FunTab.Rebuild) until a full pass
// leaves the union-find and every FunTab clean.
func (t *AppTab) Rebuild() {
	old := t.tab
	t.tab = make(map[string]AppEntry, len(old))
	for _, e := range old {
		ids := make([]uf.Id, len(e.Args))
		for i, a := range e.Args {
			ids[i] = t.uf.Find(a)
		}
		t.Set(ids, t.uf.Find(e.Result))
	}
}

// Entries returns every row of the table sorted by argument tuple,
// giving e-matching and String a deterministic iteration order.
func (t *AppTab) Entries() []AppEntry {
	out := make([]AppEntry, 0, len(t.tab))
	for _, e := range t.tab {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return lessIds(out[i].Args, out[j].Args) })
	return out
}

// String renders one "args... -> result" line per entry, sorted by
// argument tuple.
func (t *AppTab) String() string {
	var out strings.Builder
	for _, e := range t.Entries() {
		for _, a := range e.Args {
			out.WriteString(strconv.FormatUint(uint64(a), 10))
			out.WriteByte('\t')
		}
		out.WriteString("->\t")
		out.WriteString(strconv.FormatUint(uint64(e.Result), 10))
		out.WriteByte('\n')
	}
	return out.String()
}

func lessIds(a, b []uf.Id) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
