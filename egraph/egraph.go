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

// Package egraph implements the e-graph itself: term insertion,
// e-matching, action execution, and the rebuild fixed point that
// restores canonicity, congruence, and lattice consistency after a
// batch of merges. It owns the union-find, the atom map, and every
// named AppTab/FunTab. The union-find is exported as EGraph.UF, and
// RegisterFunTab hands the new FunTab back to its caller; AppTabs and
// the atom map are reachable only through EGraph's methods.
package egraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/latticeql/eqsat/ast"
	"github.com/latticeql/eqsat/table"
	"github.com/latticeql/eqsat/uf"
)

// EGraph owns a union-find forest, the atom map, and every named
// e-node table (AppTab) and analysis table (FunTab) built on top of
// it. The zero value is not ready to use; construct with New.
type EGraph struct {
	UF   *uf.UF
	atom map[ast.Atom]uf.Id
	atab map[string]*table.AppTab
	ftab map[string]table.AnyFunTab

	// ID identifies this e-graph instance for log lines threaded
	// through a driver.Saturate run (see driver package); it carries
	// no semantic weight for the engine itself.
	ID uuid.UUID
}

// New returns an empty e-graph.
func New() *EGraph {
	return &EGraph{
		UF:   &uf.UF{},
		atom: make(map[ast.Atom]uf.Id),
		atab: make(map[string]*table.AppTab),
		ftab: make(map[string]table.AnyFunTab),
		ID:   uuid.New(),
	}
}

// RegisterFunTab creates and registers a FunTab named name, backed
// by this e-graph's union-find and joining collisions with repair.
// It returns the concrete, type-safe table so callers (typically an
// analysis constructor) can Get/Set without going through the
// type-erased AnyFunTab interface. Registering a name that already
// exists overwrites the previous table.
func RegisterFunTab[V comparable](g *EGraph, name string, repair func(a, b V) V) *table.FunTab[V] {
	t := table.NewFunTab(g.UF, repair)
	g.ftab[name] = t
	return t
}

// appTab returns the AppTab for op, creating it if this is the first
// time op has been seen. The AppTab records no arity: argument tuples
// of different lengths under the same op are stored side by side, and
// a length disagreement only surfaces as ErrArityMismatch when an
// AppPat is matched against the table. AppTabs are implicit; FunTabs
// must be registered explicitly via RegisterFunTab.
func (g *EGraph) appTab(op string) *table.AppTab {
	t, ok := g.atab[op]
	if !ok {
		t = table.NewAppTab(g.UF)
		g.atab[op] = t
	}
	return t
}

// getEnode returns the result id for op applied to ids, allocating a
// fresh class if this exact tuple has not been seen before.
func (g *EGraph) getEnode(op string, ids []uf.Id) uf.Id {
	return g.appTab(op).Get(ids)
}

// InsertAtom returns the id for literal a, allocating a fresh class
// on first use.
func (g *EGraph) InsertAtom(a ast.Atom) uf.Id {
	if id, ok := g.atom[a]; ok {
		return id
	}
	id := g.UF.MkSet()
	g.atom[a] = id
	return id
}

// Insert adds term t (and, recursively, all of its subterms) to the
// e-graph and returns its e-class id.
func (g *EGraph) Insert(t ast.Term) (uf.Id, error) {
	switch t := t.(type) {
	case ast.Leaf:
		return g.InsertAtom(t.Atom), nil
	case ast.App:
		ids := make([]uf.Id, len(t.Args))
		for i, arg := range t.Args {
			id, err := g.Insert(arg)
			if err != nil {
				return 0, err
			}
			ids[i] = id
		}
		return g.getEnode(t.Op, ids), nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrInvalidAST, t)
	}
}

// Find returns the canonical id of id's class.
func (g *EGraph) Find(id uf.Id) uf.Id { return g.UF.Find(id) }

// Same reports whether a and b are currently in the same class.
func (g *EGraph) Same(a, b uf.Id) bool { return g.UF.Same(a, b) }

// isDirty reports whether the union-find or any registered FunTab
// changed since the last clearDirty.
func (g *EGraph) isDirty() bool {
	if g.UF.Dirty() {
		return true
	}
	for _, ft := range g.ftab {
		if ft.Dirty() {
			return true
		}
	}
	return false
}

func (g *EGraph) clearDirty() {
	g.UF.ClearDirty()
	for _, ft := range g.ftab {
		ft.ClearDirty()
	}
}

// Rebuild restores canonicity, congruence, and lattice consistency:
// it clears every dirty bit, canonicalizes the atom map, rebuilds
// every AppTab then every FunTab, and repeats as long as any of that
// work set a dirty bit again. An iterative loop is used rather than
// the tail-recursive shape of the reference implementation, since
// recursion depth here is bounded only by the number of rebuild
// passes a large saturation run might need.
func (g *EGraph) Rebuild() {
	for {
		g.clearDirty()

		for a, id := range g.atom {
			g.atom[a] = g.UF.Find(id)
		}
		for _, t := range g.atab {
			t.Rebuild()
		}
		for _, t := range g.ftab {
			t.Rebuild()
		}

		if !g.isDirty() {
			return
		}
	}
}

// String renders the three-section printable form: atoms, app
// tables, fun tables, each listing entries with their current
// (possibly non-canonical, if called outside a rebuilt state) ids in
// a stable, sorted order for diffing.
func (g *EGraph) String() string {
	var out strings.Builder

	out.WriteString("===== ATOMS =====\n")
	atoms := make([]ast.Atom, 0, len(g.atom))
	for a := range g.atom {
		atoms = append(atoms, a)
	}
	sort.Slice(atoms, func(i, j int) bool { return atoms[i].String() < atoms[j].String() })
	for _, a := range atoms {
		fmt.Fprintf(&out, "%s\t->\t%d\n", a.String(), g.atom[a])
	}

	out.WriteString("\n===== APP TABLES =====\n")
	for _, op := range sortedKeys(g.atab) {
		fmt.Fprintf(&out, "\n%s\n%s", op, g.atab[op].String())
	}

	out.WriteString("\n===== FUN TABLES =====\n")
	for _, f := range sortedFunKeys(g.ftab) {
		fmt.Fprintf(&out, "\n%s\n%s", f, g.ftab[f].String())
	}

	return out.String()
}

func sortedKeys(m map[string]*table.AppTab) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedFunKeys(m map[string]table.AnyFunTab) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
