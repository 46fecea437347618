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

package analysis

import (
	"github.com/latticeql/eqsat/ast"
	"github.com/latticeql/eqsat/egraph"
	"github.com/latticeql/eqsat/table"
)

// ConstVal is a flat lattice value: Unknown (the bottom element,
// meaning "no constant value has been observed yet"), a Known
// literal, or Conflict (the top element, meaning "two different
// constants have been observed for this e-class"). Conflict is a
// distinct, sticky state from Unknown so that a later join can never
// mistake "already saw two different values" for "nothing seen yet"
// and resurrect one of the earlier values.
type ConstVal struct {
	Known    bool
	Conflict bool
	Value    ast.Atom
}

// Unknown is the bottom element of the constant-folding lattice.
var Unknown = ConstVal{}

// ConflictConst is the top element of the constant-folding lattice:
// once reached, it absorbs every further join.
var ConflictConst = ConstVal{Conflict: true}

// KnownConst wraps a literal as a Known lattice value.
func KnownConst(a ast.Atom) ConstVal {
	return ConstVal{Known: true, Value: a}
}

// ConstFoldRepair is the join of the flat lattice Unknown < Known(x)
// < Conflict: Unknown yields to anything, two agreeing Known values
// stay as they are, two disagreeing Known values (or anything joined
// with Conflict) produce Conflict. Conflict never yields back to a
// Known value, which is what makes this join associative: folding a
// 3-way (or wider) disagreement in any order reaches the same
// Conflict result, rather than depending on which pair is joined
// first (see table.FunTab.Rebuild's pairwise, map-order-dependent
// fold).
func ConstFoldRepair(a, b ConstVal) ConstVal {
	switch {
	case a.Conflict || b.Conflict:
		return ConflictConst
	case !a.Known:
		return b
	case !b.Known:
		return a
	case a.Value.Equal(b.Value):
		return a
	default:
		return ConflictConst
	}
}

// RegisterConstFold registers a constant-folding FunTab named name
// on g.
func RegisterConstFold(g *egraph.EGraph, name string) *table.FunTab[ConstVal] {
	return egraph.RegisterFunTab(g, name, ConstFoldRepair)
}
