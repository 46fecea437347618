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

package egraph

import (
	"fmt"

	"github.com/latticeql/eqsat/ast"
	"github.com/latticeql/eqsat/subst"
	"github.com/latticeql/eqsat/uf"
)

// row is the common shape of one AppTab or FunTab entry, with the
// result/value erased to any so AppPat matching can treat both table
// kinds uniformly (see spec: "locate the table — first check
// AppTabs, then FunTabs").
type row struct {
	args []uf.Id
	res  any
}

// Match runs q against the current database and returns every
// substitution that satisfies all of its patterns simultaneously.
// This is the naive nested-loop algorithm: each pattern narrows the
// incoming SubstSet by joining it against one table's (or the atom
// map's) full contents.
func (g *EGraph) Match(q ast.Query) (*subst.Set, error) {
	substs := subst.NewSet()
	substs.Add(subst.Subst{})

	for _, pat := range q {
		next, err := g.matchOne(substs, pat)
		if err != nil {
			return nil, err
		}
		substs = next
	}
	return substs, nil
}

func (g *EGraph) matchOne(substs *subst.Set, pat ast.Pattern) (*subst.Set, error) {
	switch p := pat.(type) {
	case ast.AtomPat:
		return g.matchAtomPat(substs, p), nil
	case ast.AppPat:
		return g.matchAppPat(substs, p)
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidAST, pat)
	}
}

func (g *EGraph) matchAtomPat(substs *subst.Set, p ast.AtomPat) *subst.Set {
	out := subst.NewSet()
	id, ok := g.atom[p.Lit]
	if !ok {
		return out
	}
	substs.Each(func(s subst.Subst) {
		out.Add(s.Bind(p.Result, id))
	})
	return out
}

func (g *EGraph) matchAppPat(substs *subst.Set, p ast.AppPat) (*subst.Set, error) {
	rows, found := g.tableRows(p.Op)
	out := subst.NewSet()
	if !found {
		return out, nil
	}

	var matchErr error
	substs.Each(func(s subst.Subst) {
		for _, r := range rows {
			if matchErr != nil {
				return
			}
			if len(r.args) != len(p.Args) {
				matchErr = fmt.Errorf("%w: pattern %q expects %d argument(s), table entry has %d",
					ErrArityMismatch, p.Op, len(p.Args), len(r.args))
				return
			}
			bound := s
			for i, v := range p.Args {
				bound = bound.Bind(v, r.args[i])
			}
			out.Add(bound.Bind(p.Result, r.res))
		}
	})
	if matchErr != nil {
		return nil, matchErr
	}
	return out, nil
}

// tableRows returns a uniform view of op's table entries, checking
// AppTabs before FunTabs, matching spec.md §4.5's lookup order.
func (g *EGraph) tableRows(op string) ([]row, bool) {
	if at, ok := g.atab[op]; ok {
		entries := at.Entries()
		rows := make([]row, len(entries))
		for i, e := range entries {
			rows[i] = row{args: e.Args, res: e.Result}
		}
		return rows, true
	}
	if ft, ok := g.ftab[op]; ok {
		entries := ft.Entries()
		rows := make([]row, len(entries))
		for i, e := range entries {
			rows[i] = row{args: e.Args, res: e.Value}
		}
		return rows, true
	}
	return nil, false
}
