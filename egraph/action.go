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

// Eval evaluates an action expression under s. An AExprAtom or
// AExprApp always evaluates to a uf.Id (allocating fresh classes as
// needed, just like Insert); an AExprVar evaluates to whatever s has
// bound it to, which may be an id or — if the rule's query bound
// that variable from a FunTab match — an arbitrary analysis value.
func (g *EGraph) Eval(ae ast.ActionExpr, s subst.Subst) (any, error) {
	switch e := ae.(type) {
	case ast.AExprAtom:
		return g.InsertAtom(e.Lit), nil

	case ast.AExprVar:
		v, ok := s.Lookup(e.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnboundVar, e.Name)
		}
		return v, nil

	case ast.AExprApp:
		ids := make([]uf.Id, len(e.Args))
		for i, arg := range e.Args {
			id, err := g.evalID(arg, s)
			if err != nil {
				return nil, err
			}
			ids[i] = id
		}
		return g.getEnode(e.Op, ids), nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidAST, ae)
	}
}

// evalID evaluates ae and requires the result to be a uf.Id, which
// is always true unless ae is a pattern variable bound to a FunTab
// analysis value — a query can bind such a variable, but using it as
// an e-class id (e.g. as an AppPat argument in an action) is a
// caller error, not something this engine can type-check ahead of
// time.
func (g *EGraph) evalID(ae ast.ActionExpr, s subst.Subst) (uf.Id, error) {
	v, err := g.Eval(ae, s)
	if err != nil {
		return 0, err
	}
	id, ok := v.(uf.Id)
	if !ok {
		return 0, fmt.Errorf("%w: action expression %q evaluated to %v, not an e-class id", ErrInvalidAST, ae, v)
	}
	return id, nil
}

// Exec runs action a under substitution s.
func (g *EGraph) Exec(a ast.Action, s subst.Subst) error {
	switch a := a.(type) {
	case ast.Nop:
		return nil

	case ast.Seq:
		if err := g.Exec(a.First, s); err != nil {
			return err
		}
		return g.Exec(a.Second, s)

	case ast.Merge:
		lid, err := g.evalID(a.Left, s)
		if err != nil {
			return err
		}
		rid, err := g.evalID(a.Right, s)
		if err != nil {
			return err
		}
		g.UF.Union(lid, rid)
		return nil

	case ast.SetFun:
		ids := make([]uf.Id, len(a.Target.Args))
		for i, arg := range a.Target.Args {
			id, err := g.evalID(arg, s)
			if err != nil {
				return err
			}
			ids[i] = id
		}
		// A literal Value is written as the literal itself, not as
		// the e-class id of its atom.
		var val any
		if lit, ok := a.Value.(ast.AExprAtom); ok {
			val = lit.Lit
		} else {
			v, err := g.Eval(a.Value, s)
			if err != nil {
				return err
			}
			val = v
		}
		ft, ok := g.ftab[a.Target.Op]
		if !ok {
			return fmt.Errorf("%w: %q", ErrMissingFunTab, a.Target.Op)
		}
		if _, ok := ft.SetAny(ids, val); !ok {
			return fmt.Errorf("%w: function %q, value %v", ErrFunTabType, a.Target.Op, val)
		}
		return nil

	default:
		return fmt.Errorf("%w: %T", ErrInvalidAST, a)
	}
}

// RunRule evaluates r's query and executes its action under every
// resulting substitution. The substitution set is fully materialized
// before any action runs, so nodes an action inserts within this
// rule application cannot themselves be matched again until the next
// rule (or the next full pass over the rule list).
func (g *EGraph) RunRule(r ast.Rule) error {
	substs, err := g.Match(r.Query)
	if err != nil {
		return fmt.Errorf("egraph: rule %q: %w", r.Name, err)
	}
	var execErr error
	substs.Each(func(s subst.Subst) {
		if execErr != nil {
			return
		}
		if err := g.Exec(r.Action, s); err != nil {
			execErr = fmt.Errorf("egraph: rule %q: %w", r.Name, err)
		}
	})
	return execErr
}

// RunRules runs every rule in rs, in order, via RunRule.
func (g *EGraph) RunRules(rs ast.Rules) error {
	for _, r := range rs {
		if err := g.RunRule(r); err != nil {
			return err
		}
	}
	return nil
}

// GetFun returns the value stored for ids in the FunTab named name.
func (g *EGraph) GetFun(name string, ids []uf.Id) (any, error) {
	ft, ok := g.ftab[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingFunTab, name)
	}
	v, ok := ft.GetAny(ids)
	if !ok {
		return nil, fmt.Errorf("%w: function %q", ErrMissingFunTabEntry, name)
	}
	return v, nil
}
