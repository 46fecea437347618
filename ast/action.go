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

package ast

import "strings"

// ActionExpr is an expression evaluated under a substitution to
// produce an e-class id (see egraph.EGraph.Eval): an Atom, a pattern
// variable reference, or an application.
type ActionExpr interface {
	actionExpr()
	String() string
	// PVars returns the pattern variables this expression
	// references, in first-use order.
	PVars() []string
}

// AExprAtom is a literal atom used as an action expression.
type AExprAtom struct {
	Lit Atom
}

func (AExprAtom) actionExpr() {}

// String implements ActionExpr.
func (a AExprAtom) String() string { return a.Lit.String() }

// PVars implements ActionExpr.
func (a AExprAtom) PVars() []string { return nil }

// AExprVar references a pattern variable bound by the rule's query.
type AExprVar struct {
	Name string
}

func (AExprVar) actionExpr() {}

// String implements ActionExpr.
func (a AExprVar) String() string { return a.Name }

// PVars implements ActionExpr.
func (a AExprVar) PVars() []string { return []string{a.Name} }

// AExprApp applies Op to Args, each itself an ActionExpr.
type AExprApp struct {
	Op   string
	Args []ActionExpr
}

func (AExprApp) actionExpr() {}

// String implements ActionExpr.
func (a AExprApp) String() string {
	var out strings.Builder
	out.WriteByte('(')
	out.WriteString(a.Op)
	for _, arg := range a.Args {
		out.WriteByte(' ')
		out.WriteString(arg.String())
	}
	out.WriteByte(')')
	return out.String()
}

// PVars implements ActionExpr.
func (a AExprApp) PVars() []string {
	var out []string
	for _, arg := range a.Args {
		out = append(out, arg.PVars()...)
	}
	return out
}

// Action is a statement executed under a substitution produced by a
// Query match: Nop, Seq (sequencing), Merge (union two classes), or
// SetFun (write a FunTab entry).
type Action interface {
	action()
	String() string
	// PVars returns the pattern variables this action
	// references, in first-use order.
	PVars() []string
}

// Nop does nothing.
type Nop struct{}

func (Nop) action() {}

// String implements Action.
func (Nop) String() string { return "nop" }

// PVars implements Action.
func (Nop) PVars() []string { return nil }

// Seq runs First then Second.
type Seq struct {
	First, Second Action
}

func (Seq) action() {}

// String implements Action.
func (s Seq) String() string { return s.First.String() + ";\n" + s.Second.String() }

// PVars implements Action.
func (s Seq) PVars() []string { return append(s.First.PVars(), s.Second.PVars()...) }

// Merge unions the classes that Left and Right evaluate to.
type Merge struct {
	Left, Right ActionExpr
}

func (Merge) action() {}

// String implements Action.
func (m Merge) String() string { return m.Left.String() + " = " + m.Right.String() }

// PVars implements Action.
func (m Merge) PVars() []string { return append(m.Left.PVars(), m.Right.PVars()...) }

// SetFun writes a FunTab entry: it evaluates Target's arguments to
// ids and writes Value (a literal or a bound pattern variable,
// carried here as an ActionExpr that must not itself be an
// AExprApp) into FunTab[Target.Op].
type SetFun struct {
	Target AExprApp
	Value  ActionExpr
}

func (SetFun) action() {}

// String implements Action.
func (s SetFun) String() string { return s.Target.String() + " = " + s.Value.String() }

// PVars implements Action.
func (s SetFun) PVars() []string { return append(s.Target.PVars(), s.Value.PVars()...) }

func actionExprEqual(a, b ActionExpr) bool {
	switch a := a.(type) {
	case AExprAtom:
		b, ok := b.(AExprAtom)
		return ok && a.Lit.Equal(b.Lit)
	case AExprVar:
		b, ok := b.(AExprVar)
		return ok && a.Name == b.Name
	case AExprApp:
		b, ok := b.(AExprApp)
		if !ok || a.Op != b.Op || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !actionExprEqual(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ActionEqual reports whether two actions are structurally identical.
func ActionEqual(a, b Action) bool {
	switch a := a.(type) {
	case Nop:
		_, ok := b.(Nop)
		return ok
	case Seq:
		b, ok := b.(Seq)
		return ok && ActionEqual(a.First, b.First) && ActionEqual(a.Second, b.Second)
	case Merge:
		b, ok := b.(Merge)
		return ok && actionExprEqual(a.Left, b.Left) && actionExprEqual(a.Right, b.Right)
	case SetFun:
		b, ok := b.(SetFun)
		return ok && actionExprEqual(a.Target, b.Target) && actionExprEqual(a.Value, b.Value)
	default:
		return false
	}
}
