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

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Term is a ground S-expression: either an Atom leaf or an
// application of an operator to a list of argument Terms. Terms are
// what gets inserted into the e-graph (see egraph.EGraph.Insert).
type Term interface {
	term()
	String() string
	Equal(Term) bool
}

// Leaf wraps an Atom as a Term.
type Leaf struct {
	Atom Atom
}

func (Leaf) term() {}

// String implements Term.
func (l Leaf) String() string { return l.Atom.String() }

// Equal implements Term.
func (l Leaf) Equal(o Term) bool {
	l2, ok := o.(Leaf)
	return ok && l.Atom.Equal(l2.Atom)
}

// App is an application of Op to Args.
type App struct {
	Op   string
	Args []Term
}

func (App) term() {}

// String implements Term.
func (a App) String() string {
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

// Equal implements Term.
func (a App) Equal(o Term) bool {
	a2, ok := o.(App)
	if !ok || a.Op != a2.Op {
		return false
	}
	return slices.EqualFunc(a.Args, a2.Args, func(x, y Term) bool { return x.Equal(y) })
}

// LitInt, LitFloat and LitSym are convenience constructors for leaf terms.
func LitInt(i int64) Term    { return Leaf{Atom: Int(i)} }
func LitFloat(f float64) Term { return Leaf{Atom: Float(f)} }
func LitSym(s string) Term    { return Leaf{Atom: Symbol(s)} }

// Call builds an application term.
func Call(op string, args ...Term) Term {
	return App{Op: op, Args: args}
}
