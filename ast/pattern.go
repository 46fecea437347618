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

// Pattern is one atom of a Query: either an AtomPat (matches a
// literal already present in the atom map) or an AppPat (matches
// every entry of an operator's table, whether that operator lives
// in an AppTab or a FunTab). A Query is a conjunction of Patterns.
type Pattern interface {
	pattern()
	String() string
	// PVars returns the set of pattern-variable names this
	// pattern can bind, in first-use order.
	PVars() []string
}

// AtomPat matches a literal atom already present in the e-graph and
// binds its class id to Result.
type AtomPat struct {
	Lit    Atom
	Result string
}

func (AtomPat) pattern() {}

// String implements Pattern.
func (p AtomPat) String() string { return p.Lit.String() + " = " + p.Result }

// PVars implements Pattern.
func (p AtomPat) PVars() []string { return []string{p.Result} }

// AppPat matches every entry of the table named Op (an AppTab or a
// FunTab) and binds each argument id to the corresponding name in
// Args, and the table's stored id/value to Result.
type AppPat struct {
	Op     string
	Args   []string
	Result string
}

func (AppPat) pattern() {}

// String implements Pattern.
func (p AppPat) String() string {
	var out strings.Builder
	out.WriteByte('(')
	out.WriteString(p.Op)
	for _, a := range p.Args {
		out.WriteByte(' ')
		out.WriteString(a)
	}
	out.WriteString(") = ")
	out.WriteString(p.Result)
	return out.String()
}

// PVars implements Pattern.
func (p AppPat) PVars() []string {
	out := make([]string, 0, len(p.Args)+1)
	out = append(out, p.Args...)
	out = append(out, p.Result)
	return out
}

// Query is an ordered conjunction of Patterns. Order only affects
// the mechanics of the naive e-matching loop (see egraph.Match); the
// result substitution set is order-independent.
type Query []Pattern

// PVars returns the set (deduplicated, first-use order) of every
// pattern variable bound anywhere in q.
func (q Query) PVars() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range q {
		for _, v := range p.PVars() {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// String implements fmt.Stringer, one pattern per line.
func (q Query) String() string {
	var out strings.Builder
	for i, p := range q {
		if i > 0 {
			out.WriteByte('\n')
		}
		out.WriteString(p.String())
	}
	return out.String()
}

// PatternEqual reports whether two patterns are structurally
// identical.
func PatternEqual(a, b Pattern) bool {
	switch a := a.(type) {
	case AtomPat:
		b, ok := b.(AtomPat)
		return ok && a.Lit.Equal(b.Lit) && a.Result == b.Result
	case AppPat:
		b, ok := b.(AppPat)
		if !ok || a.Op != b.Op || a.Result != b.Result || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if a.Args[i] != b.Args[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}
