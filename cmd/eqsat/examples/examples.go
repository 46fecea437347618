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

// Package examples holds built-in rule sets for the eqsat demo CLI,
// constructed directly as ast.Rule values. There is no surface syntax
// for rules in this engine (see ast's package doc); a session config
// selects one of these sets by name instead of supplying rule text.
package examples

import "github.com/latticeql/eqsat/ast"

// StartTermByName returns one of a small set of built-in starting
// terms, by name. Like the rule sets below, these are Go-constructed
// ast.Term values: there is no S-expression front end to parse a term
// from text (see ast's package doc), so a session config selects a
// starting term by name instead of supplying term text.
func StartTermByName(name string) (ast.Term, bool) {
	switch name {
	case "assoc":
		return ast.Call("+", ast.LitInt(1), ast.Call("+", ast.LitInt(2), ast.LitInt(3))), true
	case "add-zero":
		return ast.Call("+", ast.LitSym("x"), ast.LitInt(0)), true
	case "double-negation":
		return ast.Call("~", ast.Call("~", ast.LitSym("x"))), true
	default:
		return nil, false
	}
}

// StartTermNames lists the names StartTermByName recognizes.
func StartTermNames() []string {
	return []string{"assoc", "add-zero", "double-negation"}
}

func mustRule(name string, q ast.Query, a ast.Action) ast.Rule {
	r, err := ast.NewRule(name, q, a)
	if err != nil {
		panic("examples: " + name + ": " + err.Error())
	}
	return r
}

// Arith is a small confluent rule set over "+": commutativity,
// left-to-right associativity, and additive identity elimination.
// It is the rule set backing the arithmetic scenarios (S2, S4).
func Arith() ast.Rules {
	comm := mustRule("add-comm",
		ast.Query{ast.AppPat{Op: "+", Args: []string{"?l", "?r"}, Result: "?x"}},
		ast.Merge{
			Left: ast.AExprVar{Name: "?x"},
			Right: ast.AExprApp{Op: "+", Args: []ast.ActionExpr{
				ast.AExprVar{Name: "?r"}, ast.AExprVar{Name: "?l"},
			}},
		},
	)
	assoc := mustRule("assoc-lr",
		ast.Query{
			ast.AppPat{Op: "+", Args: []string{"?a", "?r"}, Result: "?root"},
			ast.AppPat{Op: "+", Args: []string{"?b", "?c"}, Result: "?r"},
		},
		ast.Merge{
			Left: ast.AExprVar{Name: "?root"},
			Right: ast.AExprApp{Op: "+", Args: []ast.ActionExpr{
				ast.AExprApp{Op: "+", Args: []ast.ActionExpr{
					ast.AExprVar{Name: "?a"}, ast.AExprVar{Name: "?b"},
				}},
				ast.AExprVar{Name: "?c"},
			}},
		},
	)
	addZero := mustRule("add-zero",
		ast.Query{
			ast.AtomPat{Lit: ast.Int(0), Result: "?zero"},
			ast.AppPat{Op: "+", Args: []string{"?x", "?zero"}, Result: "?root"},
		},
		ast.Merge{Left: ast.AExprVar{Name: "?x"}, Right: ast.AExprVar{Name: "?root"}},
	)
	return ast.Rules{comm, assoc, addZero}
}

// Logic is a small rule set over unary "~" (negation): double-negation
// elimination, the rule behind scenario S3.
func Logic() ast.Rules {
	negNeg := mustRule("neg-neg",
		ast.Query{
			ast.AppPat{Op: "~", Args: []string{"?a"}, Result: "?root"},
			ast.AppPat{Op: "~", Args: []string{"?b"}, Result: "?a"},
		},
		ast.Merge{Left: ast.AExprVar{Name: "?b"}, Right: ast.AExprVar{Name: "?root"}},
	)
	return ast.Rules{negNeg}
}

// ByName looks up a built-in rule set by name for use in a session
// config. It returns false if name does not name a known set.
func ByName(name string) (ast.Rules, bool) {
	switch name {
	case "arith":
		return Arith(), true
	case "logic":
		return Logic(), true
	default:
		return nil, false
	}
}

// Names lists the rule sets ByName recognizes, in a fixed order.
func Names() []string {
	return []string{"arith", "logic"}
}
