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

package driver

import (
	"testing"

	"github.com/latticeql/eqsat/ast"
	"github.com/latticeql/eqsat/egraph"
)

func addZeroRule(t *testing.T) ast.Rule {
	t.Helper()
	q := ast.Query{
		ast.AtomPat{Lit: ast.Int(0), Result: "?zero"},
		ast.AppPat{Op: "+", Args: []string{"?x", "?zero"}, Result: "?root"},
	}
	action := ast.Merge{Left: ast.AExprVar{Name: "?x"}, Right: ast.AExprVar{Name: "?root"}}
	r, err := ast.NewRule("add-zero", q, action)
	if err != nil {
		t.Fatalf("NewRule: %v", err)
	}
	return r
}

func addCommRule(t *testing.T) ast.Rule {
	t.Helper()
	q := ast.Query{ast.AppPat{Op: "+", Args: []string{"?l", "?r"}, Result: "?x"}}
	action := ast.Merge{
		Left: ast.AExprVar{Name: "?x"},
		Right: ast.AExprApp{Op: "+", Args: []ast.ActionExpr{
			ast.AExprVar{Name: "?r"}, ast.AExprVar{Name: "?l"},
		}},
	}
	r, err := ast.NewRule("add-comm", q, action)
	if err != nil {
		t.Fatalf("NewRule: %v", err)
	}
	return r
}

func assocRule(t *testing.T) ast.Rule {
	t.Helper()
	q := ast.Query{
		ast.AppPat{Op: "+", Args: []string{"?a", "?r"}, Result: "?root"},
		ast.AppPat{Op: "+", Args: []string{"?b", "?c"}, Result: "?r"},
	}
	action := ast.Merge{
		Left: ast.AExprVar{Name: "?root"},
		Right: ast.AExprApp{Op: "+", Args: []ast.ActionExpr{
			ast.AExprApp{Op: "+", Args: []ast.ActionExpr{ast.AExprVar{Name: "?a"}, ast.AExprVar{Name: "?b"}}},
			ast.AExprVar{Name: "?c"},
		}},
	}
	r, err := ast.NewRule("assoc-lr", q, action)
	if err != nil {
		t.Fatalf("NewRule: %v", err)
	}
	return r
}

func TestSaturateConvergesOnFixedPoint(t *testing.T) {
	g := egraph.New()
	x := ast.LitSym("x")
	xPlusZero, err := g.Insert(ast.Call("+", x, ast.LitInt(0)))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	xID, err := g.Insert(x)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	result, err := Saturate(g, ast.Rules{addZeroRule(t)}, Options{MaxPasses: 10})
	if err != nil {
		t.Fatalf("Saturate: %v", err)
	}
	if !result.Converged {
		t.Fatalf("expected convergence within 10 passes, got %+v", result)
	}
	if g.Find(xPlusZero) != g.Find(xID) {
		t.Fatal("saturating with add-zero should unify (+ x 0) and x")
	}
}

func TestSaturateRespectsMaxPasses(t *testing.T) {
	g := egraph.New()
	_, err := g.Insert(ast.Call("+", ast.LitSym("x"), ast.LitSym("y")))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	result, err := Saturate(g, ast.Rules{addCommRule(t)}, Options{MaxPasses: 1})
	if err != nil {
		t.Fatalf("Saturate: %v", err)
	}
	if result.Converged {
		t.Fatal("add-comm needs a second, unchanged pass to converge; MaxPasses 1 should cut it off first")
	}
	if result.Passes != 1 {
		t.Fatalf("got %d passes; want exactly 1 (MaxPasses cap)", result.Passes)
	}
}

func TestDedupeRulesDropsDuplicateContent(t *testing.T) {
	r1 := addZeroRule(t)
	r2 := addZeroRule(t)
	r2.Name = "add-zero-again"

	out := dedupeRules(ast.Rules{r1, r2}, nil)
	if len(out) != 1 {
		t.Fatalf("got %d rules after dedup; want 1", len(out))
	}
	if out[0].Name != r1.Name {
		t.Fatalf("dedupe should keep the first-seen rule, got %q", out[0].Name)
	}
}

// Property 7: running a confluent rule set in either order to a
// saturation fixed point produces the same canonical-class verdict
// for a pair of terms the rules are expected to unify.
func TestSaturateOrderIrrelevantAtFixedPoint(t *testing.T) {
	run := func(order ast.Rules) bool {
		g := egraph.New()
		lhs, err := g.Insert(ast.Call("+", ast.LitInt(1), ast.Call("+", ast.LitInt(2), ast.LitInt(3))))
		if err != nil {
			t.Fatalf("Insert: %v", err)
		}
		rhs, err := g.Insert(ast.Call("+", ast.Call("+", ast.LitInt(1), ast.LitInt(2)), ast.LitInt(3)))
		if err != nil {
			t.Fatalf("Insert: %v", err)
		}
		if _, err := Saturate(g, order, Options{MaxPasses: 20}); err != nil {
			t.Fatalf("Saturate: %v", err)
		}
		return g.Find(lhs) == g.Find(rhs)
	}

	order1 := ast.Rules{assocRule(t), addCommRule(t)}
	order2 := ast.Rules{addCommRule(t), assocRule(t)}

	eq1 := run(order1)
	eq2 := run(order2)
	if eq1 != eq2 {
		t.Fatalf("rule order should not affect the fixed-point result: order1=%v order2=%v", eq1, eq2)
	}
	if !eq1 {
		t.Fatal("the associativity rule should unify the two inserted terms at saturation")
	}
}
