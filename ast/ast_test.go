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
	"testing"
)

func TestTermString(t *testing.T) {
	tests := []struct {
		term Term
		want string
	}{
		{LitInt(42), "42"},
		{LitSym("x"), "x"},
		{Call("+", LitSym("x"), LitInt(0)), "(+ x 0)"},
		{Call("-", Call("+", LitSym("x"), LitSym("y")), LitSym("x")), "(- (+ x y) x)"},
	}
	for _, tc := range tests {
		if got := tc.term.String(); got != tc.want {
			t.Errorf("got %q; want %q", got, tc.want)
		}
	}
}

func TestTermEqual(t *testing.T) {
	a := Call("+", LitInt(1), LitInt(2))
	b := Call("+", LitInt(1), LitInt(2))
	c := Call("+", LitInt(1), LitInt(3))
	if !a.Equal(b) {
		t.Fatal("identical terms should be Equal")
	}
	if a.Equal(c) {
		t.Fatal("terms with different args should not be Equal")
	}
}

func TestQueryPVars(t *testing.T) {
	q := Query{
		AppPat{Op: "+", Args: []string{"?a", "?r"}, Result: "?root"},
		AppPat{Op: "+", Args: []string{"?b", "?c"}, Result: "?r"},
	}
	got := q.PVars()
	want := []string{"?a", "?r", "?root", "?b", "?c"}
	if len(got) != len(want) {
		t.Fatalf("got %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v; want %v", got, want)
		}
	}
}

func TestRuleWellFormed(t *testing.T) {
	q := Query{AtomPat{Lit: Int(0), Result: "?zero"}}
	a := Merge{Left: AExprVar{Name: "?zero"}, Right: AExprAtom{Lit: Int(0)}}
	if _, err := NewRule("zero-is-zero", q, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRuleRejectsUnboundVar(t *testing.T) {
	q := Query{AtomPat{Lit: Int(0), Result: "?zero"}}
	a := Merge{Left: AExprVar{Name: "?unbound"}, Right: AExprAtom{Lit: Int(0)}}
	_, err := NewRule("bad-rule", q, a)
	if err == nil {
		t.Fatal("expected an error for an action referencing an unbound pattern variable")
	}
	if !strings.Contains(err.Error(), "?unbound") {
		t.Fatalf("error should mention the offending variable, got: %v", err)
	}
}

func TestRuleEqual(t *testing.T) {
	q := Query{AtomPat{Lit: Int(0), Result: "?zero"}}
	a := Merge{Left: AExprVar{Name: "?zero"}, Right: AExprAtom{Lit: Int(0)}}
	r1, _ := NewRule("r1", q, a)
	r2, _ := NewRule("r2", q, a)
	if !r1.Equal(r2) {
		t.Fatal("rules with the same query/action but different names should be Equal")
	}
}
