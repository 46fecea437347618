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
	"fmt"

	"golang.org/x/exp/slices"
)

// Rule pairs a Query with an Action. The rule package (in the
// sneller tree this is grounded on) does not assign semantic
// meaning to the shape of a rule beyond this pairing; semantics
// live in the egraph and driver packages.
type Rule struct {
	Query  Query
	Action Action
	// Name is an optional human-readable label used in logs and
	// the driver's run-log; it carries no semantic weight.
	Name string
}

// NewRule constructs a Rule and enforces the well-formedness
// invariant from the rule contract: every pattern variable the
// action references must occur in the query. It fails fast at
// construction time rather than at match time.
func NewRule(name string, q Query, a Action) (Rule, error) {
	bound := make(map[string]bool, len(q))
	for _, v := range q.PVars() {
		bound[v] = true
	}
	for _, v := range a.PVars() {
		if !bound[v] {
			return Rule{}, fmt.Errorf("ast: rule %q: action references unbound pattern variable %q", name, v)
		}
	}
	return Rule{Query: q, Action: a, Name: name}, nil
}

// String implements fmt.Stringer.
func (r Rule) String() string {
	return r.Query.String() + "\n->\n" + r.Action.String()
}

// Equal reports whether two rules have the same query and action
// (ignoring Name).
func (r Rule) Equal(o Rule) bool {
	if len(r.Query) != len(o.Query) {
		return false
	}
	for i := range r.Query {
		if !PatternEqual(r.Query[i], o.Query[i]) {
			return false
		}
	}
	return ActionEqual(r.Action, o.Action)
}

// Rules is a named list of rules, run in list order by driver.Saturate.
type Rules []Rule

// Names returns the Name field of every rule, in order.
func (rs Rules) Names() []string {
	return slices.Clone(namesOf(rs))
}

func namesOf(rs Rules) []string {
	out := make([]string, len(rs))
	for i := range rs {
		out[i] = rs[i].Name
	}
	return out
}
