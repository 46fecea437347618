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

import "errors"

// The fatal error kinds from the rule-execution error taxonomy.
// Callers distinguish them with errors.Is; the wrapping message adds
// the offending name/value.
var (
	// ErrInvalidAST is returned when an action or pattern node is
	// an unrecognized variant. Construction through the ast package
	// should make this unreachable; it exists as a defensive
	// backstop for exhaustiveness checks that fall through.
	ErrInvalidAST = errors.New("egraph: invalid AST node")

	// ErrArityMismatch is returned when an AppPat's variable count
	// disagrees with a table entry's argument tuple length.
	ErrArityMismatch = errors.New("egraph: pattern arity does not match table entry")

	// ErrUnboundVar is returned when an action expression references
	// a pattern variable absent from its substitution. ast.NewRule's
	// well-formedness check should make this unreachable for rules
	// built through the normal constructor.
	ErrUnboundVar = errors.New("egraph: action references unbound pattern variable")

	// ErrMissingFunTab is returned when SetFun or a FunTab-targeted
	// get names a function that was never registered.
	ErrMissingFunTab = errors.New("egraph: no function table registered for this name")

	// ErrMissingFunTabEntry is returned by GetFun on a FunTab key
	// with no stored value.
	ErrMissingFunTabEntry = errors.New("egraph: no function table entry for this key")

	// ErrFunTabType is returned when a value being written into a
	// FunTab does not match that table's value type.
	ErrFunTabType = errors.New("egraph: value type does not match function table's domain")
)
