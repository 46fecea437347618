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

// Package fingerprint computes a structural hash of a Rule, used by
// the driver package to drop rules whose query and action duplicate
// an earlier rule in the list before saturation starts, without
// comparing ast.Rule values directly. It uses blake2b, the same hash
// fsenv.go uses to content-address cached query inputs.
package fingerprint

import (
	"golang.org/x/crypto/blake2b"

	"github.com/latticeql/eqsat/ast"
)

// Rule returns a 32-byte blake2b digest of r's query and action text.
// Two rules with the same query/action (regardless of Name) fingerprint
// identically, matching ast.Rule.Equal's notion of equivalence.
func Rule(r ast.Rule) [32]byte {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(r.Query.String()))
	h.Write([]byte{0})
	h.Write([]byte(r.Action.String()))
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
