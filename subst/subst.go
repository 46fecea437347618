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

// Package subst implements the substitution and substitution-set
// types used by e-matching. A Subst is an immutable variable->value
// map: binding a new variable returns a new Subst rather than
// mutating the receiver, which is what makes a SubstSet trivially
// safe to fan substitutions out over and cheap to deduplicate by
// content hash.
//
// A bound value is usually a uf.Id (when the pattern variable sits
// in an e-class position, i.e. it came from an atom or an AppTab
// entry), but a FunTab match binds its result variable to whatever
// value the analysis stores there instead — see egraph.Match. Bound
// values must be comparable with ==.
package subst

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/latticeql/eqsat/internal/atomhash"
	"github.com/latticeql/eqsat/uf"
)

// binding is one (variable, value) pair in a Subst's sorted backing
// slice. A sorted slice keeps equality and hashing independent of
// insertion order without pulling in a persistent-map library.
type binding struct {
	name string
	val  any
}

// Subst is an immutable mapping from pattern-variable name to a
// bound value. The zero value is the empty substitution. hash is
// precomputed on every Bind so SubstSet can dedup by hash bucket
// instead of a full key comparison on every insert.
type Subst struct {
	binds []binding
	hash  uint64
}

// Bogus is the distinguished sentinel substitution representing a
// failed (inconsistent) binding. It is a sum-type variant of the
// bind result, not a subtype of Subst: callers branch on IsBogus
// rather than relying on interface satisfaction (see design note:
// "model as a sum-type variant of the substitution result").
var Bogus = Subst{binds: bogusMarker}

// bogusMarker is a unique non-nil sentinel slice value used to flag
// a Subst as Bogus without needing a separate boolean field checked
// on every operation.
var bogusMarker = []binding{{name: "\x00bogus"}}

// IsBogus reports whether s is the Bogus sentinel.
func (s Subst) IsBogus() bool {
	return len(s.binds) == 1 && &s.binds[0] == &bogusMarker[0]
}

// Lookup returns the value bound to v and whether it was bound.
func (s Subst) Lookup(v string) (any, bool) {
	i := s.search(v)
	if i < len(s.binds) && s.binds[i].name == v {
		return s.binds[i].val, true
	}
	return nil, false
}

// LookupID is Lookup for the common case where v is expected to be
// bound to an e-class id rather than an analysis value.
func (s Subst) LookupID(v string) (uf.Id, bool) {
	val, ok := s.Lookup(v)
	if !ok {
		return 0, false
	}
	id, ok := val.(uf.Id)
	return id, ok
}

func (s Subst) search(v string) int {
	return sort.Search(len(s.binds), func(i int) bool { return s.binds[i].name >= v })
}

// Bind extends s with v bound to val. If v is already bound to val,
// s is returned unchanged (not a copy). If v is bound to a
// different value, Bind returns Bogus, which absorbs all further
// Bind calls. Binding the Bogus sentinel always returns Bogus.
func (s Subst) Bind(v string, val any) Subst {
	if s.IsBogus() {
		return Bogus
	}
	i := s.search(v)
	if i < len(s.binds) && s.binds[i].name == v {
		if s.binds[i].val == val {
			return s
		}
		return Bogus
	}
	out := make([]binding, len(s.binds)+1)
	copy(out, s.binds[:i])
	out[i] = binding{name: v, val: val}
	copy(out[i+1:], s.binds[i:])
	return Subst{binds: out, hash: atomhash.String(key(out))}
}

// BindID is Bind specialized for e-class ids, the common case.
func (s Subst) BindID(v string, id uf.Id) Subst {
	return s.Bind(v, id)
}

// String implements fmt.Stringer.
func (s Subst) String() string {
	if s.IsBogus() {
		return "bogus"
	}
	var out strings.Builder
	out.WriteByte('{')
	for i, b := range s.binds {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(b.name)
		out.WriteString(": ")
		out.WriteString(valueString(b.val))
	}
	out.WriteByte('}')
	return out.String()
}

func valueString(val any) string {
	if id, ok := val.(uf.Id); ok {
		return strconv.FormatUint(uint64(id), 10)
	}
	return fmt.Sprint(val)
}

// key returns a canonical content string for binds, used both to
// compute Subst.hash and, on a hash collision, to break ties with
// an exact comparison. Equal bindings (any insertion order) always
// produce equal keys because binds is kept sorted by name.
func key(binds []binding) string {
	var out strings.Builder
	for _, b := range binds {
		out.WriteString(b.name)
		out.WriteByte('\x00')
		out.WriteString(valueString(b.val))
		out.WriteByte('\x00')
	}
	return out.String()
}

// Equal reports whether s and o bind exactly the same variables to
// exactly the same values.
func (s Subst) Equal(o Subst) bool {
	if s.hash != o.hash || len(s.binds) != len(o.binds) {
		return false
	}
	for i := range s.binds {
		if s.binds[i].name != o.binds[i].name || s.binds[i].val != o.binds[i].val {
			return false
		}
	}
	return true
}

// Hash returns the precomputed content hash used by SubstSet.
func (s Subst) Hash() uint64 {
	return s.hash
}
