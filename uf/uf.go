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

// Package uf implements a disjoint-set forest (union-find) with
// path compression. It is the single source of truth for e-class
// identity in the rest of this module: every id ever produced by
// [UF.MkSet] lives until the forest is discarded, and ids only ever
// become non-canonical by being unioned into a lower-numbered class.
package uf

// Id is an e-class handle. The zero Id is valid; it is whatever
// class was allocated first.
type Id uint32

// UF is a disjoint-set forest over densely-numbered [Id] values.
// The zero value is an empty forest, ready to use.
type UF struct {
	parent []Id
	// dirty is set by Union whenever it actually merges two
	// distinct classes, and is expected to be cleared externally
	// by a rebuild fixed point (see egraph.EGraph.Rebuild).
	dirty bool
}

// Len returns the number of ids ever allocated (including
// non-canonical ones).
func (u *UF) Len() int {
	return len(u.parent)
}

// Dirty reports whether any Union call has merged two distinct
// classes since the last ClearDirty.
func (u *UF) Dirty() bool {
	return u.dirty
}

// ClearDirty resets the dirty bit. Rebuild fixed points call this
// at the start of each pass so that they can detect whether that
// pass changed anything.
func (u *UF) ClearDirty() {
	u.dirty = false
}

// MkSet allocates a fresh class and returns its id. The new id is
// its own leader until it is unioned with something else.
func (u *UF) MkSet() Id {
	id := Id(len(u.parent))
	u.parent = append(u.parent, id)
	return id
}

// Find returns the canonical (leader) id of the class containing id.
// Every node visited on the way to the root is written directly to
// the root (full path compression), so repeated Find calls on the
// same id are amortized near-constant time.
func (u *UF) Find(id Id) Id {
	root := id
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[id] != root {
		id, u.parent[id] = u.parent[id], root
	}
	return root
}

// Union merges the classes containing a and b and returns the
// surviving leader. The lower-numbered leader always wins, which
// makes the result deterministic for a given sequence of unions
// regardless of call order between equivalent pairs. If a and b
// are already in the same class, Union is a no-op and the dirty
// bit is left untouched.
func (u *UF) Union(a, b Id) Id {
	la, lb := u.Find(a), u.Find(b)
	if la == lb {
		return la
	}
	u.dirty = true
	if la < lb {
		u.parent[lb] = la
		return la
	}
	u.parent[la] = lb
	return lb
}

// Same reports whether a and b are currently in the same class.
func (u *UF) Same(a, b Id) bool {
	return u.Find(a) == u.Find(b)
}
