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

// Package atomhash content-hashes byte strings (in this module, the
// canonical key strings of substitutions) using SipHash, the same technique
// expr.redactBuf uses in the sneller tree to turn an arbitrary byte
// string into a stable 64-bit value. Unlike that use (which hashes
// to obscure a value for redaction), here the hash only ever serves
// as a fast-path equality/dedup key — full structural equality is
// always the tie-breaker, so key collisions cannot cause incorrect
// results, only a slower fallback comparison.
package atomhash

import (
	"github.com/dchest/siphash"
)

// k0, k1 are a fixed key pair. A fixed key (rather than a
// process-random one) keeps hash values stable across runs.
const k0, k1 = 0x5ca1ab1e, 0xc0ffee

// Bytes hashes an arbitrary byte string.
func Bytes(b []byte) uint64 {
	return siphash.Hash(k0, k1, b)
}

// String hashes the bytes of s.
func String(s string) uint64 {
	return siphash.Hash(k0, k1, []byte(s))
}
