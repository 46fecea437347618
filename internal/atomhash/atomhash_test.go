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

package atomhash

import "testing"

func TestStringDeterministic(t *testing.T) {
	a := String("hello")
	b := String("hello")
	if a != b {
		t.Fatalf("String should be deterministic across calls: got %d and %d", a, b)
	}
}

func TestStringDistinguishesInputs(t *testing.T) {
	if String("hello") == String("world") {
		t.Fatal("distinct strings should (overwhelmingly likely) hash differently")
	}
}

func TestBytesAgreesWithString(t *testing.T) {
	s := "some substitution key"
	if Bytes([]byte(s)) != String(s) {
		t.Fatal("Bytes and String should agree on the same content")
	}
}
