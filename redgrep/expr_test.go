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

package redgrep

import "testing"

func TestHashConsIdentity(t *testing.T) {
	a := Concatenation(NewCharacter('a'), NewCharacter('b'))
	b := Concatenation(NewCharacter('a'), NewCharacter('b'))
	if a != b {
		t.Fatalf("structurally equal expressions were not identical: %p vs %p", a, b)
	}
}

func TestNewCharacterClassDegeneracy(t *testing.T) {
	cases := []struct {
		name   string
		ranges []RuneRange
		want   Kind
	}{
		{"empty", nil, EmptySet},
		{"singleton", []RuneRange{{'a', 'a'}}, Character},
		{"real class", []RuneRange{{'a', 'c'}}, CharacterClass},
		{"duplicates merge to singleton", []RuneRange{{'a', 'a'}, {'a', 'a'}}, Character},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := NewCharacterClass(c.ranges...).Kind()
			if got != c.want {
				t.Fatalf("NewCharacterClass(%v).Kind() = %v, want %v", c.ranges, got, c.want)
			}
		})
	}
}

func TestBuilderArityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on wrong arity")
		}
	}()
	buildKleeneClosure(nil, false)
}

func TestAccessorWrongKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling Character() on a non-Character node")
		}
	}()
	NewEmptySet().Character()
}

func TestExprString(t *testing.T) {
	e := Concat(NewCharacter('a'), NewCharacter('b'), NewCharacter('c'))
	if got, want := e.String(), "abc"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
