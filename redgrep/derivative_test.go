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

func TestDerivativeLeaves(t *testing.T) {
	if got := Derivative(NewEmptySet(), 'a').Kind(); got != EmptySet {
		t.Fatalf("∂a(∅) = %v, want ∅", got)
	}
	if got := Derivative(NewEmptyString(), 'a').Kind(); got != EmptySet {
		t.Fatalf("∂a(ε) = %v, want ∅", got)
	}
	if got := Derivative(NewAnyCharacter(), 'a').Kind(); got != EmptyString {
		t.Fatalf("∂a(.) = %v, want ε", got)
	}
	if got := Derivative(NewCharacter('a'), 'a').Kind(); got != EmptyString {
		t.Fatalf("∂a(a) = %v, want ε", got)
	}
	if got := Derivative(NewCharacter('a'), 'b').Kind(); got != EmptySet {
		t.Fatalf("∂b(a) = %v, want ∅", got)
	}
	class := NewCharacterClass(RuneRange{'a', 'c'})
	if got := Derivative(class, 'b').Kind(); got != EmptyString {
		t.Fatalf("∂b([a-c]) = %v, want ε", got)
	}
	if got := Derivative(class, 'z').Kind(); got != EmptySet {
		t.Fatalf("∂z([a-c]) = %v, want ∅", got)
	}
}

func TestDerivativeKleeneClosure(t *testing.T) {
	a := NewCharacter('a')
	got := Derivative(KleeneClosure(a), 'a')
	if got.Kind() != KindKleeneClosure {
		t.Fatalf("∂a(a*) = %v, want a*", got)
	}
}

func TestDerivativeConcatenation(t *testing.T) {
	// ∂a(a·b) = ε·b = b
	ab := Concat(NewCharacter('a'), NewCharacter('b'))
	if got, want := Derivative(ab, 'a'), NewCharacter('b'); got != want {
		t.Fatalf("∂a(ab) = %v, want %v", got, want)
	}
	// ∂b(a·b) = ∅ (a doesn't match b, and a isn't nullable)
	if got := Derivative(ab, 'b').Kind(); got != EmptySet {
		t.Fatalf("∂b(ab) = %v, want ∅", got)
	}
}

func TestDerivativeIsAlwaysNormalised(t *testing.T) {
	e := Conjunction(NewAnyCharacter(), Disjunction(NewCharacter('a'), NewCharacter('b')))
	got := Derivative(e, 'a')
	if !got.IsNormalised() {
		t.Fatalf("Derivative result %v is not tagged normalised", got)
	}
}

func TestDerivativeLawAgainstDirectMatch(t *testing.T) {
	// a·w ∈ L(e) ⇔ w ∈ L(∂a(e))
	e := KleeneClosure(Disjunction(NewCharacter('a'), NewCharacter('b')))
	for _, w := range []string{"", "a", "b", "ab", "ba", "abba", "c"} {
		full := "a" + w
		got := Match(e, full)
		want := Match(Derivative(e, 'a'), w)
		if got != want {
			t.Fatalf("derivative law failed for w=%q: Match(e,%q)=%v, Match(∂a(e),%q)=%v", w, full, got, w, want)
		}
	}
}
