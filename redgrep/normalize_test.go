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

func TestNormalisedIdempotent(t *testing.T) {
	exprs := []*Expr{
		NewEmptySet(),
		NewEmptyString(),
		KleeneClosure(KleeneClosure(NewCharacter('a'))),
		Complement(Complement(NewCharacter('a'))),
		Concatenation(NewEmptyString(), NewCharacter('a')),
		Disjunction(NewCharacter('b'), NewCharacter('a'), NewCharacter('a')),
		Conjunction(Complement(NewEmptySet()), NewCharacter('a')),
	}
	for _, e := range exprs {
		once := Normalised(e)
		twice := Normalised(once)
		if once != twice {
			t.Fatalf("Normalised not idempotent for %v: %v != %v", e, once, twice)
		}
		if !once.IsNormalised() {
			t.Fatalf("Normalised(%v) not tagged normalised", e)
		}
	}
}

func TestKleeneClosureRules(t *testing.T) {
	if got := Normalised(KleeneClosure(KleeneClosure(NewCharacter('a')))); got.Kind() != KindKleeneClosure || got.Sub().Kind() != Character {
		t.Fatalf("(a*)* should collapse to a*, got %v", got)
	}
	if got := Normalised(KleeneClosure(NewEmptySet())); got.Kind() != EmptyString {
		t.Fatalf("∅* should be ε, got %v", got)
	}
	if got := Normalised(KleeneClosure(NewEmptyString())); got.Kind() != EmptyString {
		t.Fatalf("ε* should be ε, got %v", got)
	}
}

func TestComplementDoubleNegation(t *testing.T) {
	a := NewCharacter('a')
	if got := Normalised(Complement(Complement(a))); got != a {
		t.Fatalf("¬¬a should collapse to a, got %v", got)
	}
}

func TestConcatenationIdentitiesAndAnnihilator(t *testing.T) {
	a := NewCharacter('a')
	if got := Normalised(Concatenation(NewEmptyString(), a)); got != a {
		t.Fatalf("ε·a should be a, got %v", got)
	}
	if got := Normalised(Concatenation(a, NewEmptyString())); got != a {
		t.Fatalf("a·ε should be a, got %v", got)
	}
	if got := Normalised(Concatenation(NewEmptySet(), a)); got.Kind() != EmptySet {
		t.Fatalf("∅·a should be ∅, got %v", got)
	}
	if got := Normalised(Concatenation(a, NewEmptySet())); got.Kind() != EmptySet {
		t.Fatalf("a·∅ should be ∅, got %v", got)
	}
}

func TestConcatenationReassociates(t *testing.T) {
	a, b, c := NewCharacter('a'), NewCharacter('b'), NewCharacter('c')
	left := Concatenation(Concatenation(a, b), c)
	right := Concat(a, b, c)
	if Normalised(left) != Normalised(right) {
		t.Fatalf("(a·b)·c and a·(b·c) should normalise to the same node")
	}
}

func TestConjunctionRules(t *testing.T) {
	a := NewCharacter('a')
	universalE := Complement(NewEmptySet())

	if got := Normalised(Conjunction(NewEmptySet(), a)); got.Kind() != EmptySet {
		t.Fatalf("∅ & a should be ∅, got %v", got)
	}
	if got := Normalised(Conjunction(universalE, a)); got != a {
		t.Fatalf("Σ* & a should collapse to a, got %v", got)
	}
	if got := Normalised(Conjunction(a, a)); got != a {
		t.Fatalf("a & a should collapse to a, got %v", got)
	}
	if got := Normalised(Conjunction(universalE, universalE)); got.Kind() != KindComplement {
		t.Fatalf("Σ* & Σ* should stay Σ*, got %v", got)
	}
}

func TestDisjunctionRules(t *testing.T) {
	a := NewCharacter('a')
	universalE := Complement(NewEmptySet())

	if got := Normalised(Disjunction(universalE, a)); got.Kind() != KindComplement {
		t.Fatalf("Σ* | a should be Σ*, got %v", got)
	}
	if got := Normalised(Disjunction(NewEmptySet(), a)); got != a {
		t.Fatalf("∅ | a should collapse to a, got %v", got)
	}
	if got := Normalised(Disjunction(a, a)); got != a {
		t.Fatalf("a | a should collapse to a, got %v", got)
	}
}

func TestCommutativeOperandsAreSortedAndDeduped(t *testing.T) {
	a, b := NewCharacter('a'), NewCharacter('b')
	x := Normalised(Disjunction(b, a, b, a))
	y := Normalised(Disjunction(a, b))
	if x != y {
		t.Fatalf("Disjunction(b,a,b,a) should normalise the same as Disjunction(a,b): %v vs %v", x, y)
	}
}
