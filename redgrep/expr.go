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

import (
	"fmt"
	"sync/atomic"
)

// Expr is an immutable regular-expression syntax-tree node. Two Exprs with
// identical kind, payload and (recursively) identical children are always
// the same *Expr value: construction goes through the hash-cons table in
// hashcons.go, so Expr equality is pointer equality and Expr is safe to use
// as a map key directly.
//
// Of course, if you call the accessor for the wrong Kind, you're gonna have
// a bad time: each accessor panics on a Kind it doesn't serve.
type Expr struct {
	kind   Kind
	r      Rune
	ranges []runeRangeT
	kids   []*Expr

	normalised atomic.Bool
	digest     uint64
}

func (e *Expr) Kind() Kind { return e.kind }

// IsNormalised reports whether this node is tagged as being in canonical
// form. It is a provenance bit, not a live recomputation: a node built by
// a raw builder with norm=false keeps this false even if its shape happens
// to already be canonical, until a call to Normalised(e) (see normalize.go)
// confirms it and upgrades the shared instance in place. The bit is an
// atomic.Bool rather than a plain bool so that concurrent compilations
// sharing the cons table can read and upgrade it without a data race.
func (e *Expr) IsNormalised() bool { return e.normalised.Load() }

// Digest returns the hash-cons content digest of e: the same siphash value
// used to key the interning table, exposed so that callers (the DFA cache
// of rcache, in particular) can content-address a compiled DFA by its
// generating expression without recomputing the canonical encoding.
func (e *Expr) Digest() uint64 { return e.digest }

// Character returns the payload of a Character node.
func (e *Expr) Character() Rune {
	if e.kind != Character {
		panic(fmt.Sprintf("redgrep: Character() called on %v node", e.kind))
	}
	return e.r
}

// CharacterClassRanges returns the sorted, disjoint rune ranges of a
// CharacterClass node.
func (e *Expr) CharacterClassRanges() []RuneRange {
	if e.kind != CharacterClass {
		panic(fmt.Sprintf("redgrep: CharacterClassRanges() called on %v node", e.kind))
	}
	out := make([]RuneRange, len(e.ranges))
	for i, r := range e.ranges {
		out[i] = RuneRange{r.lo, r.hi}
	}
	return out
}

// Sub returns the sole child of a KleeneClosure or Complement node.
func (e *Expr) Sub() *Expr {
	if e.kind != KindKleeneClosure && e.kind != KindComplement {
		panic(fmt.Sprintf("redgrep: Sub() called on %v node", e.kind))
	}
	return e.kids[0]
}

// Head returns the first operand of a (binary) Concatenation node.
func (e *Expr) Head() *Expr {
	if e.kind != KindConcatenation {
		panic(fmt.Sprintf("redgrep: Head() called on %v node", e.kind))
	}
	return e.kids[0]
}

// Tail returns the second operand of a (binary) Concatenation node, itself
// typically another Concatenation when the logical sequence has more than
// two elements.
func (e *Expr) Tail() *Expr {
	if e.kind != KindConcatenation {
		panic(fmt.Sprintf("redgrep: Tail() called on %v node", e.kind))
	}
	return e.kids[1]
}

// Operands returns the (≥2) operands of a Conjunction or Disjunction node.
func (e *Expr) Operands() []*Expr {
	if e.kind != KindConjunction && e.kind != KindDisjunction {
		panic(fmt.Sprintf("redgrep: Operands() called on %v node", e.kind))
	}
	return e.kids
}

func (e *Expr) String() string {
	switch e.kind {
	case EmptySet:
		return "∅"
	case EmptyString:
		return "ε"
	case AnyCharacter:
		return "."
	case Character:
		return fmt.Sprintf("%c", e.r)
	case CharacterClass:
		return "[" + runeRangesString(e.ranges) + "]"
	case KindKleeneClosure:
		return parenAtom(e.kids[0]) + "*"
	case KindComplement:
		return "¬" + parenAtom(e.kids[0])
	case KindConcatenation:
		// Concatenation is associative, so a right-nested tail needs no parens.
		if e.kids[1].kind == KindConcatenation {
			return parenAtom(e.kids[0]) + e.kids[1].String()
		}
		return parenAtom(e.kids[0]) + parenAtom(e.kids[1])
	case KindConjunction:
		return joinOperands(e.kids, "&")
	case KindDisjunction:
		return joinOperands(e.kids, "|")
	default:
		return "?"
	}
}

func parenAtom(e *Expr) string {
	switch e.kind {
	case KindConcatenation, KindConjunction, KindDisjunction:
		return "(" + e.String() + ")"
	default:
		return e.String()
	}
}

func joinOperands(kids []*Expr, sep string) string {
	s := ""
	for i, k := range kids {
		if i > 0 {
			s += sep
		}
		s += parenAtom(k)
	}
	return s
}

// RuneRange is a closed interval [Lo, Hi] of runes, the public form of a
// CharacterClass payload element.
type RuneRange struct {
	Lo, Hi Rune
}

func toInternalRanges(rs []RuneRange) []runeRangeT {
	out := make([]runeRangeT, len(rs))
	for i, r := range rs {
		out[i] = newRuneRange(r.Lo, r.Hi)
	}
	return out
}

// --- leaf builders ---

// NewEmptySet returns ∅, the expression matching nothing.
func NewEmptySet() *Expr { return intern(EmptySet, 0, nil, nil, true) }

// NewEmptyString returns ε, the expression matching only the empty word.
func NewEmptyString() *Expr { return intern(EmptyString, 0, nil, nil, true) }

// NewAnyCharacter returns ".", the expression matching any single rune.
func NewAnyCharacter() *Expr { return intern(AnyCharacter, 0, nil, nil, true) }

// NewCharacter returns the expression matching exactly the rune r.
func NewCharacter(r Rune) *Expr { return intern(Character, r, nil, nil, true) }

// NewCharacterClass returns the expression matching any rune covered by
// ranges. Building with zero ranges is not an error: per the canonical-form
// rules of Normalised, a class of size zero degrades to EmptySet and a
// class covering exactly one rune degrades to Character; both degeneracies
// are structural (they never depend on whether some other subtree is
// normalised), so this constructor applies them eagerly and always returns
// an already-normalised node.
func NewCharacterClass(ranges ...RuneRange) *Expr {
	norm := normalizeRuneRanges(toInternalRanges(ranges))
	switch {
	case len(norm) == 0:
		return NewEmptySet()
	case len(norm) == 1 && norm[0].lo == norm[0].hi:
		return NewCharacter(norm[0].lo)
	default:
		return intern(CharacterClass, 0, norm, nil, true)
	}
}

// --- operator builders ---
//
// Each raw builder below enforces the arity of its Kind and takes a norm
// flag asserting that every child is already normalised; callers that pass
// false get back the raw (possibly non-canonical) node and are responsible
// for running it through Normalised before using it as a derivative input.

func buildKleeneClosure(kids []*Expr, norm bool) *Expr {
	if len(kids) != 1 {
		panic("redgrep: KleeneClosure takes exactly one child")
	}
	return intern(KindKleeneClosure, 0, nil, kids, norm)
}

func buildComplement(kids []*Expr, norm bool) *Expr {
	if len(kids) != 1 {
		panic("redgrep: Complement takes exactly one child")
	}
	return intern(KindComplement, 0, nil, kids, norm)
}

func buildConcatenation(kids []*Expr, norm bool) *Expr {
	if len(kids) != 2 {
		panic("redgrep: Concatenation takes exactly two children")
	}
	return intern(KindConcatenation, 0, nil, kids, norm)
}

func buildConjunction(kids []*Expr, norm bool) *Expr {
	if len(kids) < 2 {
		panic("redgrep: Conjunction takes at least two children")
	}
	return intern(KindConjunction, 0, nil, append([]*Expr(nil), kids...), norm)
}

func buildDisjunction(kids []*Expr, norm bool) *Expr {
	if len(kids) < 2 {
		panic("redgrep: Disjunction takes at least two children")
	}
	return intern(KindDisjunction, 0, nil, append([]*Expr(nil), kids...), norm)
}

// KleeneClosure returns e*, the Kleene closure of e.
func KleeneClosure(e *Expr) *Expr { return buildKleeneClosure([]*Expr{e}, false) }

// Complement returns ¬e, the complement of e with respect to Σ*.
func Complement(e *Expr) *Expr { return buildComplement([]*Expr{e}, false) }

// Concatenation returns x·y. A variadic convenience Concat is also
// provided; both lower to this binary, right-associated form, per the
// data model's head/tail decomposition.
func Concatenation(x, y *Expr) *Expr { return buildConcatenation([]*Expr{x, y}, false) }

// Concat is a variadic convenience that lowers to nested, right-associated
// binary Concatenation nodes: Concat(a, b, c) builds a·(b·c).
func Concat(x, y *Expr, rest ...*Expr) *Expr {
	if len(rest) == 0 {
		return Concatenation(x, y)
	}
	return Concatenation(x, Concat(y, rest[0], rest[1:]...))
}

// Conjunction returns the intersection ⋀ of two or more operands.
func Conjunction(x, y *Expr, rest ...*Expr) *Expr {
	return buildConjunction(append([]*Expr{x, y}, rest...), false)
}

// Disjunction returns the union ⋁ of two or more operands.
func Disjunction(x, y *Expr, rest ...*Expr) *Expr {
	return buildDisjunction(append([]*Expr{x, y}, rest...), false)
}
