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

import "golang.org/x/exp/slices"

// Normalised rewrites e bottom-up to a fixed point and returns the
// canonical, hash-consed representative of its language: flattening
// associative operators, sorting and deduplicating commutative operands,
// applying identity/annihilator laws, and collapsing degenerate character
// classes. Normalised is idempotent: Normalised(Normalised(e)) == Normalised(e).
func Normalised(e *Expr) *Expr {
	return normalize(e)
}

func normalize(e *Expr) *Expr {
	if e.normalised.Load() {
		return e
	}
	switch e.kind {
	case EmptySet, EmptyString, AnyCharacter, Character:
		return e
	case CharacterClass:
		return NewCharacterClass(e.CharacterClassRanges()...)
	case KindKleeneClosure:
		return normalizeKleene(normalize(e.kids[0]))
	case KindComplement:
		return normalizeComplement(normalize(e.kids[0]))
	case KindConcatenation:
		var atoms []*Expr
		collectConcatAtoms(e, &atoms)
		return foldConcatRight(atoms)
	case KindConjunction:
		return normalizeConjunction(e)
	case KindDisjunction:
		return normalizeDisjunction(e)
	default:
		return e
	}
}

func normalizeKleene(sub *Expr) *Expr {
	switch sub.kind {
	case KindKleeneClosure:
		return sub // (e*)* -> e*
	case EmptySet, EmptyString:
		return NewEmptyString() // ∅* -> ε ; ε* -> ε
	default:
		return buildKleeneClosure([]*Expr{sub}, true)
	}
}

func normalizeComplement(sub *Expr) *Expr {
	if sub.kind == KindComplement {
		return sub.kids[0] // ¬¬e -> e
	}
	return buildComplement([]*Expr{sub}, true)
}

// universal returns Σ*, i.e. ¬∅, the language containing every string.
func universal() *Expr {
	return normalizeComplement(NewEmptySet())
}

func isEmptySet(e *Expr) bool { return e.kind == EmptySet }
func isUniversal(e *Expr) bool {
	return e.kind == KindComplement && e.kids[0].kind == EmptySet
}

// collectConcatAtoms flattens arbitrarily (left- or right-) nested binary
// Concatenation nodes into an ordered list of non-Concatenation atoms,
// normalising each atom along the way. Concatenation's own arity is fixed
// at two, so "flattening" here means un-nesting, not the same list-sort
// operation Conjunction/Disjunction perform: order is significant and must
// be preserved.
func collectConcatAtoms(e *Expr, out *[]*Expr) {
	if e.kind == KindConcatenation {
		collectConcatAtoms(e.kids[0], out)
		collectConcatAtoms(e.kids[1], out)
		return
	}
	n := normalize(e)
	if n.kind == KindConcatenation {
		// e.g. (abc|∅) normalises to a·(b·c): splice its atoms in too.
		collectConcatAtoms(n, out)
		return
	}
	*out = append(*out, n)
}

// foldConcatRight re-folds a flat atom list into the canonical
// right-associated Concatenation chain, applying the ∅/ε identity and
// annihilator laws at every fold step.
func foldConcatRight(atoms []*Expr) *Expr {
	if len(atoms) == 0 {
		return NewEmptyString()
	}
	acc := atoms[len(atoms)-1]
	for i := len(atoms) - 2; i >= 0; i-- {
		acc = concatPair(atoms[i], acc)
	}
	return acc
}

func concatPair(a, b *Expr) *Expr {
	if isEmptySet(a) || isEmptySet(b) {
		return NewEmptySet()
	}
	if a.kind == EmptyString {
		return b
	}
	if b.kind == EmptyString {
		return a
	}
	return buildConcatenation([]*Expr{a, b}, true)
}

// normalizeConjunction implements the Conjunction (intersection) rules:
// flatten, sort, dedupe, ∅-annihilates, Σ*-is-the-identity-and-is-dropped,
// singleton collapses, empty result is Σ*.
func normalizeConjunction(e *Expr) *Expr {
	var atoms []*Expr
	collectAssocAtoms(e, KindConjunction, &atoms)

	for _, a := range atoms {
		if isEmptySet(a) {
			return NewEmptySet()
		}
	}
	atoms = dedupeSorted(filterOut(atoms, isUniversal))
	switch len(atoms) {
	case 0:
		return universal()
	case 1:
		return atoms[0]
	default:
		return buildConjunction(atoms, true)
	}
}

// normalizeDisjunction implements the Disjunction (union) rules: flatten,
// sort, dedupe, Σ*-annihilates, ∅-is-the-identity-and-is-dropped, singleton
// collapses, empty result is ∅.
func normalizeDisjunction(e *Expr) *Expr {
	var atoms []*Expr
	collectAssocAtoms(e, KindDisjunction, &atoms)

	for _, a := range atoms {
		if isUniversal(a) {
			return universal()
		}
	}
	atoms = dedupeSorted(filterOut(atoms, isEmptySet))
	switch len(atoms) {
	case 0:
		return NewEmptySet()
	case 1:
		return atoms[0]
	default:
		return buildDisjunction(atoms, true)
	}
}

// collectAssocAtoms flattens nested nodes of the same kind (Conjunction or
// Disjunction), normalising every non-matching atom along the way.
func collectAssocAtoms(e *Expr, kind Kind, out *[]*Expr) {
	if e.kind == kind {
		for _, k := range e.kids {
			collectAssocAtoms(k, kind, out)
		}
		return
	}
	n := normalize(e)
	if n.kind == kind {
		// an atom of another kind can normalise into this kind.
		collectAssocAtoms(n, kind, out)
		return
	}
	*out = append(*out, n)
}

func filterOut(atoms []*Expr, drop func(*Expr) bool) []*Expr {
	out := atoms[:0:0]
	for _, a := range atoms {
		if !drop(a) {
			out = append(out, a)
		}
	}
	return out
}

// dedupeSorted sorts atoms by the total order of Compare and removes
// duplicates; since equal expressions are always pointer-identical, the
// dedupe check is itself just Compare == 0.
func dedupeSorted(atoms []*Expr) []*Expr {
	slices.SortFunc(atoms, Less)
	out := atoms[:0:0]
	for i, a := range atoms {
		if i == 0 || Compare(atoms[i-1], a) != 0 {
			out = append(out, a)
		}
	}
	return out
}
