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

// Derivative computes ∂a(e), the Brzozowski derivative of e with respect
// to the rune a: the expression matching exactly the suffixes w such that
// a·w is matched by e. The result is always run through Normalised before
// being returned, so every derivative step hands the next step (or the DFA
// compiler) an already-canonical node.
func Derivative(e *Expr, a Rune) *Expr {
	return normalize(derive(e, a))
}

func derive(e *Expr, a Rune) *Expr {
	switch e.kind {
	case EmptySet, EmptyString:
		return NewEmptySet()
	case AnyCharacter:
		return NewEmptyString()
	case Character:
		if a == e.r {
			return NewEmptyString()
		}
		return NewEmptySet()
	case CharacterClass:
		if runeRangesContain(e.ranges, a) {
			return NewEmptyString()
		}
		return NewEmptySet()
	case KindKleeneClosure:
		return buildConcatenation([]*Expr{derive(e.kids[0], a), e}, false)
	case KindComplement:
		return buildComplement([]*Expr{derive(e.kids[0], a)}, false)
	case KindConcatenation:
		x, y := e.kids[0], e.kids[1]
		dxY := buildConcatenation([]*Expr{derive(x, a), y}, false)
		if !nullable(x) {
			return dxY
		}
		return buildDisjunction([]*Expr{dxY, derive(y, a)}, false)
	case KindConjunction:
		kids := make([]*Expr, len(e.kids))
		for i, k := range e.kids {
			kids[i] = derive(k, a)
		}
		return buildConjunction(kids, false)
	case KindDisjunction:
		kids := make([]*Expr, len(e.kids))
		for i, k := range e.kids {
			kids[i] = derive(k, a)
		}
		return buildDisjunction(kids, false)
	default:
		return NewEmptySet()
	}
}
