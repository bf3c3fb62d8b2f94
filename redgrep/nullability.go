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

// Nullability returns ε if e matches the empty word and ∅ otherwise. It is
// used both as a standalone predicate (via IsNullable) and as the base
// case the derivative recursion bottoms out on.
func Nullability(e *Expr) *Expr {
	if nullable(e) {
		return NewEmptyString()
	}
	return NewEmptySet()
}

// IsNullable is the boolean form of Nullability, convenient at call sites
// that only need the predicate (the derivative and DFA-acceptance checks).
func IsNullable(e *Expr) bool { return nullable(e) }

func nullable(e *Expr) bool {
	switch e.kind {
	case EmptySet, AnyCharacter, Character, CharacterClass:
		return false
	case EmptyString, KindKleeneClosure:
		return true
	case KindComplement:
		return !nullable(e.kids[0])
	case KindConcatenation:
		return nullable(e.kids[0]) && nullable(e.kids[1])
	case KindConjunction:
		for _, k := range e.kids {
			if !nullable(k) {
				return false
			}
		}
		return true
	case KindDisjunction:
		for _, k := range e.kids {
			if nullable(k) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
