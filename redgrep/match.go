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

import "unicode/utf8"

// Match is the derivative-direct matcher: it walks e forward one rune of s
// at a time, taking the derivative at each step, and accepts iff the final
// expression is nullable. It matches the entire string; there is no
// anchoring or partial-match mode.
func Match(e *Expr, s string) bool {
	cur := normalize(e)
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size <= 1 {
			r = Rune(s[0])
			size = 1
		}
		cur = Derivative(cur, r)
		s = s[size:]
	}
	return nullable(cur)
}

// Match is the DFA-driven matcher: it walks the transition table from
// state 0, falling back to the default (InvalidRune) edge whenever a rune
// has no explicit entry, and accepts iff the final state is accepting.
func (d *DFA) Match(s string) bool {
	state := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size <= 1 {
			r = Rune(s[0])
			size = 1
		}
		next, ok := d.Next(state, r)
		if !ok {
			// No explicit and no default transition out of state: the
			// compiled table is incomplete for this input. Only possible
			// if the DFA was hand-built rather than produced by Compile.
			return false
		}
		state = next
		s = s[size:]
	}
	return d.Accepting[state]
}
