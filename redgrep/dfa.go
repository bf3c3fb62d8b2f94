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

	"github.com/go-redgrep/redgrep/rlog"
)

// DFAEdge is a transition key: the state it leaves from and the rune it is
// taken on. InvalidRune in the Rune field is the reserved default-transition
// key, not a real input symbol.
type DFAEdge struct {
	State int
	Rune  Rune
}

// DFA is a compiled automaton: a transition table keyed by (state, rune)
// plus an accepting-state set. State 0 is always the start state. DFA
// values returned by Compile are never mutated afterwards and are safe for
// concurrent use by any number of matchers.
type DFA struct {
	Transition map[DFAEdge]int
	Accepting  map[int]bool
}

// NewDFA returns an empty DFA with its mappings initialised, ready to be
// filled in by Compile. Callers outside this package must use NewDFA rather
// than the zero value: Compile assumes both maps are non-nil.
func NewDFA() *DFA {
	return &DFA{
		Transition: make(map[DFAEdge]int),
		Accepting:  make(map[int]bool),
	}
}

// Next looks up the successor of s on rune a, falling back to the default
// (InvalidRune) transition when a has no explicit entry. This is the lookup
// both the DFA-driven matcher and any embedder walking the transition table
// by hand should use.
func (d *DFA) Next(s int, a Rune) (int, bool) {
	if next, ok := d.Transition[DFAEdge{s, a}]; ok {
		return next, true
	}
	next, ok := d.Transition[DFAEdge{s, InvalidRune}]
	return next, ok
}

// BudgetExceededError is returned by Compile when the worklist grows past a
// configured MaxStates without reaching a fixed point. It names the
// expression that triggered the overflow (via its canonical String form)
// and the budget that was exceeded.
type BudgetExceededError struct {
	Expr      string
	MaxStates int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("redgrep: compilation of %q exceeded the %d-state budget", e.Expr, e.MaxStates)
}

// Compile performs a worklist traversal over reachable derivative states:
// it normalises e, assigns state 0 to it, and repeatedly takes an
// unprocessed (expression, id) pair, records its acceptance, computes its
// alphabet partition, and derives a successor for each block — interning
// each newly-seen successor expression to a fresh state id and pushing it
// onto the worklist.
//
// maxStates is a node budget; zero means unbounded (the zero-config
// default of rconfig.Options). Compile returns the total number of states
// and, if the budget was exceeded, a *BudgetExceededError — never a panic.
func Compile(e *Expr, dfa *DFA, maxStates int) (int, error) {
	start := normalize(e)

	stateOf := newMap[*Expr, int]()
	var worklist vectorT[*Expr]

	stateOf.insert(start, 0)
	worklist.pushBack(start)

	for i := 0; i < worklist.size(); i++ {
		cur := worklist[i]
		s, _ := stateOf.at(cur)

		dfa.Accepting[s] = nullable(cur)

		for _, block := range partitionOf(cur) {
			r := block.representative()
			succ := Derivative(cur, r)

			sp, seen := stateOf.at(succ)
			if !seen {
				sp = stateOf.len()
				if maxStates > 0 && sp >= maxStates {
					return 0, &BudgetExceededError{Expr: start.String(), MaxStates: maxStates}
				}
				stateOf.insert(succ, sp)
				worklist.pushBack(succ)
				rlog.Debugf("compile: new state %d = %s", sp, succ)
			}

			if block.sigma {
				dfa.Transition[DFAEdge{s, InvalidRune}] = sp
			} else {
				for _, rr := range block.ranges {
					for b := rr.lo; b <= rr.hi; b++ {
						dfa.Transition[DFAEdge{s, b}] = sp
					}
				}
			}
		}
	}

	return stateOf.len(), nil
}
