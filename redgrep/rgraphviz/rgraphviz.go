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

// Package rgraphviz renders a compiled DFA as a Graphviz dot document, for
// use in tests and in the dumps rconfig.Engine writes when GraphvizDir is
// set. It is
// diagnostic tooling only: nothing in the core depends on it.
package rgraphviz

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-redgrep/redgrep"
)

// WriteDot writes dfa, which has nStates states (the count Compile
// returned), to w as a dot document. Specific-rune transitions to the same
// target are merged into contiguous rune ranges so the diagram stays
// readable even for wide character classes; the default (InvalidRune) edge
// out of each state is always drawn separately, labeled "else".
func WriteDot(w io.Writer, dfa *redgrep.DFA, nStates int) error {
	bw := &errWriter{w: w}

	fmt.Fprintln(bw, "digraph dfa {")
	fmt.Fprintln(bw, `  rankdir="LR";`)

	for s := 0; s < nStates; s++ {
		shape := "circle"
		if dfa.Accepting[s] {
			shape = "doublecircle"
		}
		fmt.Fprintf(bw, "  %d [shape=%s];\n", s, shape)
	}

	for s := 0; s < nStates; s++ {
		byTarget := map[int][]redgrep.Rune{}
		var defaultTarget int
		hasDefault := false

		for edge, target := range dfa.Transition {
			if edge.State != s {
				continue
			}
			if edge.Rune == redgrep.InvalidRune {
				defaultTarget, hasDefault = target, true
				continue
			}
			byTarget[target] = append(byTarget[target], edge.Rune)
		}

		targets := make([]int, 0, len(byTarget))
		for t := range byTarget {
			targets = append(targets, t)
		}
		sort.Ints(targets)

		for _, t := range targets {
			runes := byTarget[t]
			sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
			label := mergeRuneRanges(runes)
			fmt.Fprintf(bw, "  %d -> %d [label=%q];\n", s, t, label)
		}
		if hasDefault {
			fmt.Fprintf(bw, "  %d -> %d [label=\"else\"];\n", s, defaultTarget)
		}
	}

	fmt.Fprintln(bw, "}")
	return bw.err
}

// mergeRuneRanges collapses a sorted slice of runes into a compact
// "a-c,f,h-j" label.
func mergeRuneRanges(runes []redgrep.Rune) string {
	if len(runes) == 0 {
		return ""
	}
	label := ""
	lo, hi := runes[0], runes[0]
	flush := func() {
		if label != "" {
			label += ","
		}
		if lo == hi {
			label += runeLabel(lo)
		} else {
			label += runeLabel(lo) + "-" + runeLabel(hi)
		}
	}
	for _, r := range runes[1:] {
		if r == hi+1 {
			hi = r
			continue
		}
		flush()
		lo, hi = r, r
	}
	flush()
	return label
}

func runeLabel(r redgrep.Rune) string {
	if r >= 0x20 && r < 0x7f {
		return string(rune(r))
	}
	return fmt.Sprintf("U+%04X", r)
}

// errWriter swallows individual Fprint errors so call sites above can stay
// unchecked; the accumulated error is surfaced once from WriteDot.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
