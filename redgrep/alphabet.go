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
	"sort"
	"strings"
)

// runeRangeT is a closed interval [lo, hi] of runes: a packed (min, max)
// transition-label representation rather than an expanded set of runes. A
// CharacterClass's payload and a partition block are both represented as a
// sorted list of disjoint runeRangeT values, so that large classes never
// need to be materialised rune by rune.
type runeRangeT struct {
	lo, hi Rune
}

func newRuneRange(lo, hi Rune) runeRangeT {
	return runeRangeT{lo, hi}
}

func (r runeRangeT) String() string {
	if r.lo == r.hi {
		return fmt.Sprintf("%U", r.lo)
	}
	return fmt.Sprintf("%U-%U", r.lo, r.hi)
}

func (r runeRangeT) contains(a Rune) bool {
	return a >= r.lo && a <= r.hi
}

// normalizeRuneRanges sorts ranges and merges overlapping or adjacent
// ones into the canonical, minimal, disjoint representation.
func normalizeRuneRanges(ranges []runeRangeT) []runeRangeT {
	if len(ranges) == 0 {
		return nil
	}
	sorted := append([]runeRangeT(nil), ranges...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].lo != sorted[j].lo {
			return sorted[i].lo < sorted[j].lo
		}
		return sorted[i].hi < sorted[j].hi
	})
	out := make([]runeRangeT, 0, len(sorted))
	cur := sorted[0]
	for _, r := range sorted[1:] {
		if r.lo <= cur.hi+1 {
			if r.hi > cur.hi {
				cur.hi = r.hi
			}
			continue
		}
		out = append(out, cur)
		cur = r
	}
	out = append(out, cur)
	return out
}

func runeRangesContain(ranges []runeRangeT, a Rune) bool {
	// ranges is sorted and disjoint; binary search would do, but these
	// lists are small (character classes, not codepoint tables), so a
	// linear scan keeps the code simple.
	for _, r := range ranges {
		if r.contains(a) {
			return true
		}
		if a < r.lo {
			break
		}
	}
	return false
}

// runeRangesSubtract returns a \ b, both assumed sorted and disjoint.
func runeRangesSubtract(a, b []runeRangeT) []runeRangeT {
	out := append([]runeRangeT(nil), a...)
	for _, sub := range b {
		out = subtractOne(out, sub)
	}
	return normalizeRuneRanges(out)
}

func subtractOne(ranges []runeRangeT, sub runeRangeT) []runeRangeT {
	out := make([]runeRangeT, 0, len(ranges)+1)
	for _, r := range ranges {
		if sub.hi < r.lo || sub.lo > r.hi {
			out = append(out, r) // no overlap
			continue
		}
		if sub.lo > r.lo {
			out = append(out, newRuneRange(r.lo, sub.lo-1))
		}
		if sub.hi < r.hi {
			out = append(out, newRuneRange(sub.hi+1, r.hi))
		}
	}
	return out
}

// runeRangesIntersect returns a ∩ b, both assumed sorted and disjoint.
func runeRangesIntersect(a, b []runeRangeT) []runeRangeT {
	var out []runeRangeT
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		lo := max(a[i].lo, b[j].lo)
		hi := min(a[i].hi, b[j].hi)
		if lo <= hi {
			out = append(out, newRuneRange(lo, hi))
		}
		if a[i].hi < b[j].hi {
			i++
		} else {
			j++
		}
	}
	return out
}

// runeRangesComplement returns Σ \ ranges, i.e. the complement within
// [0, maxRune], for ranges sorted and disjoint.
func runeRangesComplement(ranges []runeRangeT) []runeRangeT {
	return runeRangesSubtract([]runeRangeT{newRuneRange(0, maxRune)}, ranges)
}

func runeRangesEqual(a, b []runeRangeT) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// compareRuneRanges orders two sorted, disjoint range lists the way
// CharacterClass payloads are ordered: lexicographically by their sorted
// element lists, computed range by range without expanding them. Because
// the lists are maximally merged, when two ranges share lo but differ in
// hi, the list whose range ends first either ends there (a prefix, so
// smaller) or continues with a rune above the other list's next element
// (so larger).
func compareRuneRanges(a, b []runeRangeT) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i].lo != b[i].lo {
			return cmpRune(a[i].lo, b[i].lo)
		}
		if a[i].hi < b[i].hi {
			if i+1 == len(a) {
				return -1
			}
			return 1
		}
		if a[i].hi > b[i].hi {
			if i+1 == len(b) {
				return 1
			}
			return -1
		}
	}
	return cmpInt(len(a), len(b))
}

func cmpRune(a, b Rune) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func runeRangesString(ranges []runeRangeT) string {
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}

func min(a, b Rune) Rune {
	if a < b {
		return a
	}
	return b
}

func max(a, b Rune) Rune {
	if a > b {
		return a
	}
	return b
}
