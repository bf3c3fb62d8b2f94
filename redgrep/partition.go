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

import "sort"

// partitionBlockT is one block of a rune partition, carrying its own actual
// (sorted, disjoint) content rather than the "complement of enumerated
// runes" encoding used on the wire: keeping every block's real rune ranges,
// sigma included, turns refinement into plain interval intersection and
// keeps a Σ-sized block as the handful of intervals it really is, never an
// expanded rune set. sigma is only consulted when choosing which partition
// is emitted first and which DFA edge (InvalidRune vs. per-rune) a block's
// transition becomes.
type partitionBlockT struct {
	sigma  bool
	ranges []runeRangeT
}

// PartitionBlock is the public form of one alphabet partition block.
type PartitionBlock struct {
	// Sigma is true for the single "everything else" block of the
	// partition; it is always first in the slice Partitions returns.
	Sigma  bool
	Ranges []RuneRange
}

// Partitions returns P(e), the finite partition of the rune alphabet such
// that every two runes in the same block have equal derivatives of e. At
// most one block is Σ-based (the block covering every rune not otherwise
// enumerated); when present it is always first. A partition has no
// Σ-based block at all when the enumerated (∅-based) blocks already cover
// every rune, e.g. a CharacterClass spanning the whole alphabet.
func Partitions(e *Expr) []PartitionBlock {
	blocks := partitionOf(e)
	out := make([]PartitionBlock, len(blocks))
	for i, b := range blocks {
		ranges := make([]RuneRange, len(b.ranges))
		for j, r := range b.ranges {
			ranges[j] = RuneRange{r.lo, r.hi}
		}
		out[i] = PartitionBlock{Sigma: b.sigma, Ranges: ranges}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sigma && !out[j].Sigma })
	return out
}

func partitionOf(e *Expr) []partitionBlockT {
	switch e.kind {
	case EmptySet, EmptyString, AnyCharacter:
		return universalPartition()
	case Character:
		return splitPartition([]runeRangeT{newRuneRange(e.r, e.r)})
	case CharacterClass:
		return splitPartition(e.ranges)
	case KindKleeneClosure, KindComplement:
		return partitionOf(e.kids[0])
	case KindConcatenation:
		x, y := e.kids[0], e.kids[1]
		if nullable(x) {
			return refinePartitions(partitionOf(x), partitionOf(y))
		}
		return partitionOf(x)
	case KindConjunction, KindDisjunction:
		p := partitionOf(e.kids[0])
		for _, k := range e.kids[1:] {
			p = refinePartitions(p, partitionOf(k))
		}
		return p
	default:
		return universalPartition()
	}
}

// universalPartition is P(e) for an expression whose derivative is the same
// for every rune (∅ for ∅ and ε, ε for AnyCharacter): a single Σ-based
// block covering everything.
func universalPartition() []partitionBlockT {
	return []partitionBlockT{{sigma: true, ranges: []runeRangeT{newRuneRange(0, maxRune)}}}
}

// splitPartition is P(e) for a leaf whose derivative differs between runes
// in enumerated (already sorted, disjoint) and runes outside it. The
// Σ-based block is omitted when enumerated already covers the whole
// alphabet: its content would be the empty set, and a partition block is
// never allowed to be empty.
func splitPartition(enumerated []runeRangeT) []partitionBlockT {
	blocks := make([]partitionBlockT, 0, 2)
	if comp := runeRangesComplement(enumerated); len(comp) > 0 {
		blocks = append(blocks, partitionBlockT{sigma: true, ranges: comp})
	}
	return append(blocks, partitionBlockT{sigma: false, ranges: enumerated})
}

// refinePartitions computes the coarsest common refinement of p and q:
// every pairwise intersection of a block of p with a block of q, with
// empty results discarded. The intersection of the two sigma blocks, if
// both p and q have one, is the only combination that can again be sigma;
// if either side lacks a sigma block (its ∅-based blocks already cover the
// whole alphabet), the refinement has none either.
func refinePartitions(p, q []partitionBlockT) []partitionBlockT {
	var out []partitionBlockT
	for _, a := range p {
		for _, b := range q {
			inter := runeRangesIntersect(a.ranges, b.ranges)
			if len(inter) == 0 {
				continue
			}
			out = append(out, partitionBlockT{sigma: a.sigma && b.sigma, ranges: inter})
		}
	}
	return out
}

// representative returns any rune belonging to the block; every rune in a
// block yields the same derivative, so any one of them will do.
func (b partitionBlockT) representative() Rune {
	return b.ranges[0].lo
}
