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
	"encoding/binary"
	"sync"

	"github.com/dchest/siphash"
)

// hashConsK0/hashConsK1 are the fixed siphash keys used to digest a node's
// canonical byte-level encoding (kind, payload, child digests). They need
// not be secret — the table is a cache, not a MAC — they just need to be
// fixed across a process so that Expr.digest is stable and can double as
// the content-addressed cache key of rcache.
const (
	hashConsK0 = 0x5265_6467_7265_7020
	hashConsK1 = 0x4272_7a6f_7a6f_7773
)

// consEntry is one hash-cons bucket: every distinct Expr whose canonical
// encoding happens to siphash to the same 64-bit digest. Collisions are
// resolved by the exact structural comparison in sameShape.
type consEntry struct {
	exprs []*Expr
}

var consTable = struct {
	mu      sync.Mutex
	buckets map[uint64]*consEntry
}{buckets: make(map[uint64]*consEntry)}

// intern returns the unique, shared *Expr for the given kind and payload:
// a cache hit returns the existing node (upgrading its normalised flag in
// place if this call asserts normalised and the stored node didn't yet),
// a miss inserts and returns a fresh node. This is the hash-cons mechanism
// that guarantees structurally equal nodes are always pointer-equal, so
// Compare's common case and every map/set keyed on *Expr reduce to an
// identity check.
func intern(kind Kind, r Rune, ranges []runeRangeT, kids []*Expr, normalised bool) *Expr {
	digest := digestOf(kind, r, ranges, kids)

	consTable.mu.Lock()
	defer consTable.mu.Unlock()

	entry, ok := consTable.buckets[digest]
	if !ok {
		entry = &consEntry{}
		consTable.buckets[digest] = entry
	}
	for _, cand := range entry.exprs {
		if sameShape(cand, kind, r, ranges, kids) {
			if normalised {
				cand.normalised.Store(true)
			}
			return cand
		}
	}
	e := &Expr{
		kind:   kind,
		r:      r,
		ranges: ranges,
		kids:   kids,
		digest: digest,
	}
	e.normalised.Store(normalised)
	entry.exprs = append(entry.exprs, e)
	return e
}

func sameShape(cand *Expr, kind Kind, r Rune, ranges []runeRangeT, kids []*Expr) bool {
	if cand.kind != kind || cand.r != r {
		return false
	}
	if !runeRangesEqual(cand.ranges, ranges) {
		return false
	}
	if len(cand.kids) != len(kids) {
		return false
	}
	for i := range kids {
		// children are themselves hash-consed, so pointer equality is
		// the correct (and cheap) notion of "identical subtree" here.
		if cand.kids[i] != kids[i] {
			return false
		}
	}
	return true
}

func digestOf(kind Kind, r Rune, ranges []runeRangeT, kids []*Expr) uint64 {
	buf := make([]byte, 0, 1+4+8*len(ranges)+8*len(kids))
	buf = append(buf, byte(kind))
	var tmp [8]byte
	binary.BigEndian.PutUint32(tmp[:4], uint32(r))
	buf = append(buf, tmp[:4]...)
	for _, rr := range ranges {
		binary.BigEndian.PutUint32(tmp[:4], uint32(rr.lo))
		buf = append(buf, tmp[:4]...)
		binary.BigEndian.PutUint32(tmp[:4], uint32(rr.hi))
		buf = append(buf, tmp[:4]...)
	}
	for _, k := range kids {
		binary.BigEndian.PutUint64(tmp[:8], k.digest)
		buf = append(buf, tmp[:8]...)
	}
	return siphash.Hash(hashConsK0, hashConsK1, buf)
}
