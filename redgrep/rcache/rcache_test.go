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

package rcache_test

import (
	"testing"

	"github.com/go-redgrep/redgrep"
	"github.com/go-redgrep/redgrep/rcache"
)

func TestCacheMissThenHit(t *testing.T) {
	dir := t.TempDir()
	c := rcache.New(dir)

	e := redgrep.Normalised(redgrep.KleeneClosure(redgrep.Disjunction(redgrep.NewCharacter('a'), redgrep.NewCharacter('b'))))
	digest := e.Digest()

	if _, ok, err := c.Get(digest); err != nil || ok {
		t.Fatalf("Get on empty cache: ok=%v err=%v, want a clean miss", ok, err)
	}

	dfa := redgrep.NewDFA()
	if _, err := redgrep.Compile(e, dfa, 0); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if err := c.Put(digest, dfa); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get(digest)
	if err != nil || !ok {
		t.Fatalf("Get after Put: ok=%v err=%v, want a hit", ok, err)
	}
	if got.Match("abba") != dfa.Match("abba") {
		t.Fatalf("round-tripped DFA disagrees with the original on %q", "abba")
	}
	if got.Match("abc") != dfa.Match("abc") {
		t.Fatalf("round-tripped DFA disagrees with the original on %q", "abc")
	}
}
