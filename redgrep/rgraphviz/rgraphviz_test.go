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

package rgraphviz_test

import (
	"strings"
	"testing"

	"github.com/go-redgrep/redgrep"
	"github.com/go-redgrep/redgrep/rgraphviz"
)

func TestWriteDotProducesWellFormedDocument(t *testing.T) {
	e := redgrep.KleeneClosure(redgrep.Disjunction(redgrep.NewCharacter('a'), redgrep.NewCharacter('b')))
	dfa := redgrep.NewDFA()
	n, err := redgrep.Compile(e, dfa, 0)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	var buf strings.Builder
	if err := rgraphviz.WriteDot(&buf, dfa, n); err != nil {
		t.Fatalf("WriteDot: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "digraph dfa {") {
		t.Fatalf("output does not start with the digraph header: %q", out)
	}
	if !strings.Contains(out, "doublecircle") {
		t.Fatalf("expected at least one accepting (doublecircle) state, got %q", out)
	}
	if !strings.Contains(out, "else") {
		t.Fatalf("expected a default-transition edge labeled \"else\", got %q", out)
	}
}
