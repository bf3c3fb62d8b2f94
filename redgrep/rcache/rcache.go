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

// Package rcache is a content-addressed DFA cache: Compile is the
// expensive operation in this core, so a cache hit lets a repeated
// expression skip the worklist loop entirely. The cache is
// correctness-transparent — disabled (the zero value), it never changes
// match results, only compilation cost.
package rcache

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/go-redgrep/redgrep"
	"github.com/go-redgrep/redgrep/rlog"
)

// Cache persists compiled DFAs under a directory, keyed by the siphash
// digest of the generating expression's canonical encoding
// (redgrep.Expr.Digest).
type Cache struct {
	dir string
}

// New returns a Cache rooted at dir. dir is created on first Put if it does
// not already exist.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

func (c *Cache) path(digest uint64) string {
	return filepath.Join(c.dir, fmt.Sprintf("%016x.dfa.zst", digest))
}

// Get returns the cached DFA for digest, if any. A miss is reported by the
// second return value, not an error: a miss is the expected, non-exceptional
// case that the caller falls through to redgrep.Compile on.
func (c *Cache) Get(digest uint64) (*redgrep.DFA, bool, error) {
	raw, err := os.ReadFile(c.path(digest))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("rcache: %w", err)
	}

	zr, err := zstd.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, false, fmt.Errorf("rcache: %w", err)
	}
	defer zr.Close()

	var dfa redgrep.DFA
	if err := gob.NewDecoder(zr).Decode(&dfa); err != nil {
		return nil, false, fmt.Errorf("rcache: %w", err)
	}
	rlog.Debugf("rcache: hit %016x", digest)
	return &dfa, true, nil
}

// Put stores dfa under digest, staging the write under a uuid-named
// temporary file in the same directory before an atomic rename into place,
// so a concurrent Get never observes a partially written entry.
func (c *Cache) Put(digest uint64, dfa *redgrep.DFA) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("rcache: %w", err)
	}

	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		return fmt.Errorf("rcache: %w", err)
	}
	if err := gob.NewEncoder(zw).Encode(dfa); err != nil {
		zw.Close()
		return fmt.Errorf("rcache: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("rcache: %w", err)
	}

	tmp := filepath.Join(c.dir, uuid.New().String()+".tmp")
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("rcache: %w", err)
	}
	if err := os.Rename(tmp, c.path(digest)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rcache: %w", err)
	}
	rlog.Debugf("rcache: stored %016x", digest)
	return nil
}
