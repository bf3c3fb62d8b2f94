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

// Package rconfig collects the engine-wide tunables: the DFA node budget,
// debug-dump behaviour, and the on-disk cache location. None of it is
// required to compile or match a well-formed expression — every field's
// zero value reproduces the unbounded, uncached, non-debugging default
// behaviour.
package rconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"

	"github.com/go-redgrep/redgrep"
	"github.com/go-redgrep/redgrep/rcache"
	"github.com/go-redgrep/redgrep/rgraphviz"
	"github.com/go-redgrep/redgrep/rlog"
)

// Options holds the tunables read by redgrep's DFA compiler, cache and
// logger. The zero value is DefaultOptions: no budget, no cache, no dumps.
type Options struct {
	// MaxStates bounds the DFA compiler's worklist. Zero means unbounded.
	MaxStates int `json:"maxStates,omitempty"`

	// Debug enables Debugf-level logging in the compiler and the cache.
	Debug bool `json:"debug,omitempty"`

	// CacheDir, if non-empty, enables the content-addressed DFA cache and
	// names the directory compiled DFAs are persisted under.
	CacheDir string `json:"cacheDir,omitempty"`

	// GraphvizDir, if non-empty, makes the compiler write a .dot dump of
	// every compiled DFA into this directory, keyed by the same digest the
	// cache uses.
	GraphvizDir string `json:"graphvizDir,omitempty"`
}

// DefaultOptions returns the zero-config Options: no budget, no cache, no
// dumps, no debug logging. This is what every core operation assumes when
// no Options are threaded through explicitly: no operation can fail on a
// valid input under the default, disabled budget.
func DefaultOptions() Options {
	return Options{}
}

// Load reads YAML-encoded Options from path, starting from DefaultOptions
// so that an omitted field keeps its zero-config behaviour.
func Load(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("rconfig: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("rconfig: %w", err)
	}
	return opts, nil
}

// Engine is Options put into effect: a redgrep.Compile wrapper that
// consults the configured cache before falling back to a fresh
// compilation, and optionally dumps a Graphviz rendering of the result.
type Engine struct {
	opts  Options
	cache *rcache.Cache
}

// Apply puts opts into effect: it turns on Debugf logging if requested and
// opens the content-addressed cache if a CacheDir is configured. The
// returned Engine's Compile method is what actually reads MaxStates,
// CacheDir and GraphvizDir; Options on its own is inert data.
func Apply(opts Options) *Engine {
	rlog.SetDebug(opts.Debug)
	e := &Engine{opts: opts}
	if opts.CacheDir != "" {
		e.cache = rcache.New(opts.CacheDir)
	}
	return e
}

// Compile fills dfa for expr the way redgrep.Compile does, but checks the
// Engine's cache first (keyed on expr.Digest()) and populates it on a miss,
// and honours MaxStates and GraphvizDir along the way.
func (e *Engine) Compile(expr *redgrep.Expr, dfa *redgrep.DFA) (int, error) {
	digest := expr.Digest()

	if e.cache != nil {
		if cached, ok, err := e.cache.Get(digest); err != nil {
			return 0, err
		} else if ok {
			*dfa = *cached
			return len(dfa.Accepting), nil
		}
	}

	n, err := redgrep.Compile(expr, dfa, e.opts.MaxStates)
	if err != nil {
		return 0, err
	}

	if e.cache != nil {
		if err := e.cache.Put(digest, dfa); err != nil {
			return 0, err
		}
	}
	if e.opts.GraphvizDir != "" {
		if err := e.dumpDot(digest, dfa, n); err != nil {
			return 0, err
		}
	}
	return n, nil
}

func (e *Engine) dumpDot(digest uint64, dfa *redgrep.DFA, n int) error {
	if err := os.MkdirAll(e.opts.GraphvizDir, 0o755); err != nil {
		return fmt.Errorf("rconfig: %w", err)
	}
	path := filepath.Join(e.opts.GraphvizDir, fmt.Sprintf("%016x.dot", digest))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rconfig: %w", err)
	}
	defer f.Close()
	if err := rgraphviz.WriteDot(f, dfa, n); err != nil {
		return fmt.Errorf("rconfig: %w", err)
	}
	return nil
}
