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

// Package rlog is the small leveled logger the rest of redgrep uses: a thin
// wrapper around the standard library log.Logger, not a third-party
// logging framework.
package rlog

import (
	"log"
	"os"
	"sync/atomic"
)

var std = log.New(os.Stderr, "redgrep: ", log.LstdFlags)

// debug gates Debugf, the only logging function here. Atomic because Compile
// and the cache can be exercised from multiple goroutines concurrently.
var debug atomic.Bool

// SetDebug turns Debugf output on or off. Off by default, matching the
// zero-config Options of rconfig.
func SetDebug(v bool) { debug.Store(v) }

func Debugf(format string, args ...any) {
	if debug.Load() {
		std.Printf("DEBUG "+format, args...)
	}
}
