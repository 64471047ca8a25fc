// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package gcsim

import (
	"fmt"
	"log"
	"time"
)

// Log is a logger customized for gcsim's demo output: it prints the
// time elapsed since the simulation started, the same way the
// teacher's database/mpt/io.Log times its own long-running tool runs.
type Log struct {
	start  time.Time
	logger *log.Logger
}

// NewLog creates a new logger starting its clock now.
func NewLog() *Log {
	return &Log{start: time.Now(), logger: log.Default()}
}

// Print logs msg prefixed with the elapsed simulation time.
func (l *Log) Print(msg string) {
	now := time.Now()
	t := uint64(now.Sub(l.start).Seconds())
	l.logger.Printf("[t=%4d:%02d] - %s\n", t/60, t%60, msg)
}

// Printf logs a formatted message prefixed with the elapsed simulation
// time.
func (l *Log) Printf(format string, v ...any) {
	l.Print(fmt.Sprintf(format, v...))
}

// PrintStats renders one MarkAndSweep cycle's Stats alongside the
// registry's own memory-footprint report.
func (l *Log) PrintStats(stats Stats, footprint fmt.Stringer) {
	l.Printf("cycle %d: marked=%d swept=%d", stats.Cycle, stats.Marked, stats.Swept)
	l.Print(footprint.String())
}
