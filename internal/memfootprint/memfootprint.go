// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package memfootprint reports the approximate memory retained by a
// data structure as a named tree, the same shape Carmen's state
// backends use to report their own footprints. It is adapted here for
// the registry's own bookkeeping structures (Nodes, the all-list, the
// roots list) rather than for a state DB's pages and buffers.
package memfootprint

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Footprint describes the memory consumption of one structure, plus
// any number of named subcomponents.
type Footprint struct {
	value    uintptr
	children map[string]*Footprint
	note     string
}

// New creates a Footprint reporting value bytes of direct consumption.
func New(value uintptr) *Footprint {
	return &Footprint{value: value, children: make(map[string]*Footprint)}
}

// SetNote attaches a free-form comment to the report.
func (mf *Footprint) SetNote(note string) {
	mf.note = note
}

// AddChild attaches the footprint of a named subcomponent.
func (mf *Footprint) AddChild(name string, child *Footprint) {
	mf.children[name] = child
}

// Total reports the bytes consumed by this structure and everything
// reachable from it, visiting any diamond-shared subcomponent once.
func (mf *Footprint) Total() uintptr {
	visited := make(map[*Footprint]bool)
	return total(mf, visited)
}

func total(mf *Footprint, visited map[*Footprint]bool) uintptr {
	if mf == nil || visited[mf] {
		return 0
	}
	visited[mf] = true
	sum := mf.value
	for _, child := range mf.children {
		sum += total(child, visited)
	}
	return sum
}

// ToString renders the footprint as a tree summary, rooted at name.
func (mf *Footprint) ToString(name string) string {
	var sb strings.Builder
	mf.write(&sb, name)
	return sb.String()
}

// String implements fmt.Stringer so a Footprint can be used directly
// in format strings.
func (mf *Footprint) String() string {
	return mf.ToString(".")
}

func (mf *Footprint) write(sb *strings.Builder, path string) {
	names := maps.Keys(mf.children)
	slices.Sort(names)

	for _, name := range names {
		mf.children[name].write(sb, path+"/"+name)
	}

	writeBytes(sb, mf.Total())
	sb.WriteRune(' ')
	sb.WriteString(path)
	if mf.note != "" {
		sb.WriteRune(' ')
		sb.WriteString(mf.note)
	}
	sb.WriteRune('\n')
}

func writeBytes(sb *strings.Builder, bytes uintptr) {
	const unit = 1024
	const prefixes = " KMGTPE"
	div, exp := 1, 0
	for n := bytes; n >= unit && exp+1 < len(prefixes); n /= unit {
		div *= unit
		exp++
	}
	fmt.Fprintf(sb, "%6.1f %cB", float64(bytes)/float64(div), prefixes[exp])
}
