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
	"github.com/kamblesuraj/refregistry"
	"github.com/kamblesuraj/refregistry/internal/refutil"
)

// Stats reports the outcome of one MarkAndSweep cycle.
type Stats struct {
	Cycle     int
	Marked    int
	Swept     int
	Surviving int

	// MarkedIDs is the RefRegistryID of every marked object, sorted
	// ascending so logging/demo output is deterministic despite the
	// mark phase itself walking a Go map in random order.
	MarkedIDs []uint64
}

// Collector drives mark/sweep cycles against a *refregistry.Registry,
// the way a real tracing collector would run registry.Roots() and
// registry.LockForIter() at its own safepoints. Unlike a real
// collector it runs synchronously on the caller's goroutine — there is
// no background goroutine here, the same explicit-trigger shape
// zephyrtronium/iolang's coreext/collector wraps around runtime.GC().
type Collector struct {
	registry *refregistry.Registry
	cycle    int
}

// NewCollector creates a collector scanning registry.
func NewCollector(registry *refregistry.Registry) *Collector {
	return &Collector{registry: registry}
}

// MarkAndSweep runs one full collection cycle: it marks every object
// transitively reachable from the registry's current roots (plus any
// extraRoots supplied by the caller, standing in for stack/global
// roots a real collector would also scan), then clears every
// registry slot whose object did not get marked.
func (c *Collector) MarkAndSweep(extraRoots ...*Obj) (Stats, error) {
	if c.registry == nil {
		return Stats{}, ErrNilRegistry
	}
	c.cycle++

	marked := make(map[*Obj]bool)
	var stack []*Obj

	roots := c.registry.Roots(refregistry.DefaultMaxRootWalkIterations)
	for roots.Next() {
		if o, ok := roots.Object().(*Obj); ok {
			stack = append(stack, o)
		}
	}
	stack = append(stack, extraRoots...)

	for len(stack) > 0 {
		o := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if o == nil || marked[o] {
			continue
		}
		marked[o] = true
		stack = append(stack, o.Refs...)
	}

	swept, surviving := 0, 0
	it := c.registry.LockForIter()
	for !it.Done() {
		if o, ok := it.Object().(*Obj); ok && !marked[o] {
			it.Clear()
			swept++
		} else {
			surviving++
		}
		it.Advance()
	}
	it.Release()

	markedIDs := make(map[uint64]bool, len(marked))
	for o := range marked {
		markedIDs[o.RefRegistryID()] = true
	}

	return Stats{
		Cycle:     c.cycle,
		Marked:    len(marked),
		Swept:     swept,
		Surviving: surviving,
		MarkedIDs: refutil.SortedKeys(markedIDs),
	}, nil
}
