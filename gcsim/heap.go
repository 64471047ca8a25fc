// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package gcsim is a toy allocator and mark/sweep collector standing in
// for the tracing collector and object model spec.md deliberately
// places outside the registry's own scope. It exists so the registry's
// testable properties and the demo CLI have something concrete to mark
// and sweep against.
package gcsim

import "sync/atomic"

var nextID atomic.Uint64

// Obj is a toy managed object: it implements object.Object and carries
// outgoing edges so tests can build arbitrary graphs — trees, cycles,
// diamonds — for mark-sweep exercises.
type Obj struct {
	id   uint64
	Refs []*Obj
}

// RefRegistryID implements object.Object.
func (o *Obj) RefRegistryID() uint64 {
	return o.id
}

// Heap is a toy allocator tracking every Obj it has produced, purely
// for the harness's own bookkeeping (it is not part of the registry
// and has no bearing on the registry's own correctness).
type Heap struct {
	objects []*Obj
}

// NewHeap creates an empty heap.
func NewHeap() *Heap {
	return &Heap{}
}

// NewObject allocates a fresh Obj with no outgoing edges.
func (h *Heap) NewObject() *Obj {
	o := &Obj{id: nextID.Add(1)}
	h.objects = append(h.objects, o)
	return o
}

// Objects returns every object ever allocated by this heap, live or
// not.
func (h *Heap) Objects() []*Obj {
	return h.objects
}
