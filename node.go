// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package refregistry

import (
	"container/list"
	"math"
	"sync/atomic"

	"github.com/kamblesuraj/refregistry/object"
)

// disposedMarker is added to rc once a handle is disposed. It is chosen
// far enough from zero that no realistic sequence of retain/release
// calls on a live handle could ever reach it by accident, while still
// leaving room for a few imbalanced retain/release pairs racing the
// dispose call (see Node.Dispose).
const disposedMarker int32 = math.MinInt32

// objHolder is the immutable value Node.obj points to. Go's sync/atomic
// has no lock-free primitive for swapping an interface value in place;
// wrapping it behind one pointer indirection is the standard way to get
// an atomically loadable/storable reference type out of an interface.
// The registry only ever replaces the whole holder, never mutates one
// in place.
type objHolder struct {
	obj object.Object
}

// Node is the fixed-identity record backing one handle (strong, weak, or
// back-reference). Its address never changes for its lifetime; handle
// facades store raw *Node pointers. A Node is owned by the Registry's
// all-list once published, and is linked into the roots list via
// nextRoot whenever its rc is positive.
//
// Node corresponds to SpecialRefRegistry::Node in the source this
// package ports.
type Node struct {
	obj atomic.Pointer[objHolder]
	rc  atomic.Int32

	// nextRoot is the intrusive singly-linked-list pointer threading
	// this Node through the registry's roots list. Non-nil iff the Node
	// is logically present in that list (invariant I1).
	nextRoot atomic.Pointer[Node]

	// ownerQueue and position serve the fast local-deletion optimization
	// only. Both are touched exclusively by the goroutine that owns
	// this Node's ThreadQueue, and only before the Node is published;
	// neither is synchronized.
	ownerQueue *ThreadQueue
	position   *list.Element
}

// newNode creates a Node targeting obj with the given initial refcount.
// obj must be non-nil and rc must be non-negative; both are programmer
// preconditions, not recoverable errors.
func newNode(obj object.Object, rc int32) *Node {
	assertf(obj != nil, "creating a handle for a nil object")
	assertf(rc >= 0, "creating a handle with negative rc %d", rc)
	n := &Node{}
	n.obj.Store(&objHolder{obj: obj})
	n.rc.Store(rc)
	return n
}

// Ref returns the target object. The caller must already know rc > 0,
// or that the Node is otherwise kept alive as a root; the registry does
// not itself synchronize this call with the collector. Safety follows
// from invariant I4: the collector never clears obj while rc is
// positive for a strong or back-reference handle.
func (n *Node) Ref() object.Object {
	if debugAssertionsEnabled {
		rc := n.rc.Load()
		assertf(rc >= 0, "dereferencing a handle with rc %d", rc)
	}
	h := n.obj.Load()
	assertf(h != nil && h.obj != nil, "dereferencing a handle with a cleared target")
	return h.obj
}

// TryRef loads the target object, synchronizing with the collector's
// clearing store during sweep. It returns (nil, false) once the
// collector has already nulled the target out.
func (n *Node) TryRef() (object.Object, bool) {
	h := n.obj.Load()
	if h == nil || h.obj == nil {
		return nil, false
	}
	return h.obj, true
}

// clearedByCollector reports whether the target has already been
// cleared, without any assertion about rc. Used internally by
// promoteIntoRoots' early-out.
func (n *Node) clearedByCollector() bool {
	h := n.obj.Load()
	return h == nil || h.obj == nil
}

// clearObj is called by the collector during finalize to null out the
// target of a Node whose object did not survive marking. The caller
// (the collector) is responsible for only doing this for Nodes whose
// target was not marked, which never includes the target of a strong or
// back-reference Node with rc > 0 (invariant I4).
func (n *Node) clearObj() {
	n.obj.Store(&objHolder{})
}

// RetainRef increments rc. If the pre-increment value was exactly zero,
// the Node is promoted into registry's roots list — the registry must
// be the one this Node was (or will be) published into.
//
// Unlike the source this ports, which reaches a process-wide singleton
// registry through Node's own accessor, this Node carries no registry
// back-pointer (per the source's own design note to avoid one); callers
// that need the 0->1 promotion behavior supply the owning registry
// explicitly, the same way Carmen's nodeOwner methods take their owning
// NodeSource/NodeManager as a parameter instead of storing a back-link.
func (n *Node) RetainRef(registry *Registry) {
	rc := n.rc.Add(1) - 1 // pre-increment value
	if rc == 0 {
		assertf(n.position == nil, "retaining a handle with fast-deletion optimization still pending publish")
		registry.promoteIntoRoots(n)
	}
}

// ReleaseRef decrements rc. No list surgery happens here; reaching
// rc == 0 only makes the Node eligible for demotion on the registry's
// next root walk.
func (n *Node) ReleaseRef() {
	n.rc.Add(-1)
}

// Dispose marks the Node as disposed by biasing rc with disposedMarker.
// The pre-dispose rc must be non-negative (asserted). Imbalanced
// retain/release pairs arriving after Dispose (possible when a foreign
// runtime's autorelease pattern retains and releases around a deinit
// call) are tolerated as long as they net to zero before the Node is
// ever destroyed.
func (n *Node) Dispose() {
	rc := n.rc.Add(disposedMarker) - disposedMarker // pre-add value
	assertf(rc >= 0, "disposing a handle with rc %d", rc)
}

// isDisposed reports whether dispose has been called on this Node.
func (n *Node) isDisposed() bool {
	return n.rc.Load() == disposedMarker
}
