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

	"github.com/kamblesuraj/refregistry/object"
)

// ThreadQueue is a per-goroutine staging list of freshly created Nodes
// that have not yet been made visible to the collector. It amortizes
// publication and lets very short-lived strong handles be deleted
// without ever touching the registry's global state.
//
// A ThreadQueue is not safe for concurrent use from multiple goroutines;
// it is meant to be owned by exactly one mutator at a time, mirroring
// the source's one-ThreadQueue-per-OS-thread discipline.
type ThreadQueue struct {
	registry *Registry
	queue    *list.List // of *Node
}

// NewThreadQueue creates a staging queue publishing into registry.
func NewThreadQueue(registry *Registry) *ThreadQueue {
	return &ThreadQueue{registry: registry, queue: list.New()}
}

// CreateStrong creates a new strong handle for obj, initially
// referenced (rc=1) and eligible for the fast local-deletion
// optimization.
func (q *ThreadQueue) CreateStrong(obj object.Object) StrongRef {
	return StrongRef{node: q.registerNode(obj, 1, true)}
}

// CreateWeak creates a new weak handle for obj, with no initial
// refcount.
func (q *ThreadQueue) CreateWeak(obj object.Object) WeakRef {
	return WeakRef{node: q.registerNode(obj, 0, false)}
}

// CreateBackRef creates a new back-reference handle for obj with an
// initial external refcount of 1.
func (q *ThreadQueue) CreateBackRef(obj object.Object) BackRef {
	return BackRef{registry: q.registry, node: q.registerNode(obj, 1, false)}
}

// registerNode emplaces a new Node into the local staging list.
func (q *ThreadQueue) registerNode(obj object.Object, rc int32, allowFastDelete bool) *Node {
	n := newNode(obj, rc)
	elem := q.queue.PushBack(n)
	if allowFastDelete {
		n.ownerQueue = q
		n.position = elem
	}
	return n
}

// DeleteNodeIfLocal erases node directly from this queue's local list if
// it is still owned by this queue (i.e. it was created with fast
// deletion enabled and has not yet been published). It is a no-op for
// any Node that has already been published or was never fast-deletable;
// such a Node must instead be handled via Dispose and the registry's
// sweep.
func (q *ThreadQueue) DeleteNodeIfLocal(n *Node) {
	if n.ownerQueue != q {
		return
	}
	q.queue.Remove(n.position)
	n.ownerQueue = nil
	n.position = nil
}

// Publish moves every Node staged in this queue into the registry: it
// clears each Node's local-queue bookkeeping, promotes Nodes with a
// positive refcount into the roots list, and splices the local list
// into the registry's all-list under the registry's mutex.
//
// Publish must be called before this ThreadQueue is discarded; a
// ThreadQueue that publishes nothing is a correct no-op.
func (q *ThreadQueue) Publish() {
	for e := q.queue.Front(); e != nil; e = e.Next() {
		n := e.Value.(*Node)
		// No synchronization needed: these fields are only ever touched
		// in the goroutine that owns this queue, and publication only
		// happens from that same goroutine.
		n.ownerQueue = nil
		n.position = nil
		if n.rc.Load() > 0 {
			q.registry.promoteIntoRoots(n)
		}
	}
	q.registry.spliceAllList(q.queue)
	q.queue = list.New()
}

// ClearForTests discards every staged Node without publishing it. Only
// meant for test teardown; using it outside of tests leaks Nodes that
// will never be collected or swept, because they never become visible
// to the registry.
func (q *ThreadQueue) ClearForTests() {
	q.queue = list.New()
}
