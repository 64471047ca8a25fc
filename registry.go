// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package refregistry implements the special-reference registry that
// sits between a tracing collector and external code holding strong,
// weak, or back-reference handles into a managed heap. It is a direct
// port of SpecialRefRegistry from Kotlin/Native's runtime (see
// DESIGN.md), generalized from that source's single concrete ObjHeader*
// target type to the object.Object interface.
package refregistry

import (
	"container/list"
	"sync"

	"github.com/kamblesuraj/refregistry/internal/memfootprint"
	"github.com/kamblesuraj/refregistry/internal/refutil"
	"github.com/kamblesuraj/refregistry/object"
)

// DefaultMaxRootWalkIterations bounds the pruning work of each
// RootsIterator.Next call, guaranteeing progress even under a continuous stream of
// concurrent promotions. It matches the 1000-iteration cap used by the
// ported source's own RootsIterable::begin().
const DefaultMaxRootWalkIterations = 1000

// maxRootWalkIterationsCeiling bounds how large a caller-supplied
// maxIterations may grow; past this, a single Next() call would do an
// unbounded amount of pruning work in one step, defeating the point of
// the cap. One is the floor: a cap of zero or less would make nextRoot
// loop zero times and never advance the iterator at all.
const maxRootWalkIterationsCeiling = 1_000_000

// Registry is the process-wide (but explicitly instantiated — see
// SPEC_FULL.md's "Open Questions — resolved") owner of every published
// Node. It holds the doubly-linked all-list of published Nodes under a
// mutex, and a lock-free singly-linked list of currently-strong Nodes
// (the roots list) threaded through each Node's nextRoot field.
//
// A Registry must not be copied after first use (it embeds a
// sync.Mutex and two fixed-address sentinel Nodes whose addresses are
// load-bearing).
type Registry struct {
	mu  sync.Mutex
	all *list.List // of *Node, mutated only under mu

	// head and tail are fixed sentinels of the roots list, embedded so
	// their addresses are stable for the registry's entire lifetime.
	// head.nextRoot is the list's entry point; tail is never
	// dereferenced past comparison.
	head Node
	tail Node
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	r := &Registry{all: list.New()}
	r.head.nextRoot.Store(&r.tail)
	return r
}

// spliceAllList moves every Node in q (a ThreadQueue's local list) onto
// the all-list under the registry mutex. Called only from
// ThreadQueue.Publish.
func (r *Registry) spliceAllList(q *list.List) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for e := q.Front(); e != nil; {
		next := e.Next()
		q.Remove(e)
		r.all.PushBack(e.Value)
		e = next
	}
}

// promoteIntoRoots inserts n at the head of the roots list, unless it is
// already linked in (or another promoter is concurrently linking it) or
// its target has already been cleared.
func (r *Registry) promoteIntoRoots(n *Node) {
	if n.clearedByCollector() {
		// Optimization: a cleared node can never be observed as a live
		// root, so there is no point promoting it.
		return
	}
	if n.nextRoot.Load() != nil {
		// Already a root, or another promoter has claimed it. A
		// concurrent nextRoot walk might still demote it, but that walk
		// rechecks rc afterwards and will re-promote if needed.
		return
	}

	for {
		next := r.head.nextRoot.Load()
		n.nextRoot.Store(next)
		if r.head.nextRoot.CompareAndSwap(next, n) {
			return
		}
	}
}

// nextRoot returns the next Node after current with rc > 0, deleting
// every zero-rc Node it passes over along the way. It is bounded by
// maxIterations so that a continuous stream of concurrent insertions at
// the head cannot prevent a walker from making progress; exceeding the
// bound conservatively returns whatever current's successor happens to
// be (over-retaining a root for one extra cycle is always safe).
//
// Only a single goroutine may call nextRoot concurrently (the collector
// is the sole walker); insertion via promoteIntoRoots remains safe from
// any number of concurrent mutator goroutines.
func (r *Registry) nextRoot(current *Node, maxIterations int) *Node {
	for i := 0; i < maxIterations; i++ {
		candidate := current.nextRoot.Load()
		assertf(candidate != nil, "roots list node has a nil successor")
		if candidate == &r.tail || candidate.rc.Load() > 0 {
			return candidate
		}

		// candidate is a dead (rc <= 0) node; remove it from the list.
		for {
			next := candidate.nextRoot.Load()
			assertf(next != nil, "roots list node has a nil successor")
			if current.nextRoot.CompareAndSwap(candidate, next) {
				candidate.nextRoot.Store(nil)
				break
			}
			// Someone inserted between current and candidate. Move
			// current forward and retry; because insertions only ever
			// happen at the head, this always makes progress.
			current = current.nextRoot.Load()
		}

		// Re-check: a concurrent retain may have made candidate live
		// again between our decision to delete it and the delete
		// itself. If so, put it back.
		if candidate.rc.Load() > 0 {
			r.promoteIntoRoots(candidate)
		}
	}
	return current.nextRoot.Load()
}

// findAliveNode scans forward from e (inclusive), erasing from the
// all-list any disposed node that is not currently linked into the
// roots list, and returns the first element that is either not disposed
// or still linked into the roots list (left for the next cycle's
// nextRoot walk to unlink first). Must be called with mu held.
func (r *Registry) findAliveNode(e *list.Element) *list.Element {
	for e != nil {
		n := e.Value.(*Node)
		if !n.isDisposed() {
			return e
		}
		if n.nextRoot.Load() != nil {
			// Still a root; wait for the next cycle's root walk to
			// unlink it before erasing it here.
			e = e.Next()
			continue
		}
		next := e.Next()
		r.all.Remove(e)
		e = next
	}
	return nil
}

// RootsIterator lazily walks the registry's roots list, pruning dead
// entries in place as it goes. Call Next until it returns false; Object
// is only valid after a call to Next returned true.
type RootsIterator struct {
	registry      *Registry
	maxIterations int
	node          *Node
}

// Roots returns an iterator over every Node currently in the roots
// list. It must only be called on the collector's thread, after every
// ThreadQueue has published. maxIterations bounds each Next call's
// pruning work; pass DefaultMaxRootWalkIterations unless a tighter
// safepoint budget is required.
func (r *Registry) Roots(maxIterations int) *RootsIterator {
	maxIterations = refutil.Clamp(maxIterations, 1, maxRootWalkIterationsCeiling)
	return &RootsIterator{registry: r, maxIterations: maxIterations, node: &r.head}
}

// Next advances the iterator to the next root, returning false once the
// roots list is exhausted.
func (it *RootsIterator) Next() bool {
	it.node = it.registry.nextRoot(it.node, it.maxIterations)
	return it.node != &it.registry.tail
}

// Object returns the object.Object at the iterator's current position.
// Ignoring rc here (as the ported source does) is intentional: if a
// concurrent release races this read, it is safe to conservatively
// treat the node as a root for this cycle.
func (it *RootsIterator) Object() object.Object {
	h := it.node.obj.Load()
	if h == nil {
		return nil
	}
	return h.obj
}

// AllIterator is a locked iterator over every published Node, used by
// the collector's finalize phase to clear targets of unreachable
// handles and to erase disposed, unrooted Nodes from the all-list. The
// registry's mutex is held for the iterator's entire lifetime; callers
// must call Release exactly once, after which the iterator must not be
// used again.
type AllIterator struct {
	registry *Registry
	elem     *list.Element
}

// LockForIter locks the registry and returns an iterator over all
// published Nodes, skipping (and erasing) nodes that are disposed and
// not currently part of the roots list. Must only be called on the
// collector's thread, after marking has completed.
func (r *Registry) LockForIter() *AllIterator {
	r.mu.Lock()
	return &AllIterator{registry: r, elem: r.findAliveNode(r.all.Front())}
}

// Done reports whether the iterator has been exhausted.
func (it *AllIterator) Done() bool {
	return it.elem == nil
}

// Object returns the current Node's target, or nil if it has already
// been cleared.
func (it *AllIterator) Object() object.Object {
	h := it.elem.Value.(*Node).obj.Load()
	if h == nil {
		return nil
	}
	return h.obj
}

// Clear nulls out the current Node's target. The collector calls this
// during its finalize phase for every Node whose target did not survive
// marking.
func (it *AllIterator) Clear() {
	it.elem.Value.(*Node).clearObj()
}

// Advance moves the iterator to the next alive Node. Must not be called
// once Done reports true.
func (it *AllIterator) Advance() {
	assertf(it.elem != nil, "advancing an exhausted registry iterator")
	it.elem = it.registry.findAliveNode(it.elem.Next())
}

// Release unlocks the registry. Must be called exactly once per
// LockForIter call, typically via defer.
func (it *AllIterator) Release() {
	it.registry.mu.Unlock()
}

// ClearForTests discards every published Node without running any
// finalizers, and resets the roots list to empty. Only meant for test
// teardown between independent test cases sharing process state.
func (r *Registry) ClearForTests() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.head.nextRoot.Store(&r.tail)
	for e := r.all.Front(); e != nil; e = e.Next() {
		e.Value.(*Node).rc.Store(disposedMarker)
	}
	r.all.Init()
}

// GetMemoryFootprint reports the approximate memory retained by the
// registry's bookkeeping structures (not the objects they reference).
func (r *Registry) GetMemoryFootprint() *memfootprint.Footprint {
	r.mu.Lock()
	count := r.all.Len()
	r.mu.Unlock()

	const nodeSize = 64 // obj + rc + nextRoot + ownerQueue + position, rounded up
	mf := memfootprint.New(uintptr(2 * nodeSize)) // head + tail sentinels
	mf.AddChild("all", memfootprint.New(uintptr(count*nodeSize)))
	mf.SetNote("published nodes")
	return mf
}
