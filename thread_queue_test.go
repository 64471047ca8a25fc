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

import "testing"

func TestThreadQueue_FastLocalDeleteNeverPublishes(t *testing.T) {
	registry := NewRegistry()
	q := NewThreadQueue(registry)

	ref := q.CreateStrong(newTestObj(1))
	ref.Dispose()

	q.Publish()

	it := registry.LockForIter()
	defer it.Release()
	if !it.Done() {
		t.Errorf("expected a fast-deleted strong handle to never reach the all-list")
	}
}

func TestThreadQueue_PublishPromotesLiveStrongHandles(t *testing.T) {
	registry := NewRegistry()
	q := NewThreadQueue(registry)

	ref := q.CreateStrong(newTestObj(1))
	q.Publish()

	count := 0
	roots := registry.Roots(DefaultMaxRootWalkIterations)
	for roots.Next() {
		count++
	}
	if want, got := 1, count; want != got {
		t.Errorf("unexpected root count, wanted %d, got %d", want, got)
	}

	ref.Dispose()
}

func TestThreadQueue_PublishDoesNotRootWeakHandles(t *testing.T) {
	registry := NewRegistry()
	q := NewThreadQueue(registry)

	_ = q.CreateWeak(newTestObj(1))
	q.Publish()

	count := 0
	roots := registry.Roots(DefaultMaxRootWalkIterations)
	for roots.Next() {
		count++
	}
	if want, got := 0, count; want != got {
		t.Errorf("unexpected root count, wanted %d, got %d", want, got)
	}
}

func TestThreadQueue_DeleteNodeIfLocalIsNoopOncePublished(t *testing.T) {
	registry := NewRegistry()
	q := NewThreadQueue(registry)

	ref := q.CreateStrong(newTestObj(1))
	q.Publish()

	// The node is no longer locally owned; this must not panic or
	// corrupt the published all-list.
	q.DeleteNodeIfLocal(ref.node)

	it := registry.LockForIter()
	defer it.Release()
	if it.Done() {
		t.Errorf("expected the published node to still be present in the all-list")
	}

	ref.Dispose()
}
