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

func TestBackRef_RetainPromotesFromZero(t *testing.T) {
	registry := NewRegistry()
	q := NewThreadQueue(registry)

	ref := q.CreateBackRef(newTestObj(1))
	q.Publish()
	ref.Release() // drop the initial rc=1 to zero

	ref.Retain() // 0->1 transition: must re-promote

	count := 0
	roots := registry.Roots(DefaultMaxRootWalkIterations)
	for roots.Next() {
		count++
	}
	if want, got := 1, count; want != got {
		t.Errorf("unexpected root count after retain from zero, wanted %d, got %d", want, got)
	}

	ref.Release()
	ref.Dispose()
}

func TestBackRef_TryRetainFailsAfterClear(t *testing.T) {
	registry := NewRegistry()
	q := NewThreadQueue(registry)

	ref := q.CreateBackRef(newTestObj(1))
	q.Publish()
	ref.Release()

	ref.node.clearObj()

	if ref.TryRetain() {
		t.Errorf("expected TryRetain to fail once the target has been cleared")
	}

	ref.Dispose()
}

func TestBackRef_TryRetainSucceedsWhileAlive(t *testing.T) {
	registry := NewRegistry()
	q := NewThreadQueue(registry)

	ref := q.CreateBackRef(newTestObj(1))
	q.Publish()
	ref.Release()

	if !ref.TryRetain() {
		t.Fatalf("expected TryRetain to succeed while the target is still alive")
	}

	ref.Release()
	ref.Dispose()
}

func TestBackRef_RawRoundTrip(t *testing.T) {
	registry := NewRegistry()
	q := NewThreadQueue(registry)
	obj := newTestObj(3)

	ref := q.CreateBackRef(obj)
	raw := ref.AsRaw()

	restored := BackRefFromRaw(registry, raw)
	if want, got := obj, restored.Deref(); want != got {
		t.Errorf("unexpected target after round trip, wanted %v, got %v", want, got)
	}
	restored.Release()
	restored.Dispose()
}
