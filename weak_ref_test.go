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

func TestWeakRef_TryRefSucceedsUntilCleared(t *testing.T) {
	registry := NewRegistry()
	q := NewThreadQueue(registry)
	obj := newTestObj(1)

	ref := q.CreateWeak(obj)
	defer ref.Dispose()

	got, ok := ref.TryRef()
	if !ok || got != obj {
		t.Fatalf("expected TryRef to return the live target")
	}

	ref.node.clearObj()

	if _, ok := ref.TryRef(); ok {
		t.Errorf("expected TryRef to fail once the collector clears the target")
	}
}

func TestWeakRef_RawRoundTrip(t *testing.T) {
	registry := NewRegistry()
	q := NewThreadQueue(registry)
	obj := newTestObj(9)

	ref := q.CreateWeak(obj)
	raw := ref.AsRaw()

	restored := WeakRefFromRaw(raw)
	got, ok := restored.TryRef()
	if !ok || got != obj {
		t.Errorf("unexpected target after round trip")
	}
	restored.Dispose()
}
