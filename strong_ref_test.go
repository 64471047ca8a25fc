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

func TestStrongRef_DerefReturnsTarget(t *testing.T) {
	registry := NewRegistry()
	q := NewThreadQueue(registry)
	obj := newTestObj(42)

	ref := q.CreateStrong(obj)
	defer ref.Dispose()

	if want, got := obj, ref.Deref(); want != got {
		t.Errorf("unexpected target, wanted %v, got %v", want, got)
	}
}

func TestStrongRef_DisposeTwicePanics(t *testing.T) {
	registry := NewRegistry()
	q := NewThreadQueue(registry)
	ref := q.CreateStrong(newTestObj(1))
	ref.Dispose()

	defer func() {
		if recover() == nil {
			t.Errorf("expected disposing a handle twice to panic")
		}
	}()
	ref.Dispose()
}

func TestStrongRef_RawRoundTrip(t *testing.T) {
	registry := NewRegistry()
	q := NewThreadQueue(registry)
	obj := newTestObj(7)

	ref := q.CreateStrong(obj)
	raw := ref.AsRaw()

	restored := StrongRefFromRaw(raw)
	if want, got := obj, restored.Deref(); want != got {
		t.Errorf("unexpected target after round trip, wanted %v, got %v", want, got)
	}
	restored.Dispose()
}
