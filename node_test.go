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
	"testing"
)

func singleElementList(n *Node) *list.List {
	l := list.New()
	l.PushBack(n)
	return l
}

func TestNode_RefReturnsTarget(t *testing.T) {
	obj := newTestObj(1)
	n := newNode(obj, 1)

	if want, got := obj, n.Ref(); want != got {
		t.Errorf("unexpected target, wanted %v, got %v", want, got)
	}
}

func TestNode_TryRefBeforeAndAfterClear(t *testing.T) {
	n := newNode(newTestObj(1), 0)

	if _, ok := n.TryRef(); !ok {
		t.Errorf("expected TryRef to succeed before clear")
	}

	n.clearObj()

	if _, ok := n.TryRef(); ok {
		t.Errorf("expected TryRef to fail after clear")
	}
}

func TestNode_RetainReleaseBalance(t *testing.T) {
	registry := NewRegistry()
	n := newNode(newTestObj(1), 0)

	n.RetainRef(registry)
	n.RetainRef(registry)
	if want, got := int32(2), n.rc.Load(); want != got {
		t.Errorf("unexpected rc, wanted %d, got %d", want, got)
	}

	n.ReleaseRef()
	n.ReleaseRef()
	if want, got := int32(0), n.rc.Load(); want != got {
		t.Errorf("unexpected rc, wanted %d, got %d", want, got)
	}
}

func TestNode_RetainFromZeroPromotesIntoRoots(t *testing.T) {
	registry := NewRegistry()
	n := newNode(newTestObj(1), 0)
	registry.spliceAllList(singleElementList(n))

	n.RetainRef(registry)

	if n.nextRoot.Load() == nil {
		t.Fatalf("expected node to be linked into the roots list after 0->1 retain")
	}
}

func TestNode_DisposeSetsDisposedBit(t *testing.T) {
	n := newNode(newTestObj(1), 1)
	n.ReleaseRef()
	n.Dispose()

	if !n.isDisposed() {
		t.Errorf("expected node to be disposed")
	}
}

func TestNode_DisposeTriggersAssertOnNegativeRc(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected Dispose on a node with negative rc to panic")
		}
	}()

	n := newNode(newTestObj(1), 0)
	n.ReleaseRef()
	n.Dispose()
}
