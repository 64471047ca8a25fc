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

import "github.com/kamblesuraj/refregistry/object"

// WeakRef is a handle that observes its target without keeping it
// alive. Create one with ThreadQueue.CreateWeak; dispose of it exactly
// once with Dispose.
type WeakRef struct {
	node *Node
}

// TryRef returns the target object, or (nil, false) if the collector
// has already determined it to be unreachable and cleared it.
func (h *WeakRef) TryRef() (object.Object, bool) {
	return h.node.TryRef()
}

// AsRaw converts the handle into its interop raw representation,
// consuming it.
func (h *WeakRef) AsRaw() RawRef {
	n := h.node
	h.node = nil
	return rawFromNode(n)
}

// WeakRefFromRaw reconstructs a handle from its raw representation.
func WeakRefFromRaw(raw RawRef) WeakRef {
	return WeakRef{node: nodeFromRaw(raw)}
}

// Dispose marks the underlying Node disposed. Unlike StrongRef, a
// WeakRef never holds rc above zero, so there is nothing to release
// first, and no fast-deletion short circuit: a weak handle's Node is
// always left for the registry's own sweep to erase, because the
// ported source never special-cases weak handles for local deletion
// either (only strong, rc-bearing handles can be safely erased before
// ever reaching the collector's sight).
func (h *WeakRef) Dispose() {
	n := h.node
	assertf(n != nil, "disposing an already-disposed handle")
	h.node = nil
	n.Dispose()
}
