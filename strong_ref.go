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

// StrongRef is a move-only (by convention — see Dispose) handle that
// pins its target into the collector's root set for as long as it is
// alive. Create one with ThreadQueue.CreateStrong; dispose of it
// exactly once with Dispose.
type StrongRef struct {
	node *Node
}

// Deref returns the target object. Always safe to call on a live
// handle: the target is guaranteed to be a root.
func (h *StrongRef) Deref() object.Object {
	return h.node.Ref()
}

// AsRaw converts the handle into its interop raw representation. The
// handle is consumed: the caller becomes responsible for eventually
// reconstructing and disposing it.
func (h *StrongRef) AsRaw() RawRef {
	n := h.node
	h.node = nil
	return rawFromNode(n)
}

// StrongRefFromRaw reconstructs a handle from its raw representation.
func StrongRefFromRaw(raw RawRef) StrongRef {
	return StrongRef{node: nodeFromRaw(raw)}
}

// Dispose releases and disposes the underlying Node, then — if the Node
// never left its creating ThreadQueue — deletes it immediately without
// ever publishing it or involving the registry's sweep.
//
// Dispose must be called exactly once per handle; calling it again
// panics, matching the source's assertion that a handle cannot be
// disposed twice.
func (h *StrongRef) Dispose() {
	n := h.node
	assertf(n != nil, "disposing an already-disposed handle")
	h.node = nil

	n.ReleaseRef()
	n.Dispose()
	if n.ownerQueue != nil {
		n.ownerQueue.DeleteNodeIfLocal(n)
	}
}
