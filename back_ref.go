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

// BackRef is a hybrid handle: refcounted like a StrongRef while
// foreign code holds it, degrading to a weak observation once the
// refcount has dropped to zero, from which TryRetain can safely
// re-promote it while the target is still alive — modeled on the
// source's ObjCBackRef, which backs Objective-C/Swift interop handles
// that must survive their owner's refcount reaching zero without
// becoming a dangling pointer.
type BackRef struct {
	registry *Registry
	node     *Node
}

// BackRefFromRaw reconstructs a handle from its raw representation.
// registry must be the same Registry this handle's Node was (or will
// be) published into; it is needed for a future Retain's possible 0->1
// promotion.
func BackRefFromRaw(registry *Registry, raw RawRef) BackRef {
	return BackRef{registry: registry, node: nodeFromRaw(raw)}
}

// AsRaw converts the handle into its interop raw representation,
// consuming it.
func (h *BackRef) AsRaw() RawRef {
	n := h.node
	h.node = nil
	return rawFromNode(n)
}

// Deref returns the target object. Valid only while the caller knows
// the external refcount to be positive (i.e. between a matching
// Retain/Release pair, or right after TryRetain returns true).
func (h *BackRef) Deref() object.Object {
	return h.node.Ref()
}

// Retain increments the external refcount, promoting the handle's Node
// into the registry's roots list if this is the 0->1 transition.
func (h *BackRef) Retain() {
	h.node.RetainRef(h.registry)
}

// Release decrements the external refcount. Reaching zero does not
// immediately unroot the Node; that happens lazily on the registry's
// next root walk.
func (h *BackRef) Release() {
	h.node.ReleaseRef()
}

// TryRetain is the delicate operation ObjCBackRef exists for: it
// attempts to go from a possibly-zero external refcount back to a live
// strong reference, but only if the target has not already been
// cleared by the collector. It loads the target via TryRef first and,
// only if that succeeds, calls RetainRef — never the other way around,
// since retaining first would race a concurrent clear that has already
// decided this Node is unreachable.
func (h *BackRef) TryRetain() bool {
	if _, ok := h.node.TryRef(); !ok {
		return false
	}
	h.node.RetainRef(h.registry)
	return true
}

// Dispose marks the underlying Node disposed. The caller must already
// have driven the external refcount back to zero (via Release); Dispose
// does not release on the caller's behalf, matching the source's
// ObjCBackRef::dispose(), which is only ever reached from a retainCount
// == 0 deallocation hook.
func (h *BackRef) Dispose() {
	n := h.node
	assertf(n != nil, "disposing an already-disposed handle")
	h.node = nil
	n.Dispose()
}
