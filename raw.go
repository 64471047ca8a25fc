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

// RawRef is the interop representation of a handle: an opaque, typed
// pointer suitable for storing in foreign code that only understands
// raw words (e.g. a byte buffer crossing an FFI boundary). It resolves
// the typed-vs-untyped Open Question in SPEC_FULL.md in favor of the
// typed variant: RawRef is a defined pointer type, not an unsafe.Pointer
// or uintptr, so a round trip through it is still type-checked.
type RawRef *Node

// rawFromNode converts a Node pointer to its raw representation.
func rawFromNode(n *Node) RawRef {
	return RawRef(n)
}

// nodeFromRaw recovers the Node pointer backing a raw reference.
func nodeFromRaw(raw RawRef) *Node {
	return (*Node)(raw)
}
