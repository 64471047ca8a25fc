// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package object defines the minimal contract the special-reference
// registry requires from the objects it tracks. The tracing collector,
// the allocator, and the object model itself all live outside this
// module; this interface is the entire surface the registry needs from
// them.
package object

// Object is anything the registry can hold a reference to. Instances
// are expected to be pointer types with stable identity; the registry
// never compares objects by value, only by pointer identity.
type Object interface {
	// RefRegistryID identifies the object for diagnostics (memory
	// footprint reports, panics on invariant violations). The registry's
	// own algorithm never calls this to make a decision.
	RefRegistryID() uint64
}
