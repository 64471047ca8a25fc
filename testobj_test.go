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

// testObj is the smallest possible object.Object for exercising the
// registry without depending on the gcsim package.
type testObj struct {
	id uint64
}

func (o *testObj) RefRegistryID() uint64 {
	return o.id
}

func newTestObj(id uint64) object.Object {
	return &testObj{id: id}
}
