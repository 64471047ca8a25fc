// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package gcsim

// ConstError is an error type usable to define immutable error
// constants, the same pattern the teacher's common package uses for
// its own sentinel errors.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}

// ErrNilRegistry is returned by MarkAndSweep when constructed without
// a target registry to scan.
const ErrNilRegistry ConstError = "gcsim: collector has no registry to scan"
