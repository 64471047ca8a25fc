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

import "fmt"

// debugAssertionsEnabled mirrors the source's
// compiler::runtimeAssertsEnabled() guard: precondition violations are a
// programmer error, not a recoverable runtime condition, so they panic
// here rather than returning an error. Flip to false to compile the
// asserted checks out of a release build.
const debugAssertionsEnabled = true

// assertf panics with a formatted message if debug assertions are
// enabled and cond is false. Used exclusively for precondition checks
// spec.md classifies as "fatal assertion in debug builds; undefined
// behavior in release" — never for conditions a caller could
// legitimately trigger and recover from.
func assertf(cond bool, format string, args ...any) {
	if !debugAssertionsEnabled {
		return
	}
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
