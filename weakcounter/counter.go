// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package weakcounter implements the "weak-reference counter" bridge
// object described in spec.md §4.5: a small managed object, memoized
// per target in an extra-data slot, that embeds a WeakRef to that
// target. Foreign-runtime bridges (ObjC/Swift, JNI, and similar) use
// this pattern to hand out one stable counter object per managed
// target rather than repeatedly minting raw handles.
package weakcounter

import (
	"sync"

	"github.com/kamblesuraj/refregistry"
	"github.com/kamblesuraj/refregistry/object"
)

// ExtraData is the reduced interface the (out of scope) per-object
// extra-data table offers this package: a place to memoize one Counter
// per managed object. It is deliberately narrow, mirroring the
// teacher's preference for small single-purpose collaborator
// interfaces (see common/interfaces.go) over a fully generic store.
type ExtraData interface {
	Load(obj object.Object) (*Counter, bool)
	LoadOrStore(obj object.Object, c *Counter) (*Counter, bool)
}

// MapExtraData is a sync.Map-backed ExtraData, sufficient for tests
// and the demo CLI; a real foreign-runtime bridge would instead back
// this with its own object header's extra-data field.
type MapExtraData struct {
	m sync.Map // object.Object -> *Counter
}

// Load returns the memoized counter for obj, if any.
func (d *MapExtraData) Load(obj object.Object) (*Counter, bool) {
	v, ok := d.m.Load(obj)
	if !ok {
		return nil, false
	}
	return v.(*Counter), true
}

// LoadOrStore atomically installs c as obj's counter unless one is
// already present, returning whichever counter ends up installed.
func (d *MapExtraData) LoadOrStore(obj object.Object, c *Counter) (*Counter, bool) {
	v, loaded := d.m.LoadOrStore(obj, c)
	return v.(*Counter), loaded
}

// Counter memoizes one WeakRef per managed object. It participates in
// normal GC like any other managed object; its embedded WeakRef is
// disposed when the counter itself is finalized (Dispose).
type Counter struct {
	weak refregistry.WeakRef
}

// GetOrCreate returns the Counter memoized for obj in table, creating
// and installing one (via queue) if none exists yet.
func GetOrCreate(table ExtraData, queue *refregistry.ThreadQueue, obj object.Object) *Counter {
	if c, ok := table.Load(obj); ok {
		return c
	}
	c := &Counter{weak: queue.CreateWeak(obj)}
	existing, loaded := table.LoadOrStore(obj, c)
	if loaded {
		// Another goroutine won the race to install a counter first;
		// discard ours.
		c.weak.Dispose()
		return existing
	}
	return c
}

// Dispose releases the embedded weak handle. Must be called exactly
// once, when the counter itself becomes unreachable.
func (c *Counter) Dispose() {
	c.weak.Dispose()
}

// TryDeref returns the counter's target, or (nil, false) once the
// collector has cleared it.
func (c *Counter) TryDeref() (object.Object, bool) {
	return c.weak.TryRef()
}

// UnsafeBase returns the counter's target without checking liveness.
// Callers must independently know the target is alive (e.g. because
// they are on the diagnostic or equality path of a handle they already
// hold strongly) — this mirrors spec.md §4.5's own description of the
// unsafe base-object read used by diagnostic and equality paths.
func (c *Counter) UnsafeBase() object.Object {
	obj, _ := c.weak.TryRef()
	return obj
}
