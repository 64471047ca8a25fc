// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package weakcounter

import (
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/kamblesuraj/refregistry"
	"github.com/kamblesuraj/refregistry/object"
)

type counterTestObj struct{ id uint64 }

func (o *counterTestObj) RefRegistryID() uint64 { return o.id }

func TestGetOrCreate_MemoizesOnePerObject(t *testing.T) {
	registry := refregistry.NewRegistry()
	queue := refregistry.NewThreadQueue(registry)
	table := &MapExtraData{}
	obj := &counterTestObj{id: 1}

	first := GetOrCreate(table, queue, obj)
	second := GetOrCreate(table, queue, obj)

	if first != second {
		t.Errorf("expected GetOrCreate to return the same counter for the same object")
	}

	first.Dispose()
}

func TestCounter_TryDerefReflectsLiveness(t *testing.T) {
	registry := refregistry.NewRegistry()
	queue := refregistry.NewThreadQueue(registry)
	table := &MapExtraData{}
	obj := &counterTestObj{id: 2}

	c := GetOrCreate(table, queue, obj)
	defer c.Dispose()

	got, ok := c.TryDeref()
	if !ok || got != obj {
		t.Fatalf("expected TryDeref to return the live target")
	}
}

func TestGetOrCreate_UsesTableAsSourceOfTruth(t *testing.T) {
	ctrl := gomock.NewController(t)
	table := NewMockExtraData(ctrl)
	obj := &counterTestObj{id: 3}

	registry := refregistry.NewRegistry()
	queue := refregistry.NewThreadQueue(registry)
	existing := &Counter{}

	table.EXPECT().Load(obj).Return(existing, true)

	got := GetOrCreate(table, queue, obj)
	if got != existing {
		t.Errorf("expected GetOrCreate to return the already-memoized counter without creating a new one")
	}
}
