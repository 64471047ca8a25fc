// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"github.com/urfave/cli/v2"

	"github.com/kamblesuraj/refregistry"
	"github.com/kamblesuraj/refregistry/gcsim"
	"github.com/kamblesuraj/refregistry/weakcounter"
)

var (
	objectCountFlag = cli.IntFlag{
		Name:  "objects",
		Usage: "number of toy objects to allocate",
		Value: 16,
	}
	cyclesFlag = cli.IntFlag{
		Name:  "cycles",
		Usage: "number of mark-and-sweep cycles to run",
		Value: 3,
	}
)

var simulateCommand = cli.Command{
	Action: simulate,
	Name:   "simulate",
	Usage:  "builds a toy object graph and runs a few GC cycles against it",
	Flags: []cli.Flag{
		&objectCountFlag,
		&cyclesFlag,
	},
}

func simulate(ctx *cli.Context) error {
	numObjects := ctx.Int(objectCountFlag.Name)
	numCycles := ctx.Int(cyclesFlag.Name)

	log := gcsim.NewLog()
	registry := refregistry.NewRegistry()
	heap := gcsim.NewHeap()
	queue := refregistry.NewThreadQueue(registry)
	collector := gcsim.NewCollector(registry)
	counters := &weakcounter.MapExtraData{}

	log.Printf("allocating %d toy objects", numObjects)
	objs := make([]*gcsim.Obj, numObjects)
	for i := range objs {
		objs[i] = heap.NewObject()
	}
	// Link each object to the next, so only the first is directly
	// rooted but the whole chain stays reachable.
	for i := 0; i+1 < len(objs); i++ {
		objs[i].Refs = append(objs[i].Refs, objs[i+1])
	}

	strong := queue.CreateStrong(objs[0])
	orphan := queue.CreateWeak(heap.NewObject())
	weakcounter.GetOrCreate(counters, queue, objs[len(objs)/2])
	queue.Publish()

	for cycle := 1; cycle <= numCycles; cycle++ {
		stats, err := collector.MarkAndSweep()
		if err != nil {
			return err
		}
		log.PrintStats(stats, registry.GetMemoryFootprint())
	}

	if _, ok := orphan.TryRef(); ok {
		log.Print("unexpected: orphaned object survived collection")
	} else {
		log.Print("orphaned object was collected as expected")
	}

	strong.Dispose()
	orphan.Dispose()
	return nil
}
