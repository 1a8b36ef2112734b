// Package core wraps the pipeline controller in the high-level lifecycle
// spec.md §5 describes: construct, load a program, run, read back
// statistics. Grounded on the teacher's timing/core/core.go Core wrapper.
package core

import (
	"github.com/sarchlab/rv5sim/emu"
	"github.com/sarchlab/rv5sim/snapshot"
	"github.com/sarchlab/rv5sim/timing/cache"
	"github.com/sarchlab/rv5sim/timing/pipeline"
)

// Core owns the architectural state and the pipeline controller acting on
// it: register file, memory, both caches and the five-stage controller.
type Core struct {
	RegFile *emu.RegFile
	Memory  *emu.Memory

	iCache *cache.Cache
	dCache *cache.Cache

	controller *pipeline.Controller
}

// New creates a Core with its own register file, memory and caches built
// from the given configurations.
func New(iCacheConfig, dCacheConfig cache.Config, sink snapshot.OutputSink) *Core {
	regFile := &emu.RegFile{}
	memory := emu.NewMemory()
	iCache := cache.New(iCacheConfig)
	dCache := cache.New(dCacheConfig)

	c := &Core{
		RegFile: regFile,
		Memory:  memory,
		iCache:  iCache,
		dCache:  dCache,
	}
	c.controller = pipeline.New(regFile, memory, iCache, dCache, sink)
	return c
}

// Init resets the pipeline to its initial state and performs the first
// fetch at PC=0 (spec.md §4.2.9). Call this once, after the program has
// been loaded into Memory.
func (c *Core) Init() {
	c.controller.Init()
}

// RunCycles runs n cycles, or until halt/error if n==0.
func (c *Core) RunCycles(n uint64) pipeline.RunStatus {
	return c.controller.RunCycles(n)
}

// RunTillHalt runs until halt or error.
func (c *Core) RunTillHalt() pipeline.RunStatus {
	return c.controller.RunTillHalt()
}

// Finalize computes and returns the final statistics record.
func (c *Core) Finalize() snapshot.Statistics {
	return c.controller.Finalize()
}
