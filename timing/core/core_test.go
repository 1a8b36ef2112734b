package core_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv5sim/insts"
	"github.com/sarchlab/rv5sim/snapshot"
	"github.com/sarchlab/rv5sim/timing/cache"
	"github.com/sarchlab/rv5sim/timing/core"
)

var _ = Describe("Core", func() {
	It("loads a program into its memory, runs it, and reports statistics", func() {
		iCacheConfig := cache.Config{CacheSize: 256, BlockSize: 16, Ways: 1, MissLatency: 2}
		dCacheConfig := cache.Config{CacheSize: 256, BlockSize: 16, Ways: 1, MissLatency: 2}
		sink := snapshot.NewMemorySink()

		c := core.New(iCacheConfig, dCacheConfig, sink)

		// addi x1, x0, 7; halt; two NOPs padding out the 16-byte I-cache
		// block, so the zero (illegal) word after them is not decoded before
		// halt retires.
		c.Memory.Write32(0, 0x00700093)
		c.Memory.Write32(4, insts.HaltWord)
		c.Memory.Write32(8, insts.NopWord)
		c.Memory.Write32(12, insts.NopWord)

		c.Init()
		status := c.RunTillHalt()
		stats := c.Finalize()

		Expect(status.String()).To(Equal("HALT"))
		Expect(c.RegFile.ReadReg(1)).To(Equal(uint32(7)))
		Expect(stats.DynamicInstructions).To(Equal(uint64(2)))
		Expect(sink.Stats).To(Equal(stats))
	})

	It("stops after the requested number of cycles when no halt occurs", func() {
		iCacheConfig := cache.Config{CacheSize: 256, BlockSize: 16, Ways: 1, MissLatency: 2}
		dCacheConfig := cache.Config{CacheSize: 256, BlockSize: 16, Ways: 1, MissLatency: 2}
		c := core.New(iCacheConfig, dCacheConfig, nil)

		// A run of 64 NOPs; never halts within the requested cycles.
		for i := 0; i < 64; i++ {
			c.Memory.Write32(uint64(i*4), insts.NopWord)
		}

		c.Init()
		status := c.RunCycles(5)

		Expect(status.String()).To(Equal("SUCCESS"))
	})
})
