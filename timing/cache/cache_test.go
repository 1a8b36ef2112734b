package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv5sim/timing/cache"
)

var _ = Describe("Cache", func() {
	var c *cache.Cache

	BeforeEach(func() {
		c = cache.New(cache.Config{
			CacheSize:   256,
			BlockSize:   16,
			Ways:        2,
			MissLatency: 10,
		})
	})

	It("misses on a cold access", func() {
		hit := c.Access(0x1000, cache.Read)
		Expect(hit).To(BeFalse())
		Expect(c.Misses()).To(Equal(uint64(1)))
	})

	It("hits on a repeated access to the same block", func() {
		c.Access(0x1000, cache.Read)
		hit := c.Access(0x1000, cache.Read)
		Expect(hit).To(BeTrue())
		Expect(c.Hits()).To(Equal(uint64(1)))
	})

	It("hits on any address within the same block", func() {
		c.Access(0x1000, cache.Read)
		hit := c.Access(0x1000+8, cache.Read)
		Expect(hit).To(BeTrue())
	})

	It("evicts the least-recently-used way, not the most-recently-touched one", func() {
		// CacheSize=256 with 8 sets means addresses one cache-size apart
		// (0x0, 0x100, 0x200) alias to the same set with distinct tags.
		// 2-way, so the third distinct block in that set must evict one
		// of the first two. Re-touching 0x0 before the third access makes
		// 0x100 (not 0x0) the LRU victim.
		c.Access(0x0, cache.Read)
		c.Access(0x100, cache.Read)
		c.Access(0x0, cache.Read) // re-touch 0x0: now 0x100 is LRU
		c.Access(0x200, cache.Read)

		Expect(c.Access(0x0, cache.Read)).To(BeTrue(), "0x0 was touched most recently and must survive")
		Expect(c.Access(0x100, cache.Read)).To(BeFalse(), "0x100 was the LRU way and must have been evicted")
	})

	It("invalidates a resident block", func() {
		c.Access(0x1000, cache.Read)
		c.Invalidate(0x1000)
		hit := c.Access(0x1000, cache.Read)
		Expect(hit).To(BeFalse())
	})

	It("always misses without side effect for a degenerate zero-way config", func() {
		degenerate := cache.New(cache.Config{CacheSize: 0, BlockSize: 16, Ways: 0, MissLatency: 5})
		Expect(degenerate.Access(0x10, cache.Read)).To(BeFalse())
		Expect(degenerate.Access(0x10, cache.Read)).To(BeFalse())
	})

	It("resets hit/miss counters and resident state", func() {
		c.Access(0x1000, cache.Read)
		c.Access(0x1000, cache.Read)
		c.Reset()
		Expect(c.Hits()).To(Equal(uint64(0)))
		Expect(c.Misses()).To(Equal(uint64(0)))
		Expect(c.Access(0x1000, cache.Read)).To(BeFalse())
	})

	It("reports its configured miss latency", func() {
		Expect(c.MissLatency()).To(Equal(uint64(10)))
	})
})
