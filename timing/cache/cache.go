// Package cache provides the LRU cache timing model used by the pipeline
// controller (spec.md §4.1). A Cache answers hit/miss for an address; it
// stores no data bytes, only tags and validity — the controller is the
// only component that ever touches real memory contents.
package cache

import (
	"math/bits"

	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// Op distinguishes a read access from a write access. Per spec.md §4.1,
// the cache is write-allocate and does not track dirty state, so Op has
// no effect on placement policy. The cache does not record it: hit and miss
// counts are kept for reads and writes together.
type Op uint8

const (
	// Read is a load access.
	Read Op = iota
	// Write is a store access.
	Write
)

// Config is a single cache's configuration (spec.md §6). Size, block
// size and the derived set count must all be positive powers of two;
// BlockSize may be 1.
type Config struct {
	CacheSize   int    `json:"cache_size"`
	BlockSize   int    `json:"block_size"`
	Ways        int    `json:"ways"`
	MissLatency uint64 `json:"miss_latency"`
}

// NumSets returns cache_size / block_size / ways, or 0 for a degenerate
// configuration (spec.md §4.1 edge cases: zero sets/ways means every
// access misses without side effect).
func (c Config) NumSets() int {
	if c.BlockSize <= 0 || c.Ways <= 0 {
		return 0
	}
	return c.CacheSize / c.BlockSize / c.Ways
}

// Cache is a set-associative LRU cache. It is an owned value inside the
// pipeline controller — there is no sharing, no reference counting, and
// no asynchrony (spec.md §9 "Cache as value, not service").
type Cache struct {
	config Config

	// directory is nil for a degenerate configuration (zero sets or zero
	// ways); every access is then a no-op miss.
	directory *akitacache.DirectoryImpl

	offsetBits int

	hits   uint64
	misses uint64
}

// New creates a Cache from the given configuration.
func New(config Config) *Cache {
	c := &Cache{config: config}

	numSets := config.NumSets()
	if numSets <= 0 {
		return c
	}

	c.offsetBits = bits.TrailingZeros(uint(config.BlockSize))
	c.directory = akitacache.NewDirectory(
		numSets,
		config.Ways,
		config.BlockSize,
		akitacache.NewLRUVictimFinder(),
	)

	return c
}

// Config returns the cache's configuration.
func (c *Cache) Config() Config {
	return c.config
}

// Hits returns the number of accesses that hit.
func (c *Cache) Hits() uint64 { return c.hits }

// Misses returns the number of accesses that missed.
func (c *Cache) Misses() uint64 { return c.misses }

// MissLatency returns the configured miss latency in cycles.
func (c *Cache) MissLatency() uint64 { return c.config.MissLatency }

// blockAddr masks addr down to its block-aligned base.
func (c *Cache) blockAddr(addr uint64) uint64 {
	return (addr >> c.offsetBits) << c.offsetBits
}

// Access performs a cache access for addr (spec.md §4.1). op does not
// affect placement: the cache is write-allocate and tracks no dirty
// state.
func (c *Cache) Access(addr uint64, op Op) (hit bool) {
	if c.directory == nil {
		c.misses++
		return false
	}

	block := c.blockAddr(addr)
	way := c.directory.Lookup(0, block)
	if way != nil && way.IsValid {
		c.hits++
		way.Tag = block
		c.directory.Visit(way)
		return true
	}

	c.misses++
	victim := c.directory.FindVictim(block)
	if victim == nil {
		return false
	}
	victim.Tag = block
	victim.IsValid = true
	c.directory.Visit(victim)
	return false
}

// Invalidate clears the valid bit of the way holding addr's block, if
// any. Used by the controller to abandon an in-flight I-cache prefetch
// when a taken branch redirects fetch elsewhere.
func (c *Cache) Invalidate(addr uint64) {
	if c.directory == nil {
		return
	}
	block := c.blockAddr(addr)
	way := c.directory.Lookup(0, block)
	if way != nil && way.IsValid {
		way.IsValid = false
	}
}

// Reset clears all cache state (tags, validity, statistics).
func (c *Cache) Reset() {
	if c.directory != nil {
		c.directory.Reset()
	}
	c.hits = 0
	c.misses = 0
}
