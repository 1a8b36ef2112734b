// Package config loads cache configuration from JSON files, the way the
// teacher repo's timing/latency package loads its latency table.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/rv5sim/timing/cache"
)

// DefaultICacheConfig returns a representative I-cache configuration: 4KB,
// 2-way, 16-byte lines, 10-cycle miss latency.
func DefaultICacheConfig() cache.Config {
	return cache.Config{
		CacheSize:   4096,
		BlockSize:   16,
		Ways:        2,
		MissLatency: 10,
	}
}

// DefaultDCacheConfig returns a representative D-cache configuration: 4KB,
// 4-way, 16-byte lines, 10-cycle miss latency.
func DefaultDCacheConfig() cache.Config {
	return cache.Config{
		CacheSize:   4096,
		BlockSize:   16,
		Ways:        4,
		MissLatency: 10,
	}
}

// Load reads a cache.Config from a JSON file at path.
func Load(path string) (cache.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cache.Config{}, fmt.Errorf("failed to read cache config file: %w", err)
	}

	var cfg cache.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cache.Config{}, fmt.Errorf("failed to parse cache config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return cache.Config{}, err
	}

	return cfg, nil
}

// Save writes cfg to path as JSON.
func Save(cfg cache.Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize cache config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache config file: %w", err)
	}
	return nil
}

// Validate checks that cfg describes a legal cache: size, block size and
// ways must all be positive, and size/block_size/ways must be powers of
// two (block size may be 1, i.e. 2^0).
func Validate(cfg cache.Config) error {
	if cfg.CacheSize <= 0 {
		return fmt.Errorf("cache_size must be > 0")
	}
	if cfg.BlockSize <= 0 {
		return fmt.Errorf("block_size must be > 0")
	}
	if cfg.Ways <= 0 {
		return fmt.Errorf("ways must be > 0")
	}
	if !isPowerOfTwo(cfg.CacheSize) {
		return fmt.Errorf("cache_size must be a power of two")
	}
	if !isPowerOfTwo(cfg.BlockSize) {
		return fmt.Errorf("block_size must be a power of two")
	}
	if !isPowerOfTwo(cfg.Ways) {
		return fmt.Errorf("ways must be a power of two")
	}
	if cfg.NumSets() <= 0 || !isPowerOfTwo(cfg.NumSets()) {
		return fmt.Errorf("cache_size/block_size/ways must yield a power-of-two set count")
	}
	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
