package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory holds entries in process memory until their TTL runs out. Expired
// entries are swept on the cleanup interval given at construction. Backed by
// go-cache, so it is safe for concurrent use.
type Memory struct {
	cache *gocache.Cache
}

// NewMemory creates a memory cache with the given default TTL and sweep
// interval.
func NewMemory(defaultTTL time.Duration, cleanupInterval time.Duration) *Memory {
	return &Memory{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns the value for key, or false when absent or expired.
func (c *Memory) Get(key string) ([]byte, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores value under key for the given TTL.
func (c *Memory) Set(key string, value []byte, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

// Delete removes key from the cache.
func (c *Memory) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear drops every entry.
func (c *Memory) Clear() error {
	c.cache.Flush()
	return nil
}
