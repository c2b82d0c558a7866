package cache

import (
	"sync"
	"time"
)

// Bounded is a size-bounded cache that evicts the oldest entry once full.
// Entries never expire; the bound alone controls memory use. Safe for
// concurrent use.
type Bounded struct {
	mu      sync.Mutex
	max     int
	entries map[string][]byte
	order   []string // Insertion order, oldest first
}

// NewBounded creates a bounded cache holding at most max entries.
func NewBounded(max int) *Bounded {
	if max <= 0 {
		max = 500
	}
	return &Bounded{
		max:     max,
		entries: make(map[string][]byte, max),
	}
}

// Get retrieves a value from the cache
func (c *Bounded) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	val, found := c.entries[key]
	return val, found
}

// Set stores a value, evicting the oldest entry when the cache is full.
// The ttl argument is ignored; Bounded entries live until evicted.
func (c *Bounded) Set(key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.entries) >= c.max {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = value
	return nil
}

// Delete removes a value from the cache
func (c *Bounded) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		delete(c.entries, key)
		for i, k := range c.order {
			if k == key {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
	return nil
}

// Clear removes all values from the cache
func (c *Bounded) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]byte, c.max)
	c.order = nil
	return nil
}

// Len returns the current number of entries
func (c *Bounded) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
