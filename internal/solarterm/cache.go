package solarterm

import (
	"sync"

	"github.com/papapumpkin/almanac/internal/julian"
)

// Key identifies one solved term occurrence.
type Key struct {
	Method Method
	Year   int
	Term   int
}

// Cache memoizes solved term instants. Implementations must be safe for
// concurrent use. A miss or a failed write only costs a re-solve.
type Cache interface {
	Get(k Key) (julian.JD, bool)
	Put(k Key, jd julian.JD)
}

// MemoryCache is a process-local Cache.
type MemoryCache struct {
	mu sync.RWMutex
	m  map[Key]julian.JD
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{m: make(map[Key]julian.JD)}
}

// Get implements Cache.
func (c *MemoryCache) Get(k Key) (julian.JD, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	jd, ok := c.m[k]
	return jd, ok
}

// Put implements Cache.
func (c *MemoryCache) Put(k Key, jd julian.JD) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[k] = jd
}

// Len returns the number of cached instants.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
