package dedup

import (
	"sync"
	"time"

	"github.com/spendsignal/spendsignal/internal/common"
)

// DefaultNameCacheTTL is how long a processed expense name stays
// suppressed.
const DefaultNameCacheTTL = 24 * time.Hour

// NameCache remembers normalized expense names that were already turned
// into candidates. A collision within the TTL is a no-op: the original
// timestamp is kept, so an entry expires relative to when it was first
// processed.
type NameCache struct {
	clock   common.Clock
	entries map[string]time.Time
	ttl     time.Duration
	mu      sync.Mutex
}

// NewNameCache creates a cache with the given TTL; ttl <= 0 uses the
// default.
func NewNameCache(clock common.Clock, ttl time.Duration) *NameCache {
	if ttl <= 0 {
		ttl = DefaultNameCacheTTL
	}
	return &NameCache{
		clock:   clock,
		ttl:     ttl,
		entries: make(map[string]time.Time),
	}
}

// MarkIfNew marks name as processed and reports whether it was new. Expired
// entries are evicted on each call.
func (c *NameCache) MarkIfNew(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	for k, at := range c.entries {
		if now.Sub(at) > c.ttl {
			delete(c.entries, k)
		}
	}

	if _, ok := c.entries[name]; ok {
		return false
	}
	c.entries[name] = now
	return true
}
