package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryPageCache keeps page bodies in memory for the duration of a run
type MemoryPageCache struct {
	store *gocache.Cache
}

// NewMemoryPageCache creates a page cache with the given default TTL
func NewMemoryPageCache(defaultTTL time.Duration) *MemoryPageCache {
	return &MemoryPageCache{
		store: gocache.New(defaultTTL, defaultTTL),
	}
}

// Get returns the cached markup for a URL
func (c *MemoryPageCache) Get(url string) (string, bool) {
	if val, found := c.store.Get(Key(url)); found {
		return val.(string), true
	}
	return "", false
}

// Set stores the markup for a URL with the given TTL
func (c *MemoryPageCache) Set(url string, htmlBody string, ttl time.Duration) {
	c.store.Set(Key(url), htmlBody, ttl)
}

// Clear removes every cached page
func (c *MemoryPageCache) Clear() {
	c.store.Flush()
}
