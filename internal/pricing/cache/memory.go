package cache

import (
	"context"
	"sync"
	"time"

	"github.com/stratocost/stratocost/internal/pricing"
)

type memoryEntry struct {
	catalog   *pricing.Catalog
	expiresAt time.Time
}

// MemoryCache implements Cache with an in-process map.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

// NewMemoryCache creates a new in-memory snapshot cache.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryCache) Get(_ context.Context, provider string) (*pricing.Catalog, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[provider]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false, nil
	}
	return e.catalog, true, nil
}

func (c *MemoryCache) Set(_ context.Context, catalog *pricing.Catalog) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[catalog.Provider()] = memoryEntry{
		catalog:   catalog,
		expiresAt: time.Now().Add(c.ttl),
	}
	return nil
}

func (c *MemoryCache) Invalidate(_ context.Context, provider string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, provider)
	return nil
}

func (c *MemoryCache) Close() error {
	return nil
}
