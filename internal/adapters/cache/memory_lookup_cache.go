package cache

import (
	"context"
	"sync"

	"plz-coords-service/internal/domain"
)

// MemoryLookupCache is an in-process cache mapping postal codes to
// completed lookup results. Entries live for the process lifetime and
// are never evicted; the PLZ keyspace bounds it at ~100k entries.
// Safe for concurrent use.
type MemoryLookupCache struct {
	mu      sync.RWMutex
	entries map[domain.PostalCode]domain.LookupResult
}

func NewMemoryLookupCache() *MemoryLookupCache {
	return &MemoryLookupCache{
		entries: make(map[domain.PostalCode]domain.LookupResult),
	}
}

func (c *MemoryLookupCache) Get(
	ctx context.Context,
	code domain.PostalCode,
) (domain.LookupResult, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res, ok := c.entries[code]
	return res, ok, nil
}

func (c *MemoryLookupCache) Put(
	ctx context.Context,
	code domain.PostalCode,
	res domain.LookupResult,
) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[code] = res
	return nil
}

// Len reports the number of cached results.
func (c *MemoryLookupCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
