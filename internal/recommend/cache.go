package recommend

import (
	"sync"

	"github.com/hollowaylabs/vitrine/internal/types"
)

// ResultCache stores recommendation results keyed by prompt hash.
// Entries live for the lifetime of the process; there is no eviction.
// Safe for concurrent use.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]types.RecommendationResult
}

// NewResultCache creates an empty result cache.
func NewResultCache() *ResultCache {
	return &ResultCache{
		entries: make(map[string]types.RecommendationResult),
	}
}

// Get returns the cached result for key, if present.
func (c *ResultCache) Get(key string) (types.RecommendationResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result, ok := c.entries[key]
	return result, ok
}

// Put stores a result under key, replacing any previous entry.
func (c *ResultCache) Put(key string, result types.RecommendationResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = result
}

// Len returns the number of cached results.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
