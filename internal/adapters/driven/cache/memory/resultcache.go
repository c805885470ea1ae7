// Package memory provides an in-memory result cache with insertion-order
// eviction.
package memory

import (
	"math"
	"sync"

	"github.com/custodia-labs/clausecheck-cli/internal/core/domain"
	"github.com/custodia-labs/clausecheck-cli/internal/core/ports/driven"
)

// DefaultMaxSize is the default entry capacity.
const DefaultMaxSize = 100

// Ensure ResultCache implements the interface.
var _ driven.ResultCache = (*ResultCache)(nil)

// ResultCache memoizes compliance results up to a fixed capacity.
// When full, the oldest-inserted entry is evicted first. This is plain
// insertion-order eviction, not LRU: a Get does not refresh an entry's
// position.
type ResultCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]domain.ComplianceResult
	order   []string
	hits    int
	misses  int
}

// New creates a result cache. maxSize <= 0 selects the default capacity.
func New(maxSize int) *ResultCache {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &ResultCache{
		maxSize: maxSize,
		entries: make(map[string]domain.ComplianceResult),
		order:   make([]string, 0, maxSize),
	}
}

// Get returns the cached result for a key, or false on a miss.
func (c *ResultCache) Get(key string) (domain.ComplianceResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return result, ok
}

// Put stores a result, evicting the oldest-inserted entry at capacity.
func (c *ResultCache) Put(key string, result domain.ComplianceResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = result
		return
	}

	if len(c.entries) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = result
	c.order = append(c.order, key)
}

// Clear removes all entries and resets counters.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]domain.ComplianceResult)
	c.order = c.order[:0]
	c.hits = 0
	c.misses = 0
}

// Stats reports size, capacity, and hit/miss counters.
func (c *ResultCache) Stats() domain.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.hits + c.misses
	rate := 0.0
	if total > 0 {
		rate = math.Round(float64(c.hits)/float64(total)*10000) / 100
	}

	return domain.CacheStats{
		Size:          len(c.entries),
		MaxSize:       c.maxSize,
		Hits:          c.hits,
		Misses:        c.misses,
		HitRate:       rate,
		TotalRequests: total,
	}
}
