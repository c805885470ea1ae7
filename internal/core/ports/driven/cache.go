package driven

import "github.com/custodia-labs/clausecheck-cli/internal/core/domain"

// ResultCache memoizes per-obligation compliance results across runs
// against the same contract.
//
// Keys are opaque to implementations; the analysis service derives them
// from the obligation text and a contract content hash, so any change to
// either produces a distinct key.
type ResultCache interface {
	// Get returns the cached result for a key, or false on a miss.
	Get(key string) (domain.ComplianceResult, bool)

	// Put stores a result under a key. When the cache is full the
	// oldest-inserted entry is evicted first.
	Put(key string, result domain.ComplianceResult)

	// Clear removes all entries and resets hit/miss counters.
	Clear()

	// Stats reports size, capacity, and hit/miss counters.
	Stats() domain.CacheStats
}
