// Package memory provides an in-memory brute-force vector index.
//
// Indexes are small (one contract's chunks) and session-scoped, so exact
// cosine search over a slice beats maintaining an ANN structure.
package memory

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/clausecheck-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// ErrClosed is returned by operations on a closed index.
var ErrClosed = errors.New("vector index is closed")

// entry pairs a chunk ID with its stored vector.
type entry struct {
	chunkID   string
	embedding []float32
}

// Index is an exact cosine-similarity index over stored vectors.
// Safe for concurrent use; the batch phase only reads.
type Index struct {
	mu      sync.RWMutex
	entries []entry
	byID    map[string]int
	closed  bool
}

// New creates an empty index.
func New() *Index {
	return &Index{byID: make(map[string]int)}
}

// Add inserts or replaces the vector for a chunk ID.
func (x *Index) Add(_ context.Context, chunkID string, embedding []float32) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.closed {
		return ErrClosed
	}

	if pos, ok := x.byID[chunkID]; ok {
		x.entries[pos].embedding = embedding
		return nil
	}

	x.byID[chunkID] = len(x.entries)
	x.entries = append(x.entries, entry{chunkID: chunkID, embedding: embedding})
	return nil
}

// Delete removes a vector from the index.
func (x *Index) Delete(_ context.Context, chunkID string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.closed {
		return ErrClosed
	}

	pos, ok := x.byID[chunkID]
	if !ok {
		return nil
	}

	last := len(x.entries) - 1
	x.entries[pos] = x.entries[last]
	x.byID[x.entries[pos].chunkID] = pos
	x.entries = x.entries[:last]
	delete(x.byID, chunkID)
	return nil
}

// Search returns the k entries with highest cosine similarity to query,
// in descending similarity order.
func (x *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if x.closed {
		return nil, ErrClosed
	}

	if k <= 0 || len(x.entries) == 0 {
		return []driven.VectorHit{}, nil
	}

	hits := make([]driven.VectorHit, 0, len(x.entries))
	for _, e := range x.entries {
		hits = append(hits, driven.VectorHit{
			ChunkID:    e.chunkID,
			Similarity: cosine(query, e.embedding),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Len returns the number of indexed vectors.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries)
}

// Close releases the stored vectors. Subsequent operations return
// ErrClosed; closing twice is harmless.
func (x *Index) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.entries = nil
	x.byID = nil
	x.closed = true
	return nil
}

// cosine computes cosine similarity between two vectors.
// Mismatched lengths or zero vectors score 0.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
