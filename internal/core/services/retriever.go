package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/clausecheck-cli/internal/core/domain"
	"github.com/custodia-labs/clausecheck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/clausecheck-cli/internal/logger"
)

// DefaultTopK is the default number of chunks retrieved per obligation.
const DefaultTopK = 6

// retrievedChunk pairs a chunk with its similarity to the obligation.
type retrievedChunk struct {
	chunk      domain.Chunk
	similarity float64
}

// Retriever looks up the chunks most similar to an obligation.
// There is no relevance floor: weakly similar chunks are still passed to
// the judge, whose reasoning decides. Only an empty index yields empty
// retrieval.
type Retriever struct {
	embeddingService driven.EmbeddingService
	topK             int
}

// NewRetriever creates a retriever. topK <= 0 selects the default.
func NewRetriever(embeddingService driven.EmbeddingService, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{
		embeddingService: embeddingService,
		topK:             topK,
	}
}

// Retrieve returns up to topK chunks ranked by cosine similarity to the
// obligation, hydrated from byID. An empty index returns an empty slice,
// not an error.
func (r *Retriever) Retrieve(
	ctx context.Context,
	index driven.VectorIndex,
	byID map[string]domain.Chunk,
	obligation string,
) ([]retrievedChunk, error) {
	if r.embeddingService == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if index == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}

	if index.Len() == 0 {
		logger.Debug("Retrieve: empty index, no candidates")
		return []retrievedChunk{}, nil
	}

	embedding, err := r.embeddingService.Embed(ctx, obligation)
	if err != nil {
		return nil, fmt.Errorf("embed obligation: %w", err)
	}

	hits, err := index.Search(ctx, embedding, r.topK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	logger.Debug("Retrieve: %d hits for %q", len(hits), truncate(obligation, 60))

	out := make([]retrievedChunk, 0, len(hits))
	for _, hit := range hits {
		chunk, ok := byID[hit.ChunkID]
		if !ok {
			// Index and chunk map are built together; a missing entry
			// means the caller passed mismatched session state.
			logger.Warn("Retrieve: chunk %s not in session map, skipping", hit.ChunkID)
			continue
		}
		out = append(out, retrievedChunk{chunk: chunk, similarity: hit.Similarity})
	}

	return out, nil
}
