package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/clausecheck-cli/internal/core/domain"
	"github.com/custodia-labs/clausecheck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/clausecheck-cli/internal/logger"
)

// embedBatchSize bounds the number of texts sent per embedding request.
const embedBatchSize = 64

// IndexBuilder embeds chunks and fills a per-session vector index.
// Indexes are always built from scratch; re-analysis discards the old
// index and rebuilds, never appends.
type IndexBuilder struct {
	embeddingService driven.EmbeddingService
}

// NewIndexBuilder creates an index builder.
func NewIndexBuilder(embeddingService driven.EmbeddingService) *IndexBuilder {
	return &IndexBuilder{embeddingService: embeddingService}
}

// Build embeds every chunk and inserts it into index.
// Returns the chunks with embeddings attached, keyed by chunk ID for
// retrieval hydration. Obligation embeddings later come from the same
// service, keeping both sides of the similarity in one vector space.
func (b *IndexBuilder) Build(
	ctx context.Context, index driven.VectorIndex, chunks []domain.Chunk,
) (map[string]domain.Chunk, error) {
	if b.embeddingService == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if index == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}

	logger.Section("Index Build")
	logger.Debug("Embedding %d chunks (model=%s, dims=%d)",
		len(chunks), b.embeddingService.ModelName(), b.embeddingService.Dimensions())

	byID := make(map[string]domain.Chunk, len(chunks))

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Content
		}

		embeddings, err := b.embeddingService.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed chunk batch %d-%d: %w", start, end, err)
		}
		if len(embeddings) != len(batch) {
			return nil, fmt.Errorf("embed chunk batch %d-%d: got %d embeddings for %d texts",
				start, end, len(embeddings), len(batch))
		}

		for i := range batch {
			chunk := batch[i]
			chunk.Embedding = embeddings[i]

			if err := index.Add(ctx, chunk.ID, chunk.Embedding); err != nil {
				return nil, fmt.Errorf("index chunk %s: %w", chunk.ID, err)
			}
			byID[chunk.ID] = chunk
		}
	}

	logger.Info("Index built: %d vectors", index.Len())

	return byID, nil
}
