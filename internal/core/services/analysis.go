package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/clausecheck-cli/internal/core/domain"
	"github.com/custodia-labs/clausecheck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/clausecheck-cli/internal/core/ports/driving"
	"github.com/custodia-labs/clausecheck-cli/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// IndexFactory constructs a fresh vector index for one session.
// A new index is created per run; there is no incremental reuse.
type IndexFactory func() driven.VectorIndex

// AnalysisService runs the obligation-compliance pipeline:
// normalize, segment, index, then retrieve and judge per obligation.
type AnalysisService struct {
	normalizer *Normalizer
	segmenter  *Segmenter
	extractor  *KeywordExtractor
	indexer    *IndexBuilder
	retriever  *Retriever
	judge      *Judge

	newIndex IndexFactory
	cache    driven.ResultCache

	workers int
	batch   bool
}

// NewAnalysisService creates the analysis pipeline.
// The cache parameter is optional (can be nil) - the pipeline works
// identically without caching, just slower on repeats.
func NewAnalysisService(
	normalizer *Normalizer,
	segmenter *Segmenter,
	extractor *KeywordExtractor,
	indexer *IndexBuilder,
	retriever *Retriever,
	judge *Judge,
	newIndex IndexFactory,
	cache driven.ResultCache,
	settings domain.AnalysisSettings,
) *AnalysisService {
	return &AnalysisService{
		normalizer: normalizer,
		segmenter:  segmenter,
		extractor:  extractor,
		indexer:    indexer,
		retriever:  retriever,
		judge:      judge,
		newIndex:   newIndex,
		cache:      cache,
		workers:    settings.Workers,
		batch:      settings.Batch,
	}
}

// SetPromptStore propagates a prompt store to the LLM-facing stages.
func (s *AnalysisService) SetPromptStore(store driven.PromptStore) {
	if s.extractor != nil {
		s.extractor.SetPromptStore(store)
	}
	if s.judge != nil {
		s.judge.SetPromptStore(store)
	}
}

// Analyze checks every obligation against the contract records.
// Results come back in obligation input order, one per obligation, with
// per-obligation failures isolated into terminal "No" entries.
func (s *AnalysisService) Analyze(
	ctx context.Context, records []domain.TextRecord, obligations []string,
) (*domain.AnalysisReport, error) {
	if len(records) == 0 {
		return nil, domain.ErrEmptyContract
	}
	if len(obligations) == 0 {
		return nil, domain.ErrNoObligations
	}

	sessionID := uuid.New().String()
	logger.Section("Contract Analysis")
	logger.Info("Session %s: %d records, %d obligations", sessionID, len(records), len(obligations))

	records = s.normalizer.NormalizeRecords(ctx, records)
	obligations = s.normalizer.NormalizeObligations(ctx, obligations)

	contractHash := hashContract(records)
	logger.Debug("Contract hash: %s", contractHash[:12])

	chunks := s.segmenter.Segment(records)
	if len(chunks) == 0 {
		return nil, domain.ErrEmptyContract
	}

	index := s.newIndex()
	defer index.Close()

	byID, err := s.indexer.Build(ctx, index, chunks)
	if err != nil {
		return nil, fmt.Errorf("build vector index: %w", err)
	}

	logger.Section("Keyword Extraction")
	keywords := s.extractor.Extract(ctx, obligations)

	logger.Section("Obligation Judging")
	results := runBatch(ctx, obligations, s.workers, s.batch, func(ctx context.Context, ob string) (domain.ComplianceResult, error) {
		return s.analyzeOne(ctx, index, byID, keywords, contractHash, ob)
	})

	report := &domain.AnalysisReport{
		SessionID:  sessionID,
		Results:    results,
		ChunkCount: len(chunks),
	}

	logger.Info("Analysis complete: %d/%d compliant", report.Compliant(), len(results))

	return report, nil
}

// CacheStats reports result cache counters.
func (s *AnalysisService) CacheStats() domain.CacheStats {
	if s.cache == nil {
		return domain.CacheStats{}
	}
	return s.cache.Stats()
}

// ClearCache empties the result cache.
func (s *AnalysisService) ClearCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// analyzeOne runs retrieval and judging for a single obligation,
// consulting the result cache first.
func (s *AnalysisService) analyzeOne(
	ctx context.Context,
	index driven.VectorIndex,
	byID map[string]domain.Chunk,
	keywords domain.KeywordSet,
	contractHash string,
	obligation string,
) (domain.ComplianceResult, error) {
	key := cacheKey(obligation, contractHash)

	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			logger.Debug("Cache hit: %q", truncate(obligation, 60))
			return cached, nil
		}
	}

	retrieved, err := s.retriever.Retrieve(ctx, index, byID, obligation)
	if err != nil {
		return domain.ComplianceResult{}, fmt.Errorf("retrieve: %w", err)
	}

	result := s.judge.Judge(ctx, obligation, retrieved, keywords.Keywords(obligation))

	if s.cache != nil {
		s.cache.Put(key, result)
	}

	return result, nil
}

// hashContract hashes the normalized contract text.
// Any textual change to the contract yields a new hash and so a new
// cache key space.
func hashContract(records []domain.TextRecord) string {
	texts := make([]string, len(records))
	for i, rec := range records {
		texts[i] = rec.Text
	}

	sum := sha256.Sum256([]byte(strings.Join(texts, "\n\n")))
	return hex.EncodeToString(sum[:])
}

// cacheKey derives the result cache key for one obligation against one
// contract.
func cacheKey(obligation, contractHash string) string {
	sum := sha256.Sum256([]byte(obligation + "|" + contractHash))
	return hex.EncodeToString(sum[:])
}
