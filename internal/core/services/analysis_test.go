package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cachemem "github.com/custodia-labs/clausecheck-cli/internal/adapters/driven/cache/memory"
	indexmem "github.com/custodia-labs/clausecheck-cli/internal/adapters/driven/vectorindex/memory"
	"github.com/custodia-labs/clausecheck-cli/internal/core/domain"
	"github.com/custodia-labs/clausecheck-cli/internal/core/ports/driven"
)

// contentEmbedding gives texts about refunds and texts about support
// distinct directions, so retrieval has something to rank.
func contentEmbedding(text string) []float32 {
	switch {
	case containsAny(text, "refund", "fees", "reimburse"):
		return []float32{1, 0, 0}
	case containsAny(text, "support", "maintenance"):
		return []float32{0, 1, 0}
	default:
		return []float32{0, 0, 1}
	}
}

func containsAny(text string, terms ...string) bool {
	lower := strings.ToLower(text)
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func newTestAnalysisService(llm driven.LLMService, cache driven.ResultCache) *AnalysisService {
	embedder := &mockEmbeddingService{embedFunc: contentEmbedding}
	extractor := NewKeywordExtractor(nil)

	return NewAnalysisService(
		NewNormalizer(nil, nil, nil),
		NewSegmenter(WithChunkSize(200), WithOverlap(20)),
		extractor,
		NewIndexBuilder(embedder),
		NewRetriever(embedder, 2),
		NewJudge(llm, extractor),
		func() driven.VectorIndex { return indexmem.New() },
		cache,
		domain.AnalysisSettings{Workers: 3, Batch: true},
	)
}

func contractRecords() []domain.TextRecord {
	return []domain.TextRecord{
		{Page: 1, Line: 1, Text: "Vendor shall refund all fees paid upon early termination."},
		{Page: 1, Line: 2, Text: "Vendor shall provide support during business hours."},
		{Page: 2, Line: 1, Text: "This agreement is governed by the laws of Delaware."},
	}
}

func TestAnalyzeProducesOrderedResults(t *testing.T) {
	llm := &mockLLMService{chatReply: `{"is_present": "Yes", "reason": "ok", "suggestion": null}`}
	svc := newTestAnalysisService(llm, nil)

	obligations := []string{
		"Vendor must refund fees on termination.",
		"Vendor must provide support.",
	}

	report, err := svc.Analyze(context.Background(), contractRecords(), obligations)
	require.NoError(t, err)
	require.Len(t, report.Results, 2)

	for i, ob := range obligations {
		assert.Equal(t, ob, report.Results[i].Obligation)
	}
	assert.NotEmpty(t, report.SessionID)
	assert.Equal(t, 3, report.ChunkCount)
	assert.Equal(t, 2, report.Compliant())
}

func TestAnalyzeEmptyInputs(t *testing.T) {
	llm := &mockLLMService{}
	svc := newTestAnalysisService(llm, nil)

	_, err := svc.Analyze(context.Background(), nil, []string{"ob"})
	assert.ErrorIs(t, err, domain.ErrEmptyContract)

	_, err = svc.Analyze(context.Background(), contractRecords(), nil)
	assert.ErrorIs(t, err, domain.ErrNoObligations)
}

func TestAnalyzeUsesCacheOnRepeat(t *testing.T) {
	llm := &mockLLMService{chatReply: `{"is_present": "Yes", "reason": "ok", "suggestion": null}`}
	cache := cachemem.New(10)
	svc := newTestAnalysisService(llm, cache)

	obligations := []string{"Vendor must refund fees on termination."}

	_, err := svc.Analyze(context.Background(), contractRecords(), obligations)
	require.NoError(t, err)
	firstCalls := llm.calls()

	report, err := svc.Analyze(context.Background(), contractRecords(), obligations)
	require.NoError(t, err)

	assert.Equal(t, firstCalls, llm.calls(), "second run should be served from cache")
	assert.Equal(t, "Yes", report.Results[0].IsPresent)
	assert.Equal(t, 1, cache.Stats().Hits)
}

func TestAnalyzeCacheKeyedByContractContent(t *testing.T) {
	llm := &mockLLMService{chatReply: `{"is_present": "Yes", "reason": "ok", "suggestion": null}`}
	cache := cachemem.New(10)
	svc := newTestAnalysisService(llm, cache)

	obligations := []string{"Vendor must refund fees on termination."}

	_, err := svc.Analyze(context.Background(), contractRecords(), obligations)
	require.NoError(t, err)
	firstCalls := llm.calls()

	changed := contractRecords()
	changed[0].Text = "Vendor shall reimburse half the fees paid."
	_, err = svc.Analyze(context.Background(), changed, obligations)
	require.NoError(t, err)

	assert.Greater(t, llm.calls(), firstCalls, "changed contract must bypass the cache")
}

func TestAnalyzeWorksWithoutCache(t *testing.T) {
	llm := &mockLLMService{chatReply: `{"is_present": "No", "reason": "missing", "suggestion": "add it"}`}
	svc := newTestAnalysisService(llm, nil)

	report, err := svc.Analyze(context.Background(), contractRecords(),
		[]string{"Vendor must carry insurance."})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, "No", report.Results[0].IsPresent)
	assert.Zero(t, svc.CacheStats().TotalRequests)
	svc.ClearCache() // must not panic without a cache
}

func TestAnalyzeIsolatesObligationFailures(t *testing.T) {
	calls := 0
	llm := &mockLLMService{
		chatFunc: func(_ []driven.ChatMessage) (string, error) {
			calls++
			if calls == 1 {
				return "", fmt.Errorf("rate limited")
			}
			return `{"is_present": "Yes", "reason": "ok", "suggestion": null}`, nil
		},
	}

	svc := newTestAnalysisService(llm, nil)
	// Sequential run keeps the call order deterministic.
	svc.batch = false

	report, err := svc.Analyze(context.Background(), contractRecords(), []string{
		"Vendor must refund fees on termination.",
		"Vendor must provide support.",
	})
	require.NoError(t, err)
	require.Len(t, report.Results, 2)

	assert.Equal(t, "No", report.Results[0].IsPresent)
	assert.Contains(t, report.Results[0].Reason, "Error during analysis:")
	assert.Equal(t, "Yes", report.Results[1].IsPresent)
}

func TestAnalyzeReportMetrics(t *testing.T) {
	llm := &mockLLMService{chatReply: `{"is_present": "Yes", "reason": "ok", "suggestion": null}`}
	svc := newTestAnalysisService(llm, nil)

	report, err := svc.Analyze(context.Background(), contractRecords(),
		[]string{"Vendor must refund fees on termination."})
	require.NoError(t, err)

	assert.Greater(t, report.AverageSimilarity(), 0.0)
	assert.Greater(t, report.AverageConfidence(), 0.0)
}
