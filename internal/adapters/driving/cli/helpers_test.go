package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/clausecheck-cli/internal/core/domain"
)

// fakeAnalysisService returns canned results for CLI tests.
type fakeAnalysisService struct {
	report  *domain.AnalysisReport
	err     error
	stats   domain.CacheStats
	cleared bool
}

func (f *fakeAnalysisService) Analyze(_ context.Context, records []domain.TextRecord, obligations []string) (*domain.AnalysisReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(records) == 0 {
		return nil, domain.ErrEmptyContract
	}
	if len(obligations) == 0 {
		return nil, domain.ErrNoObligations
	}
	return f.report, nil
}

func (f *fakeAnalysisService) CacheStats() domain.CacheStats { return f.stats }
func (f *fakeAnalysisService) ClearCache()                   { f.cleared = true }

// setupTestServices installs a fake analysis service and returns a
// cleanup function restoring the previous state.
func setupTestServices(fake *fakeAnalysisService) func() {
	prev := analysisService
	analysisService = fake
	return func() { analysisService = prev }
}

func sampleReport() *domain.AnalysisReport {
	suggestion := "Add an explicit refund clause."
	page, line := 1, 1
	return &domain.AnalysisReport{
		SessionID:  "test-session",
		ChunkCount: 2,
		Results: []domain.ComplianceResult{
			{
				Obligation:        "Vendor must refund fees.",
				IsPresent:         "Yes",
				Reason:            "Clause 4 covers refunds.",
				SimilarityScore:   0.812,
				Confidence:        81.2,
				KeywordHits:       []string{"refund"},
				Page:              &page,
				Line:              &line,
				SupportingClauses: []string{"[Page 1 Line 1] Vendor shall refund all fees."},
			},
			{
				Obligation:        "Vendor must carry insurance.",
				IsPresent:         "No",
				Reason:            "No insurance clause found.",
				SimilarityScore:   0.203,
				Confidence:        20.3,
				KeywordHits:       []string{},
				SupportingClauses: []string{},
				Suggestion:        &suggestion,
			},
		},
	}
}

var errAnalysisBoom = errors.New("boom")
