package driving

import (
	"context"

	"github.com/custodia-labs/clausecheck-cli/internal/core/domain"
)

// AnalysisService runs contract obligation compliance analysis.
type AnalysisService interface {
	// Analyze checks every obligation against the contract records and
	// returns one result per obligation, in input order.
	Analyze(ctx context.Context, records []domain.TextRecord, obligations []string) (*domain.AnalysisReport, error)

	// CacheStats reports result cache counters.
	CacheStats() domain.CacheStats

	// ClearCache empties the result cache.
	ClearCache()
}
