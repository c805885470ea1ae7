package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/clausecheck-cli/internal/core/domain"
	"github.com/custodia-labs/clausecheck-cli/internal/logger"
)

// DefaultWorkers is the default batch worker pool width.
const DefaultWorkers = 5

// judgeFunc evaluates one obligation. Implementations must not panic;
// the orchestrator still recovers as a last line of defence.
type judgeFunc func(ctx context.Context, obligation string) (domain.ComplianceResult, error)

// runBatch fans fn out across obligations and returns results in input
// order. With batch enabled and more than one obligation, a bounded
// worker pool runs them concurrently; otherwise execution is sequential.
//
// Each worker writes only to its own slot of a pre-sized result array,
// so completion order never affects output order. Any failure, including
// a panic inside fn, becomes a terminal "No" result for that obligation
// alone.
func runBatch(
	ctx context.Context,
	obligations []string,
	workers int,
	batch bool,
	fn judgeFunc,
) []domain.ComplianceResult {
	results := make([]domain.ComplianceResult, len(obligations))

	if workers <= 0 {
		workers = DefaultWorkers
	}

	if !batch || len(obligations) <= 1 {
		logger.Debug("Batch: sequential run over %d obligations", len(obligations))
		for i, ob := range obligations {
			results[i] = runOne(ctx, ob, fn)
		}
		return results
	}

	logger.Debug("Batch: parallel run over %d obligations (%d workers)", len(obligations), workers)

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, ob := range obligations {
		wg.Add(1)
		go func(slot int, obligation string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[slot] = runOne(ctx, obligation, fn)
		}(i, ob)
	}

	wg.Wait()
	return results
}

// runOne invokes fn for a single obligation, converting errors and
// panics into the uniform terminal "No" shape.
func runOne(ctx context.Context, obligation string, fn judgeFunc) (result domain.ComplianceResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Batch: panic judging %q: %v", truncate(obligation, 60), r)
			result = errorResult(obligation, fmt.Errorf("panic: %v", r))
		}
	}()

	res, err := fn(ctx, obligation)
	if err != nil {
		logger.Warn("Batch: judging %q failed: %v", truncate(obligation, 60), err)
		return errorResult(obligation, err)
	}
	return res
}

// errorResult is the synthetic terminal result for a failed obligation.
// It has the same shape as a substantive "No" so downstream consumers
// see a uniform schema; the reason names the failure.
func errorResult(obligation string, err error) domain.ComplianceResult {
	return domain.ComplianceResult{
		Obligation:        obligation,
		IsPresent:         domain.VerdictNo.String(),
		Reason:            reasonAnalysisPrefix + err.Error(),
		SimilarityScore:   0,
		Confidence:        0,
		KeywordHits:       []string{},
		SupportingClauses: []string{},
		Suggestion:        strPtr(suggestionBatchError),
	}
}
