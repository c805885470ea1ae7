package ai

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/clausecheck-cli/internal/core/ports/driven"
)

// DefaultRequestsPerSecond throttles judge calls so a batch of
// obligations cannot burst past cloud provider limits.
const DefaultRequestsPerSecond = 2.0

// Ensure RateLimitedLLM implements the interface.
var _ driven.LLMService = (*RateLimitedLLM)(nil)

// RateLimitedLLM wraps an LLM service with proactive client-side
// throttling. Each Generate or Chat call waits on a token bucket
// before hitting the underlying service.
type RateLimitedLLM struct {
	inner  driven.LLMService
	bucket *rate.Limiter
}

// NewRateLimitedLLM wraps svc with a token bucket of the given rate.
// A rps of 0 or less uses DefaultRequestsPerSecond.
func NewRateLimitedLLM(svc driven.LLMService, rps float64) *RateLimitedLLM {
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	return &RateLimitedLLM{
		inner:  svc,
		bucket: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Generate produces text completion from a prompt, waiting for a token first.
func (r *RateLimitedLLM) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if err := r.bucket.Wait(ctx); err != nil {
		return "", err
	}
	return r.inner.Generate(ctx, prompt, opts)
}

// Chat conducts a conversation with role-tagged messages, waiting for a token first.
func (r *RateLimitedLLM) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	if err := r.bucket.Wait(ctx); err != nil {
		return "", err
	}
	return r.inner.Chat(ctx, messages, opts)
}

// ModelName returns the name of the underlying LLM model.
func (r *RateLimitedLLM) ModelName() string {
	return r.inner.ModelName()
}

// Ping validates the underlying service is reachable. Pings are not
// throttled; they are cheap and run once at startup.
func (r *RateLimitedLLM) Ping(ctx context.Context) error {
	return r.inner.Ping(ctx)
}

// Close releases resources held by the underlying service.
func (r *RateLimitedLLM) Close() error {
	return r.inner.Close()
}
