package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyContract indicates the contract yielded no text records.
	ErrEmptyContract = errors.New("contract contains no text")

	// ErrNoObligations indicates the obligations input was empty.
	ErrNoObligations = errors.New("no obligations provided")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Compliance judging cannot run without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Semantic retrieval is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not built.
	// Retrieval requires a built index for the session.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrTranslationFailed indicates all translation attempts failed.
	// Callers fall back to the original text.
	ErrTranslationFailed = errors.New("translation failed")

	// ErrUnparseableResponse indicates the model reply could not be
	// decoded into the expected JSON shape.
	ErrUnparseableResponse = errors.New("unparseable model response")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
