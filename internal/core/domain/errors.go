package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates invalid pipeline configuration
	// (chunk overlap >= size, threshold out of range, bad dimension).
	// Fatal at startup or ingestion, never retried.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmbeddingUnavailable indicates the embedding provider is not
	// configured or unreachable. Retrieval is impossible without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the completion provider is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrProviderUnavailable indicates an external AI provider call failed
	// for a transient reason (network, timeout, rate limit). Eligible for
	// bounded retry at the orchestrator.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrGenerationFailed indicates the completion provider rejected the
	// request or returned an error. Carries the upstream reason in the wrap.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrStorageUnavailable indicates the document store or vector index
	// could not serve the request. Surfaced as service-unavailable.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrDimensionMismatch indicates a vector's length does not match the
	// index dimension. Always a configuration defect, never retried.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrRateLimited indicates the provider rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
