package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIngestInProgress indicates an ingestion run is already active.
	// Runs are serialised; a second trigger is rejected rather than queued.
	ErrIngestInProgress = errors.New("ingestion in progress")

	// ErrFetch indicates the content source was unreachable or returned a
	// non-success status. Fatal to the current ingestion run.
	ErrFetch = errors.New("fetch failed")

	// ErrStorage indicates a vector index upsert failed. Fatal; partial
	// prior batches remain stored.
	ErrStorage = errors.New("storage failed")

	// ErrConfiguration indicates a required credential or setting is
	// missing. Raised before any network call.
	ErrConfiguration = errors.New("configuration error")

	// ErrLLMUnavailable indicates the completion service is not configured.
	ErrLLMUnavailable = errors.New("completion service unavailable")

	// ErrVectorStoreUnavailable indicates the vector index is not configured.
	ErrVectorStoreUnavailable = errors.New("vector store unavailable")

	// ErrRateLimited indicates the source API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
