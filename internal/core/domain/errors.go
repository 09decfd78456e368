package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors and are matched with
// errors.Is at the boundaries, so callers can render different guidance
// per failure kind.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyTranscript indicates a transcript with zero non-whitespace
	// characters. Summarization fails on this before any cache lookup or
	// credential check happens.
	ErrEmptyTranscript = errors.New("transcript is empty")

	// ErrNoCredential indicates no usable credential exists for the
	// requesting owner and the configured provider. The caller should tell
	// the user to add an API key; generation was never attempted.
	ErrNoCredential = errors.New("no credential configured for provider")

	// ErrGenerationFailed indicates the generation backend returned an
	// error or an empty response. No summary is fabricated and nothing is
	// cached.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Ingestion and retrieval are disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrIndexUnavailable indicates the collection store is not configured.
	ErrIndexUnavailable = errors.New("collection store unavailable")
)
