package domain

import "errors"

var (
	// ErrMissingCredential signals a required API credential absent at construction.
	ErrMissingCredential = errors.New("missing credential")
	// ErrInvalidQuery signals a malformed retrieval input.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrVectorSearchFailed signals a vector index query failure.
	ErrVectorSearchFailed = errors.New("vector search failed")
)
