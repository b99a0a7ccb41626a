package domain

import "errors"

var (
	// ErrEmptyQuery signals an empty or whitespace-only search query.
	ErrEmptyQuery = errors.New("query required")
	// ErrContentSource signals a CMS fetch failure. This is the one
	// dependency whose failure fails the whole request: without documents
	// there is nothing to rank.
	ErrContentSource = errors.New("content source unavailable")
	// ErrGenerationProviderError signals a text-generation provider failure.
	// Callers on degradable paths catch it and fall back.
	ErrGenerationProviderError = errors.New("generation provider error")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
