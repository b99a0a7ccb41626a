package domain

import "context"

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// EmbeddingResult carries the embedding vector and token usage.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Generator is the text-generation contract shared by the intent classifier
// and the answer synthesizer. Implementations run one chat completion with a
// fixed system prompt and a max_tokens ceiling.
type Generator interface {
	Generate(ctx context.Context, system, user string, maxTokens int) (string, error)
}

// HealthChecker verifies provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
