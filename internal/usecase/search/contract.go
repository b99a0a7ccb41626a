package search

import (
	"context"

	"github.com/gtmhub/searchd/internal/domain"
)

// Retriever runs one per-source search; each returns a sorted, thresholded,
// limit-truncated list.
type Retriever interface {
	SearchCoE(ctx context.Context, query string, queryVec []float32,
		f domain.Filters, limit int) ([]domain.ScoredResult, error)
	SearchEnablement(ctx context.Context, query string,
		f domain.Filters, limit int) ([]domain.ScoredResult, error)
	SearchContent(ctx context.Context, query string,
		f domain.Filters, limit int) ([]domain.ScoredResult, error)
}

// Classifier analyzes the query; it never fails (heuristic fallback inside).
type Classifier interface {
	Analyze(ctx context.Context, query string) domain.QueryAnalysis
}

// Vectorizer returns the query embedding or nil; it never fails.
type Vectorizer interface {
	Vector(ctx context.Context, query string) []float32
}

// Synthesizer produces the optional AI answer. Failures are degradable.
type Synthesizer interface {
	Synthesize(ctx context.Context, query string, results []domain.ScoredResult,
		analysis domain.QueryAnalysis) (*domain.Answer, error)
}

// ResponseCache holds full responses keyed by (query, filters, mode); both
// operations are best-effort.
type ResponseCache interface {
	Get(ctx context.Context, query string, filters domain.Filters, mode string) *domain.SearchResponse
	Put(ctx context.Context, query string, filters domain.Filters, mode string, resp *domain.SearchResponse)
}
