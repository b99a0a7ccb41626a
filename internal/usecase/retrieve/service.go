package retrieve

import (
	"context"
	"fmt"

	"github.com/gtmhub/searchd/internal/domain"
)

// Repository is the consumer interface for per-hub candidate pools.
type Repository interface {
	CoECandidates(ctx context.Context, f domain.Filters) ([]domain.Document, error)
	EnablementCandidates(ctx context.Context, f domain.Filters) ([]domain.Document, error)
	ContentCandidates(ctx context.Context, f domain.Filters) ([]domain.Document, error)
}

// Thresholds holds the per-source minimum scores. The asymmetry (0.15 for
// proof points vs 0.10 elsewhere) is a deliberate per-source tuning choice
// owned by the ranking behavior's owners.
type Thresholds struct {
	CoE        float64
	Enablement float64
	Content    float64
}

// Service runs the three per-source retrievers. Each independently fetches
// its candidate pool, scores it and returns a sorted, thresholded,
// limit-truncated list.
type Service struct {
	repo       Repository
	thresholds Thresholds
}

// New creates a retrieval service.
func New(repo Repository, thresholds Thresholds) *Service {
	return &Service{repo: repo, thresholds: thresholds}
}

// SearchCoE scores proof points. This is the only source with precomputed
// embeddings; a non-nil query vector enables the semantic blend.
func (s *Service) SearchCoE(
	ctx context.Context, query string, queryVec []float32, f domain.Filters, limit int,
) ([]domain.ScoredResult, error) {
	docs, err := s.repo.CoECandidates(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("search coe: %w", err)
	}
	return scorePool(query, queryVec, docs, s.thresholds.CoE, limit), nil
}

// SearchEnablement scores the merged catalog + training pool. Keyword-only
// by construction: these collections store no embeddings.
func (s *Service) SearchEnablement(
	ctx context.Context, query string, f domain.Filters, limit int,
) ([]domain.ScoredResult, error) {
	docs, err := s.repo.EnablementCandidates(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("search enablement: %w", err)
	}
	return scorePool(query, nil, docs, s.thresholds.Enablement, limit), nil
}

// SearchContent scores the merged competitive + article + template pool,
// keyword-only for the same reason.
func (s *Service) SearchContent(
	ctx context.Context, query string, f domain.Filters, limit int,
) ([]domain.ScoredResult, error) {
	docs, err := s.repo.ContentCandidates(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("search content: %w", err)
	}
	return scorePool(query, nil, docs, s.thresholds.Content, limit), nil
}
