package content

import (
	"context"
	"fmt"

	"github.com/gtmhub/searchd/internal/domain"
)

// Source is the consumer interface over the CMS client.
type Source interface {
	ProofPoints(ctx context.Context, industry string) ([]domain.Document, error)
	CatalogEntries(ctx context.Context, audience, section string) ([]domain.Document, error)
	TrainingSessions(ctx context.Context, audience string) ([]domain.Document, error)
	CompetitiveResources(ctx context.Context) ([]domain.Document, error)
	Articles(ctx context.Context, category, channel string) ([]domain.Document, error)
	Templates(ctx context.Context) ([]domain.Document, error)
}

// Repo assembles per-hub candidate pools for the retrievers. The enablement
// and content pools concatenate several separately fetched sub-collections
// into one slice before any scoring runs; the CoE pool is a single
// collection and the only one carrying precomputed embeddings.
type Repo struct {
	src Source
}

// New creates a content repository over a CMS source.
func New(src Source) *Repo {
	return &Repo{src: src}
}

// CoECandidates fetches proof point documents, narrowed by industry when the
// request filters on it.
func (r *Repo) CoECandidates(ctx context.Context, f domain.Filters) ([]domain.Document, error) {
	docs, err := r.src.ProofPoints(ctx, f.Industry)
	if err != nil {
		return nil, fmt.Errorf("coe candidates: %w", err)
	}
	return docs, nil
}

// EnablementCandidates fetches catalog entries and training sessions and
// merges them into one pool.
func (r *Repo) EnablementCandidates(ctx context.Context, f domain.Filters) ([]domain.Document, error) {
	entries, err := r.src.CatalogEntries(ctx, f.Audience, f.Section)
	if err != nil {
		return nil, fmt.Errorf("enablement candidates: %w", err)
	}

	sessions, err := r.src.TrainingSessions(ctx, f.Audience)
	if err != nil {
		return nil, fmt.Errorf("enablement candidates: %w", err)
	}

	return append(entries, sessions...), nil
}

// ContentCandidates fetches competitive resources, articles and templates
// and merges them into one pool.
func (r *Repo) ContentCandidates(ctx context.Context, f domain.Filters) ([]domain.Document, error) {
	competitive, err := r.src.CompetitiveResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("content candidates: %w", err)
	}

	articles, err := r.src.Articles(ctx, f.Type, f.Channel)
	if err != nil {
		return nil, fmt.Errorf("content candidates: %w", err)
	}

	templates, err := r.src.Templates(ctx)
	if err != nil {
		return nil, fmt.Errorf("content candidates: %w", err)
	}

	pool := make([]domain.Document, 0, len(competitive)+len(articles)+len(templates))
	pool = append(pool, competitive...)
	pool = append(pool, articles...)
	pool = append(pool, templates...)
	return pool, nil
}
