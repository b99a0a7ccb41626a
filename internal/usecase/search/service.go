package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gtmhub/searchd/internal/domain"
	"github.com/gtmhub/searchd/internal/logger"
	"github.com/gtmhub/searchd/internal/metrics"
	"github.com/gtmhub/searchd/internal/usecase/facet"
)

// Service orchestrates the search pipeline: response cache, concurrent
// classification + vectorization, per-hub retrieval fan-out, merge/filter,
// facet tabulation and optional answer synthesis.
type Service struct {
	retriever   Retriever
	classifier  Classifier
	vectorizer  Vectorizer
	synthesizer Synthesizer
	cache       ResponseCache

	defaultLimit int
	maxLimit     int
}

// New creates a search service without caching.
func New(
	retriever Retriever,
	classifier Classifier,
	vectorizer Vectorizer,
	synthesizer Synthesizer,
	defaultLimit, maxLimit int,
) *Service {
	return &Service{
		retriever:    retriever,
		classifier:   classifier,
		vectorizer:   vectorizer,
		synthesizer:  synthesizer,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// WithCache attaches a response cache. Without it every request runs the
// full pipeline.
func (s *Service) WithCache(cache ResponseCache) *Service {
	s.cache = cache
	return s
}

// Search executes one request end to end. Only an empty query and a CMS
// fetch failure produce errors; every other dependency degrades in place.
func (s *Service) Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResponse, error) {
	if req.IsEmptyQuery() {
		return nil, domain.ErrEmptyQuery
	}
	req.Normalize(s.defaultLimit, s.maxLimit)

	start := time.Now()

	if s.cache != nil {
		if cached := s.cache.Get(ctx, req.Query, req.Filters, req.Mode); cached != nil {
			// Copy so the cached payload itself is not mutated.
			out := *cached
			out.Meta.Cached = true
			out.Meta.Took = time.Since(start).Milliseconds()
			return &out, nil
		}
	}

	// Classification and vectorization have no dependency on each other.
	var (
		analysis domain.QueryAnalysis
		queryVec []float32
	)
	prep, prepCtx := errgroup.WithContext(ctx)
	prep.Go(func() error {
		analysis = s.classifier.Analyze(prepCtx, req.Query)
		return nil
	})
	prep.Go(func() error {
		queryVec = s.vectorizer.Vector(prepCtx, req.Query)
		return nil
	})
	_ = prep.Wait() // both branches degrade internally, never error

	union, err := s.retrieve(ctx, req, queryVec, selectHub(req.Filters.Hub, analysis.SuggestedHub))
	if err != nil {
		return nil, err
	}

	results := aggregate(union, req.Filters, req.Limit)

	resp := &domain.SearchResponse{
		Results:       results,
		Total:         len(results),
		Facets:        facet.Build(union),
		QueryAnalysis: analysis,
		Meta: domain.Meta{
			Query:  req.Query,
			Mode:   req.Mode,
			Cached: false,
		},
	}

	if len(results) > 0 && s.synthesizer != nil {
		answer, synthErr := s.synthesizer.Synthesize(ctx, req.Query, results, analysis)
		if synthErr != nil {
			logger.FromContext(ctx).Warn("Answer synthesis failed, returning results without it",
				zap.Error(synthErr))
			metrics.DegradedPathTotal.WithLabelValues("synthesis").Inc()
		} else {
			resp.AIResponse = answer
		}
	}

	resp.Meta.Took = time.Since(start).Milliseconds()

	if s.cache != nil {
		s.cache.Put(ctx, req.Query, req.Filters, req.Mode, resp)
	}

	return resp, nil
}

// retrieve fans out the selected retrievers concurrently and concatenates
// their output in fixed source order (coe, enablement, content), so equal
// scores keep a deterministic insertion order for the stable merge sort.
// All selected retrievers must settle before merging; a CMS failure in any
// of them fails the request.
func (s *Service) retrieve(
	ctx context.Context, req *domain.SearchRequest, queryVec []float32, hub string,
) ([]domain.ScoredResult, error) {
	runCoE := hub == domain.SuggestHubAll || hub == string(domain.HubCoE)
	runEnablement := hub == domain.SuggestHubAll || hub == string(domain.HubEnablement)
	runContent := hub == domain.SuggestHubAll || hub == string(domain.HubContent)
	if !runCoE && !runEnablement && !runContent {
		// Unknown hub filter: nothing matches, mirror an empty result set.
		return nil, nil
	}

	var coe, enablement, content []domain.ScoredResult

	g, gctx := errgroup.WithContext(ctx)
	if runCoE {
		g.Go(func() error {
			var err error
			coe, err = s.retriever.SearchCoE(gctx, req.Query, queryVec, req.Filters, req.Limit)
			return err
		})
	}
	if runEnablement {
		g.Go(func() error {
			var err error
			enablement, err = s.retriever.SearchEnablement(gctx, req.Query, req.Filters, req.Limit)
			return err
		})
	}
	if runContent {
		g.Go(func() error {
			var err error
			content, err = s.retriever.SearchContent(gctx, req.Query, req.Filters, req.Limit)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	union := make([]domain.ScoredResult, 0, len(coe)+len(enablement)+len(content))
	union = append(union, coe...)
	union = append(union, enablement...)
	union = append(union, content...)
	return union, nil
}
