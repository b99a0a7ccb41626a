package answer

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/gtmhub/searchd/internal/domain"
)

const systemPrompt = `You are the GTM Hub assistant for a customer-service SaaS company. You help
sellers and marketers find proof points, enablement material and content.
Answer only from the provided context blocks; if the context does not cover
the question, say so. Cite sources by their bracketed index number, e.g. [1].`

const questionInstruction = `Answer the question directly using the context below. Cite every claim
with its bracketed source index. Keep the answer under 250 words.`

const summaryInstruction = `Summarize the available resources relevant to this search using the
context below. Cite each resource by its bracketed index. Keep the summary
under 200 words.`

// relevanceDecay is the per-rank step of the synthetic source relevance
// display value (not the underlying score).
const relevanceDecay = 0.1

// Confidence cutoffs over the top result's score. Asymmetric by tuning,
// like the retrieval thresholds.
const (
	confidenceHighCutoff   = 0.7
	confidenceMediumCutoff = 0.5
)

// Service shapes ranked results into an answer-with-citations object via one
// text-generation call.
type Service struct {
	gen         domain.Generator
	maxTokens   int
	contextSize int
}

// New creates an answer synthesizer. gen may be nil (synthesis disabled);
// Synthesize then reports a provider error the caller degrades on.
func New(gen domain.Generator, maxTokens, contextSize int) *Service {
	if contextSize <= 0 {
		contextSize = 8
	}
	return &Service{gen: gen, maxTokens: maxTokens, contextSize: contextSize}
}

// Synthesize produces the answer object for the top results, or (nil, nil)
// when there are no results to answer from. Any provider failure surfaces as
// an error; the caller must treat it as "no AI answer produced" and keep the
// rest of the response.
func (s *Service) Synthesize(
	ctx context.Context,
	query string,
	results []domain.ScoredResult,
	analysis domain.QueryAnalysis,
) (*domain.Answer, error) {
	if len(results) == 0 {
		return nil, nil
	}
	if s.gen == nil {
		return nil, fmt.Errorf("synthesize: %w", domain.ErrGenerationProviderError)
	}

	contextItems := results
	if len(contextItems) > s.contextSize {
		contextItems = contextItems[:s.contextSize]
	}

	instruction := summaryInstruction
	if analysis.IsQuestion {
		instruction = questionInstruction
	}

	user := fmt.Sprintf("%s\n\nSearch query: %s\n\nContext:\n%s",
		instruction, query, formatContext(contextItems))

	text, err := s.gen.Generate(ctx, systemPrompt, user, s.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}

	return &domain.Answer{
		Answer:     strings.TrimSpace(text),
		Sources:    buildSources(contextItems),
		Confidence: confidence(results[0].Score),
	}, nil
}

// formatContext renders each result as a numbered block with the fields the
// model may cite.
func formatContext(items []domain.ScoredResult) string {
	var b strings.Builder
	for i := range items {
		r := &items[i]
		fmt.Fprintf(&b, "[%d] %s (hub: %s", i+1, r.Title, r.Hub)
		if t := r.Type(); t != "" {
			fmt.Fprintf(&b, ", type: %s", t)
		}
		b.WriteString(")\n")
		if r.Summary != "" {
			fmt.Fprintf(&b, "%s\n", r.Summary)
		}
		if r.Customer != "" {
			fmt.Fprintf(&b, "Customer: %s\n", r.Customer)
		}
		if r.Competitor != "" {
			fmt.Fprintf(&b, "Competitor: %s\n", r.Competitor)
		}
		if r.Industry != "" {
			fmt.Fprintf(&b, "Industry: %s\n", r.Industry)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// buildSources lists one entry per context item in original rank order with
// the linear-decay relevance display value.
func buildSources(items []domain.ScoredResult) []domain.AnswerSource {
	sources := make([]domain.AnswerSource, len(items))
	for i := range items {
		r := &items[i]
		sources[i] = domain.AnswerSource{
			Index:     i + 1,
			ID:        r.ID,
			Title:     r.Title,
			Hub:       r.Hub,
			Type:      r.Type(),
			Relevance: math.Round((1-float64(i)*relevanceDecay)*100) / 100,
		}
	}
	return sources
}

// confidence buckets purely on the top result's score.
func confidence(topScore float64) domain.Confidence {
	switch {
	case topScore > confidenceHighCutoff:
		return domain.ConfidenceHigh
	case topScore > confidenceMediumCutoff:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}
