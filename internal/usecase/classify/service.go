package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gtmhub/searchd/internal/domain"
	"github.com/gtmhub/searchd/internal/logger"
	"github.com/gtmhub/searchd/internal/metrics"
)

const systemPrompt = `You are a query analyst for a GTM content portal covering proof points,
sales enablement material and general marketing content. Classify the user's
search query. Respond with strict JSON only, no prose, no code fences, using
exactly this shape:
{"intent": "<short snake_case label>", "entities": {"<kind>": "<value>"},
"keywords": ["<term>"], "isQuestion": <bool>, "suggestedHub": "all|enablement|coe"}`

// Service classifies search queries into a QueryAnalysis, with a rule-based
// fallback whenever the model call fails or returns unparseable output.
type Service struct {
	gen       domain.Generator
	maxTokens int
}

// New creates a classifier. gen may be nil, in which case every query takes
// the heuristic path.
func New(gen domain.Generator, maxTokens int) *Service {
	return &Service{gen: gen, maxTokens: maxTokens}
}

// Analyze never fails: both the call-error and the parse-error paths degrade
// to the same heuristic analysis.
func (s *Service) Analyze(ctx context.Context, query string) domain.QueryAnalysis {
	if s.gen == nil {
		return Fallback(query)
	}

	out, err := s.gen.Generate(ctx, systemPrompt, "Query: "+query, s.maxTokens)
	if err != nil {
		logger.FromContext(ctx).Warn("Intent classification failed, using heuristics", zap.Error(err))
		metrics.DegradedPathTotal.WithLabelValues("classifier").Inc()
		return Fallback(query)
	}

	analysis, err := parseAnalysis(out)
	if err != nil {
		logger.FromContext(ctx).Warn("Intent classification unparseable, using heuristics",
			zap.Error(err), zap.String("output", truncate(out, 200)))
		metrics.DegradedPathTotal.WithLabelValues("classifier").Inc()
		return Fallback(query)
	}

	return normalize(analysis, query)
}

// parseAnalysis extracts the JSON object from the model output. Models
// occasionally wrap JSON in code fences or prose despite instructions, so the
// parser takes the outermost brace pair.
func parseAnalysis(out string) (domain.QueryAnalysis, error) {
	start := strings.Index(out, "{")
	end := strings.LastIndex(out, "}")
	if start < 0 || end <= start {
		return domain.QueryAnalysis{}, fmt.Errorf("no JSON object in classifier output")
	}

	var analysis domain.QueryAnalysis
	if err := json.Unmarshal([]byte(out[start:end+1]), &analysis); err != nil {
		return domain.QueryAnalysis{}, fmt.Errorf("parse classifier output: %w", err)
	}
	return analysis, nil
}

// normalize fills gaps in a parsed analysis so downstream code never sees
// nil maps or unknown hub values.
func normalize(a domain.QueryAnalysis, query string) domain.QueryAnalysis {
	if a.Intent == "" {
		a.Intent = domain.IntentGeneralSearch
	}
	if a.Entities == nil {
		a.Entities = map[string]string{}
	}
	if len(a.Keywords) == 0 {
		a.Keywords = strings.Fields(query)
	}
	switch a.SuggestedHub {
	case domain.SuggestHubEnablement, domain.SuggestHubCoE:
	default:
		a.SuggestedHub = domain.SuggestHubAll
	}
	return a
}

// interrogatives are the leading words that flag a query as a question.
var interrogatives = map[string]struct{}{
	"how": {}, "what": {}, "why": {}, "when": {}, "where": {},
	"who": {}, "can": {}, "does": {}, "is": {},
}

// Fallback synthesizes a default analysis from simple heuristics. It is the
// whole classification path when no generator is configured.
func Fallback(query string) domain.QueryAnalysis {
	return domain.QueryAnalysis{
		Intent:       domain.IntentGeneralSearch,
		Entities:     map[string]string{},
		Keywords:     strings.Fields(query),
		IsQuestion:   isQuestion(query),
		SuggestedHub: domain.SuggestHubAll,
	}
}

func isQuestion(query string) bool {
	if strings.Contains(query, "?") {
		return true
	}
	fields := strings.Fields(strings.ToLower(query))
	if len(fields) == 0 {
		return false
	}
	_, ok := interrogatives[fields[0]]
	return ok
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
