package domain

// Suggested hub values produced by query classification. "all" means the
// classifier had no preference and every retriever runs.
const (
	SuggestHubAll        = "all"
	SuggestHubEnablement = "enablement"
	SuggestHubCoE        = "coe"
)

// IntentGeneralSearch is the fallback intent when classification degrades.
const IntentGeneralSearch = "general_search"

// QueryAnalysis is the ephemeral classification of one search query.
// Produced once per request, either by the LLM classifier or by its
// rule-based fallback; both paths yield the same shape.
type QueryAnalysis struct {
	Intent       string            `json:"intent"`
	Entities     map[string]string `json:"entities"`
	Keywords     []string          `json:"keywords"`
	IsQuestion   bool              `json:"isQuestion"`
	SuggestedHub string            `json:"suggestedHub"`
}
