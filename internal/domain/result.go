package domain

// MatchType records whether a result's relevance came primarily from vector
// similarity or from substring matching.
type MatchType string

const (
	// MatchSemantic means a query vector existed and the semantic component
	// alone exceeded the semantic match cutoff.
	MatchSemantic MatchType = "semantic"
	// MatchKeyword means the score derived from substring matching.
	MatchKeyword MatchType = "keyword"
)

// ScoredResult annotates a document with its per-query relevance.
// Created fresh per request, never persisted.
type ScoredResult struct {
	Document
	Score     float64   `json:"score"`
	MatchType MatchType `json:"_matchType"`
}
