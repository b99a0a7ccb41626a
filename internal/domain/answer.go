package domain

// Confidence buckets an answer by the top result's relevance score.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// AnswerSource is one context item the synthesizer cited, in original rank
// order. Relevance is a display value decaying linearly per rank position,
// not the underlying relevance score.
type AnswerSource struct {
	Index     int     `json:"index"`
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Hub       Hub     `json:"hub"`
	Type      string  `json:"type,omitempty"`
	Relevance float64 `json:"relevance"`
}

// Answer is the synthesized answer-with-citations object.
type Answer struct {
	Answer     string         `json:"answer"`
	Sources    []AnswerSource `json:"sources"`
	Confidence Confidence     `json:"confidence"`
}
