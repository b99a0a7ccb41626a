package domain

import "strings"

// ModeSearch is the default (and currently only) request mode. The field is
// part of the cache key, so future modes get distinct cached responses.
const ModeSearch = "search"

// Filters narrows a search request. Hub and Type apply as post-filters over
// the merged result list; the collection-specific fields narrow candidate
// fetches inside individual retrievers.
type Filters struct {
	Hub      string `json:"hub,omitempty"`
	Type     string `json:"type,omitempty"`
	Channel  string `json:"channel,omitempty"`
	Industry string `json:"industry,omitempty"`
	Section  string `json:"section,omitempty"`
	Audience string `json:"audience,omitempty"`
}

// SearchRequest is the POST /api/search body.
type SearchRequest struct {
	Query   string  `json:"query"`
	Mode    string  `json:"mode,omitempty"`
	Filters Filters `json:"filters,omitempty"`
	Limit   int     `json:"limit,omitempty"`
}

// Normalize applies defaults and trims nothing from the query itself;
// whitespace-only queries must still fail validation upstream.
func (r *SearchRequest) Normalize(defaultLimit, maxLimit int) {
	if r.Mode == "" {
		r.Mode = ModeSearch
	}
	if r.Limit <= 0 {
		r.Limit = defaultLimit
	}
	if maxLimit > 0 && r.Limit > maxLimit {
		r.Limit = maxLimit
	}
}

// IsEmptyQuery reports whether the query is empty or whitespace-only.
func (r *SearchRequest) IsEmptyQuery() bool {
	return strings.TrimSpace(r.Query) == ""
}

// Meta carries per-request response metadata.
type Meta struct {
	Query  string `json:"query"`
	Mode   string `json:"mode"`
	Cached bool   `json:"cached"`
	Took   int64  `json:"took"`
}

// SearchResponse is the unified /api/search payload.
type SearchResponse struct {
	Results       []ScoredResult `json:"results"`
	Total         int            `json:"total"`
	Facets        FacetSummary   `json:"facets"`
	QueryAnalysis QueryAnalysis  `json:"queryAnalysis"`
	AIResponse    *Answer        `json:"aiResponse,omitempty"`
	Meta          Meta           `json:"meta"`
}
