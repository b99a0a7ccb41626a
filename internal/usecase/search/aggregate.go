package search

import (
	"sort"

	"github.com/gtmhub/searchd/internal/domain"
)

// aggregate merges the per-source lists into the final ranked page: stable
// sort descending by score (ties keep retriever insertion order), optional
// hub/type post-filters, truncation to the request limit.
func aggregate(union []domain.ScoredResult, f domain.Filters, limit int) []domain.ScoredResult {
	merged := make([]domain.ScoredResult, len(union))
	copy(merged, union)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})

	if f.Hub != "" || f.Type != "" {
		filtered := merged[:0]
		for _, r := range merged {
			if f.Hub != "" && string(r.Hub) != f.Hub {
				continue
			}
			if f.Type != "" && r.EntryType != f.Type && r.Category != f.Type {
				continue
			}
			filtered = append(filtered, r)
		}
		merged = filtered
	}

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// selectHub decides which retrievers run: an explicit request filter wins,
// else the classifier's suggestion, else all three.
func selectHub(filterHub, suggestedHub string) string {
	if filterHub != "" {
		return filterHub
	}
	switch suggestedHub {
	case domain.SuggestHubEnablement, domain.SuggestHubCoE:
		return suggestedHub
	}
	return domain.SuggestHubAll
}
