package retrieve

import (
	"math"
	"sort"
	"strings"

	"github.com/gtmhub/searchd/internal/domain"
)

// Keyword scoring weights. Title matches dominate, then summary, then the
// source-specific field (customer on proof points, competitor on battle
// cards), then tags. Multi-word queries earn a small bonus per matched term;
// terms of two characters or fewer are excluded from term bonuses.
const (
	titleWeight   = 0.3
	summaryWeight = 0.2
	fieldWeight   = 0.15
	tagWeight     = 0.1
	termBonus     = 0.05
	minTermLen    = 3
)

// Combined scoring favors the semantic component 70/30 when a vector pair
// exists. A result is tagged semantic only when the cosine term alone
// clears the cutoff.
const (
	semanticWeight      = 0.7
	keywordWeight       = 0.3
	semanticMatchCutoff = 0.5
)

// keywordScore computes the weighted substring score of one candidate.
func keywordScore(query string, doc *domain.Document) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}

	title := strings.ToLower(doc.Title)
	summary := strings.ToLower(doc.Summary)

	var score float64
	if strings.Contains(title, q) {
		score += titleWeight
	}
	if summary != "" && strings.Contains(summary, q) {
		score += summaryWeight
	}
	if field := domainField(doc); field != "" && strings.Contains(strings.ToLower(field), q) {
		score += fieldWeight
	}
	for _, tag := range doc.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			score += tagWeight
			break
		}
	}

	terms := strings.Fields(q)
	if len(terms) > 1 {
		for _, term := range terms {
			if len(term) < minTermLen {
				continue
			}
			if strings.Contains(title, term) || strings.Contains(summary, term) {
				score += termBonus
			}
		}
	}

	return score
}

// domainField picks the source-specific match field.
func domainField(doc *domain.Document) string {
	if doc.Customer != "" {
		return doc.Customer
	}
	return doc.Competitor
}

// cosine is dot(a,b) / (|a|·|b|). Mismatched lengths, zero vectors and any
// non-finite intermediate all yield 0 rather than NaN.
func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, na, nb float64
	for i := range a {
		av, bv := float64(a[i]), float64(b[i])
		dot += av * bv
		na += av * av
		nb += bv * bv
	}
	if na == 0 || nb == 0 {
		return 0
	}

	v := dot / (math.Sqrt(na) * math.Sqrt(nb))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// scoreDocument computes the combined score and match type for one candidate.
// At most one combination formula applies: semantic blend when both vectors
// exist, keyword-only otherwise.
func scoreDocument(query string, queryVec []float32, doc *domain.Document) (float64, domain.MatchType) {
	kw := keywordScore(query, doc)

	if len(queryVec) > 0 && len(doc.Embedding) > 0 {
		sem := cosine(queryVec, doc.Embedding)
		matchType := domain.MatchKeyword
		if sem > semanticMatchCutoff {
			matchType = domain.MatchSemantic
		}
		return semanticWeight*sem + keywordWeight*kw, matchType
	}

	return kw, domain.MatchKeyword
}

// scorePool runs the common scoring pass over one candidate pool: score each
// document, drop everything at or below the source threshold, sort
// descending and truncate.
func scorePool(
	query string, queryVec []float32, docs []domain.Document, minScore float64, limit int,
) []domain.ScoredResult {
	results := make([]domain.ScoredResult, 0, len(docs))
	for i := range docs {
		score, matchType := scoreDocument(query, queryVec, &docs[i])
		if score <= minScore {
			continue
		}
		results = append(results, domain.ScoredResult{
			Document:  docs[i],
			Score:     score,
			MatchType: matchType,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
