package cms

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gtmhub/searchd/internal/domain"
)

// item is the loosely-typed CMS record shape shared by all collections.
// Field presence varies by source; mapping into domain.Document happens here
// at the boundary so nothing dynamic leaks into scoring.
type item struct {
	ID         string    `json:"_id"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	Customer   string    `json:"customer"`
	Industry   string    `json:"industry"`
	Competitor string    `json:"competitor"`
	Channel    string    `json:"channel"`
	Section    string    `json:"section"`
	Audience   string    `json:"audience"`
	EntryType  string    `json:"entryType"`
	Category   string    `json:"category"`
	Tags       []string  `json:"tags"`
	Embedding  []float32 `json:"embedding"`
}

// ProofPoints fetches CoE proof point entries, optionally narrowed by
// industry. These records carry precomputed embeddings.
func (c *Client) ProofPoints(ctx context.Context, industry string) ([]domain.Document, error) {
	groq := `*[_type == "proofPointEntry"` + matchClause("industry", industry) +
		`]{_id, title, summary, customer, industry, tags, embedding}`

	items, err := c.fetch(ctx, groq)
	if err != nil {
		return nil, fmt.Errorf("proof points: %w", err)
	}
	return c.project(items, domain.HubCoE, "proof_point"), nil
}

// CatalogEntries fetches enablement catalog entries, optionally narrowed by
// audience and section.
func (c *Client) CatalogEntries(ctx context.Context, audience, section string) ([]domain.Document, error) {
	groq := `*[_type == "catalogEntry"` + matchClause("audience", audience) +
		matchClause("section", section) +
		`]{_id, title, summary, entryType, section, audience, tags}`

	items, err := c.fetch(ctx, groq)
	if err != nil {
		return nil, fmt.Errorf("catalog entries: %w", err)
	}
	return c.project(items, domain.HubEnablement, "catalog_entry"), nil
}

// TrainingSessions fetches enablement training sessions, optionally narrowed
// by audience.
func (c *Client) TrainingSessions(ctx context.Context, audience string) ([]domain.Document, error) {
	groq := `*[_type == "trainingSession"` + matchClause("audience", audience) +
		`]{_id, title, summary, audience, tags}`

	items, err := c.fetch(ctx, groq)
	if err != nil {
		return nil, fmt.Errorf("training sessions: %w", err)
	}
	return c.project(items, domain.HubEnablement, "training_session"), nil
}

// CompetitiveResources fetches battle-card style competitive records.
func (c *Client) CompetitiveResources(ctx context.Context) ([]domain.Document, error) {
	items, err := c.fetch(ctx,
		`*[_type == "competitiveResource"]{_id, title, summary, competitor, tags}`)
	if err != nil {
		return nil, fmt.Errorf("competitive resources: %w", err)
	}
	return c.project(items, domain.HubContent, "competitive_resource"), nil
}

// Articles fetches content hub articles, optionally narrowed by type and
// channel.
func (c *Client) Articles(ctx context.Context, category, channel string) ([]domain.Document, error) {
	groq := `*[_type == "contentHubItem"` + matchClause("category", category) +
		matchClause("channel", channel) +
		`]{_id, title, summary, category, channel, tags}`

	items, err := c.fetch(ctx, groq)
	if err != nil {
		return nil, fmt.Errorf("articles: %w", err)
	}
	return c.project(items, domain.HubContent, ""), nil
}

// Templates fetches reusable template records.
func (c *Client) Templates(ctx context.Context) ([]domain.Document, error) {
	items, err := c.fetch(ctx, `*[_type == "templateEntry"]{_id, title, summary, tags}`)
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}
	return c.project(items, domain.HubContent, "template"), nil
}

func (c *Client) fetch(ctx context.Context, groq string) ([]item, error) {
	var items []item
	if err := c.query(ctx, groq, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// project validates loose CMS items into domain documents. Records without
// an id or title are dropped with a warning; everything else passes through
// with the hub and default sub-type applied.
func (c *Client) project(items []item, hub domain.Hub, defaultType string) []domain.Document {
	docs := make([]domain.Document, 0, len(items))
	for _, it := range items {
		if it.ID == "" || strings.TrimSpace(it.Title) == "" {
			c.logger.Warn("Dropping malformed CMS record",
				zap.String("id", it.ID),
				zap.String("hub", string(hub)),
			)
			continue
		}

		doc := domain.Document{
			ID:         it.ID,
			Title:      it.Title,
			Summary:    it.Summary,
			Hub:        hub,
			EntryType:  it.EntryType,
			Category:   it.Category,
			Tags:       it.Tags,
			Embedding:  it.Embedding,
			Customer:   it.Customer,
			Industry:   it.Industry,
			Competitor: it.Competitor,
			Channel:    it.Channel,
			Section:    it.Section,
			Audience:   it.Audience,
		}
		if doc.EntryType == "" && doc.Category == "" {
			doc.EntryType = defaultType
		}
		docs = append(docs, doc)
	}
	return docs
}

// matchClause renders an `&& field == "value"` GROQ predicate, or nothing
// when the value is empty. Quotes in values are stripped rather than escaped;
// GROQ string literals have no escape for them that every CMS version accepts.
func matchClause(field, value string) string {
	if value == "" {
		return ""
	}
	value = strings.ReplaceAll(value, `"`, "")
	return fmt.Sprintf(` && %s == "%s"`, field, value)
}
