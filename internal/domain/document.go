package domain

// Hub identifies one of the three GTM content groupings.
type Hub string

const (
	// HubCoE holds proof points and best-practice content.
	HubCoE Hub = "coe"
	// HubEnablement holds the sales enablement catalog.
	HubEnablement Hub = "enablement"
	// HubContent holds the general content hub.
	HubContent Hub = "content"
)

// Valid reports whether h is one of the three known hubs.
func (h Hub) Valid() bool {
	return h == HubCoE || h == HubEnablement || h == HubContent
}

// Document is the normalized, read-only projection of one CMS record.
// Fields vary by source collection; the content repository validates each
// record into this shape at the boundary instead of passing loosely-typed
// CMS payloads through scoring.
type Document struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Summary   string   `json:"summary,omitempty"`
	Hub       Hub      `json:"_hub"`
	EntryType string   `json:"entryType,omitempty"`
	Category  string   `json:"category,omitempty"`
	Tags      []string `json:"tags,omitempty"`

	// Embedding is precomputed by the CMS ingestion pipeline. Only proof
	// point records carry one; everything else is keyword-only.
	Embedding []float32 `json:"-"`

	Customer   string `json:"customer,omitempty"`
	Industry   string `json:"industry,omitempty"`
	Competitor string `json:"competitor,omitempty"`
	Channel    string `json:"channel,omitempty"`
	Section    string `json:"section,omitempty"`
	Audience   string `json:"audience,omitempty"`
}

// Type returns the document's sub-type: EntryType when present, else Category.
func (d *Document) Type() string {
	if d.EntryType != "" {
		return d.EntryType
	}
	return d.Category
}
