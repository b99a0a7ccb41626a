package domain

// HubFacet counts results per hub.
type HubFacet struct {
	Hub   Hub    `json:"hub"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TypeFacet counts results per (entry type or category, hub) pair.
type TypeFacet struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Hub   Hub    `json:"hub"`
	Count int    `json:"count"`
}

// Facet is a generic value+count pair for the placeholder facet groups.
type Facet struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FacetSummary aggregates counts over the unfiltered result union, rebuilt
// from scratch every request. Sections, Channels, Audiences and Industries
// are always empty in the current ranking behavior; the fields stay in the
// contract so filter UIs keep a stable shape.
type FacetSummary struct {
	Hubs       []HubFacet  `json:"hubs"`
	Types      []TypeFacet `json:"types"`
	Sections   []Facet     `json:"sections"`
	Channels   []Facet     `json:"channels"`
	Audiences  []Facet     `json:"audiences"`
	Industries []Facet     `json:"industries"`
}
