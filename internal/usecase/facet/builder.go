package facet

import (
	"sort"

	"github.com/gtmhub/searchd/internal/domain"
)

// typeMeta maps known entry types and categories to display labels and
// icons for filter chips. Unknown values fall back to a generic pair.
var typeMeta = map[string]struct{ Label, Icon string }{
	"proof_point":          {"Proof Points", "chart"},
	"catalog_entry":        {"Catalog Entries", "book"},
	"training_session":     {"Training Sessions", "academy"},
	"competitive_resource": {"Battle Cards", "shield"},
	"template":             {"Templates", "layout"},
	"article":              {"Articles", "doc"},
	"case_study":           {"Case Studies", "briefcase"},
	"webinar":              {"Webinars", "video"},
	"one_pager":            {"One-Pagers", "page"},
}

const (
	fallbackLabel = "Resources"
	fallbackIcon  = "file"
)

var hubLabels = map[domain.Hub]string{
	domain.HubCoE:        "CoE Hub",
	domain.HubEnablement: "Enablement Hub",
	domain.HubContent:    "Content Hub",
}

// Build tabulates facet counts over the unfiltered result union. Counting
// runs before the hub/type post-filters on purpose, so the filter UI shows
// full counts even while a filter is active.
//
// Section, channel, audience and industry facets are placeholders and stay
// empty; that mirrors the current ranking behavior and changing it needs a
// call with whoever owns the search UI.
func Build(union []domain.ScoredResult) domain.FacetSummary {
	hubCounts := make(map[domain.Hub]int)
	typeCounts := make(map[[2]string]int)

	for i := range union {
		r := &union[i]
		hubCounts[r.Hub]++
		if t := r.Type(); t != "" {
			typeCounts[[2]string{t, string(r.Hub)}]++
		}
	}

	hubs := make([]domain.HubFacet, 0, len(hubCounts))
	for hub, count := range hubCounts {
		hubs = append(hubs, domain.HubFacet{
			Hub:   hub,
			Label: hubLabel(hub),
			Count: count,
		})
	}
	sortHubs(hubs)

	types := make([]domain.TypeFacet, 0, len(typeCounts))
	for key, count := range typeCounts {
		label, icon := typeLabel(key[0])
		types = append(types, domain.TypeFacet{
			Value: key[0],
			Label: label,
			Icon:  icon,
			Hub:   domain.Hub(key[1]),
			Count: count,
		})
	}
	sortTypes(types)

	return domain.FacetSummary{
		Hubs:       hubs,
		Types:      types,
		Sections:   []domain.Facet{},
		Channels:   []domain.Facet{},
		Audiences:  []domain.Facet{},
		Industries: []domain.Facet{},
	}
}

func hubLabel(hub domain.Hub) string {
	if label, ok := hubLabels[hub]; ok {
		return label
	}
	return fallbackLabel
}

func typeLabel(value string) (string, string) {
	if meta, ok := typeMeta[value]; ok {
		return meta.Label, meta.Icon
	}
	return fallbackLabel, fallbackIcon
}

// sortHubs orders by count descending, then hub name for determinism.
func sortHubs(hubs []domain.HubFacet) {
	sort.Slice(hubs, func(i, j int) bool {
		if hubs[i].Count != hubs[j].Count {
			return hubs[i].Count > hubs[j].Count
		}
		return hubs[i].Hub < hubs[j].Hub
	})
}

// sortTypes orders by count descending, then value, then hub.
func sortTypes(types []domain.TypeFacet) {
	sort.Slice(types, func(i, j int) bool {
		if types[i].Count != types[j].Count {
			return types[i].Count > types[j].Count
		}
		if types[i].Value != types[j].Value {
			return types[i].Value < types[j].Value
		}
		return types[i].Hub < types[j].Hub
	})
}
