package cms

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gtmhub/searchd/internal/domain"
)

func TestProofPoints_ProjectsDomainDocuments(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result": [
			{"_id": "pp-1", "title": "Acme cut churn 40%", "summary": "Churn reduction",
			 "customer": "Acme", "industry": "retail", "tags": ["churn"],
			 "embedding": [0.1, 0.2]},
			{"_id": "", "title": "dropped: no id"},
			{"_id": "pp-2", "title": "   "}
		]}`))
	})

	docs, err := client.ProofPoints(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 valid document, got %d", len(docs))
	}

	d := docs[0]
	if d.ID != "pp-1" {
		t.Errorf("expected id 'pp-1', got %q", d.ID)
	}
	if d.Hub != domain.HubCoE {
		t.Errorf("expected hub coe, got %q", d.Hub)
	}
	if d.EntryType != "proof_point" {
		t.Errorf("expected default type proof_point, got %q", d.EntryType)
	}
	if d.Customer != "Acme" {
		t.Errorf("expected customer Acme, got %q", d.Customer)
	}
	if len(d.Embedding) != 2 {
		t.Errorf("expected embedding carried through, got %v", d.Embedding)
	}
}

func TestProofPoints_IndustryFilterInQuery(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		_, _ = w.Write([]byte(`{"result": []}`))
	})

	_, err := client.ProofPoints(context.Background(), "fintech")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotQuery, `industry == "fintech"`) {
		t.Errorf("expected industry predicate in query, got %q", gotQuery)
	}
}

func TestCatalogEntries_KeepsExplicitEntryType(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result": [
			{"_id": "ce-1", "title": "Discovery playbook", "entryType": "playbook"},
			{"_id": "ce-2", "title": "Pitch deck"}
		]}`))
	})

	docs, err := client.CatalogEntries(context.Background(), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].EntryType != "playbook" {
		t.Errorf("explicit entryType overwritten: %q", docs[0].EntryType)
	}
	if docs[1].EntryType != "catalog_entry" {
		t.Errorf("expected default type catalog_entry, got %q", docs[1].EntryType)
	}
	for _, d := range docs {
		if d.Hub != domain.HubEnablement {
			t.Errorf("expected hub enablement, got %q", d.Hub)
		}
	}
}

func TestArticles_CategoryPreservedWithoutDefaultType(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result": [
			{"_id": "a-1", "title": "Q3 webinar recap", "category": "webinar", "channel": "blog"}
		]}`))
	})

	docs, err := client.Articles(context.Background(), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].Category != "webinar" {
		t.Errorf("expected category webinar, got %q", docs[0].Category)
	}
	if docs[0].EntryType != "" {
		t.Errorf("articles with a category must not get a default entryType, got %q", docs[0].EntryType)
	}
	if docs[0].Type() != "webinar" {
		t.Errorf("expected Type()=webinar, got %q", docs[0].Type())
	}
}

func TestCompetitiveResources_HubAndType(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result": [
			{"_id": "cr-1", "title": "vs. Rival Inc", "competitor": "Rival Inc"}
		]}`))
	})

	docs, err := client.CompetitiveResources(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].Hub != domain.HubContent {
		t.Errorf("expected hub content, got %q", docs[0].Hub)
	}
	if docs[0].EntryType != "competitive_resource" {
		t.Errorf("expected type competitive_resource, got %q", docs[0].EntryType)
	}
}

func TestMatchClause(t *testing.T) {
	if got := matchClause("industry", ""); got != "" {
		t.Errorf("expected empty clause for empty value, got %q", got)
	}
	if got := matchClause("industry", "retail"); got != ` && industry == "retail"` {
		t.Errorf("unexpected clause: %q", got)
	}
	// Quotes are stripped, not escaped
	if got := matchClause("audience", `ae" || true`); got != ` && audience == "ae || true"` {
		t.Errorf("quotes not stripped: %q", got)
	}
}
