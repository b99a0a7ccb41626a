package content

import (
	"context"
	"errors"
	"testing"

	"github.com/gtmhub/searchd/internal/domain"
)

type mockSource struct {
	proofPoints []domain.Document
	catalog     []domain.Document
	training    []domain.Document
	competitive []domain.Document
	articles    []domain.Document
	templates   []domain.Document
	err         error

	lastIndustry string
	lastAudience string
	lastSection  string
	lastCategory string
	lastChannel  string
}

func (m *mockSource) ProofPoints(_ context.Context, industry string) ([]domain.Document, error) {
	m.lastIndustry = industry
	return m.proofPoints, m.err
}

func (m *mockSource) CatalogEntries(_ context.Context, audience, section string) ([]domain.Document, error) {
	m.lastAudience = audience
	m.lastSection = section
	return m.catalog, m.err
}

func (m *mockSource) TrainingSessions(_ context.Context, audience string) ([]domain.Document, error) {
	m.lastAudience = audience
	return m.training, m.err
}

func (m *mockSource) CompetitiveResources(_ context.Context) ([]domain.Document, error) {
	return m.competitive, m.err
}

func (m *mockSource) Articles(_ context.Context, category, channel string) ([]domain.Document, error) {
	m.lastCategory = category
	m.lastChannel = channel
	return m.articles, m.err
}

func (m *mockSource) Templates(_ context.Context) ([]domain.Document, error) {
	return m.templates, m.err
}

func doc(id string) domain.Document {
	return domain.Document{ID: id, Title: id}
}

func TestCoECandidates_PassesIndustry(t *testing.T) {
	src := &mockSource{proofPoints: []domain.Document{doc("pp-1")}}
	repo := New(src)

	docs, err := repo.CoECandidates(context.Background(), domain.Filters{Industry: "retail"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.lastIndustry != "retail" {
		t.Errorf("industry filter not passed, got %q", src.lastIndustry)
	}
	if len(docs) != 1 {
		t.Errorf("expected 1 document, got %d", len(docs))
	}
}

func TestEnablementCandidates_MergesCatalogAndTraining(t *testing.T) {
	src := &mockSource{
		catalog:  []domain.Document{doc("ce-1"), doc("ce-2")},
		training: []domain.Document{doc("ts-1")},
	}
	repo := New(src)

	docs, err := repo.EnablementCandidates(context.Background(),
		domain.Filters{Audience: "ae", Section: "discovery"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected merged pool of 3, got %d", len(docs))
	}
	// Catalog entries precede training sessions in the pool.
	if docs[0].ID != "ce-1" || docs[2].ID != "ts-1" {
		t.Errorf("unexpected pool order: %v", docs)
	}
	if src.lastAudience != "ae" || src.lastSection != "discovery" {
		t.Errorf("filters not passed: audience=%q section=%q", src.lastAudience, src.lastSection)
	}
}

func TestContentCandidates_MergesThreeSources(t *testing.T) {
	src := &mockSource{
		competitive: []domain.Document{doc("cr-1")},
		articles:    []domain.Document{doc("ar-1")},
		templates:   []domain.Document{doc("tp-1")},
	}
	repo := New(src)

	docs, err := repo.ContentCandidates(context.Background(),
		domain.Filters{Type: "webinar", Channel: "blog"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected merged pool of 3, got %d", len(docs))
	}
	for i, want := range []string{"cr-1", "ar-1", "tp-1"} {
		if docs[i].ID != want {
			t.Errorf("pool position %d: got %s, want %s", i, docs[i].ID, want)
		}
	}
	if src.lastCategory != "webinar" || src.lastChannel != "blog" {
		t.Errorf("filters not passed: category=%q channel=%q", src.lastCategory, src.lastChannel)
	}
}

func TestCandidates_SourceErrorPropagates(t *testing.T) {
	src := &mockSource{err: errors.New("cms down")}
	repo := New(src)
	ctx := context.Background()

	if _, err := repo.CoECandidates(ctx, domain.Filters{}); err == nil {
		t.Error("expected coe error")
	}
	if _, err := repo.EnablementCandidates(ctx, domain.Filters{}); err == nil {
		t.Error("expected enablement error")
	}
	if _, err := repo.ContentCandidates(ctx, domain.Filters{}); err == nil {
		t.Error("expected content error")
	}
}
