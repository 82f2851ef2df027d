package catalogservice

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/arsenal/internal/catalog"
	"github.com/starford/arsenal/internal/models"
	"github.com/starford/arsenal/internal/testutil"
)

func TestListSection_CategoryAndQuery(t *testing.T) {
	svc := NewService(testutil.TestStore(t, testutil.CatalogJSON), nil, nil)
	ctx := context.Background()

	l := svc.ListSection(ctx, models.SectionTools, "recon", "")
	tools := l.Records.([]models.Tool)
	if l.Total != 3 || l.Count != 2 || tools[0].Name != "amass" || tools[1].Name != "trufflehog" {
		t.Errorf("recon listing = %+v", l)
	}

	l = svc.ListSection(ctx, models.SectionTools, "", "GIT")
	if l.Category != models.CategoryAll || l.Count != 1 {
		t.Errorf("query listing = %+v", l)
	}

	l = svc.ListSection(ctx, models.SectionArticles, "nope", "")
	if recs := l.Records.([]models.Article); recs == nil || len(recs) != 0 {
		t.Errorf("empty listing should be a non-nil empty slice: %#v", l.Records)
	}
}

func TestListSection_CategoryOnlyForFilterableSections(t *testing.T) {
	svc := NewService(testutil.TestStore(t, testutil.CatalogJSON), nil, nil)
	ctx := context.Background()

	for _, sec := range []models.Section{models.SectionRepositories, models.SectionChecklists} {
		l := svc.ListSection(ctx, sec, "no-such-category", "")
		if l.Category != models.CategoryAll || l.Count != 1 || l.Count != l.Total {
			t.Errorf("%s listing = %+v", sec, l)
		}
	}

	l := svc.ListSection(ctx, models.SectionArticles, "recon", "")
	if l.Category != "recon" || l.Count != 1 {
		t.Errorf("articles listing = %+v", l)
	}
}

func TestDorks_InterpolatesDomain(t *testing.T) {
	svc := NewService(testutil.TestStore(t, testutil.CatalogJSON), nil, nil)

	qs := svc.Dorks(context.Background(), "example.com")
	if len(qs) != 2 {
		t.Fatalf("dorks = %d", len(qs))
	}
	if qs[0].Query != "site:example.com filetype:pdf" || qs[0].Template != "site:{domain} filetype:pdf" {
		t.Errorf("dork = %+v", qs[0])
	}
	if qs[0].SearchURL != "https://www.google.com/search?q=site%3Aexample.com+filetype%3Apdf" {
		t.Errorf("search url = %q", qs[0].SearchURL)
	}

	for _, q := range svc.Dorks(context.Background(), "") {
		if q.SearchURL != "" || q.Query != q.Template {
			t.Errorf("inert dork = %+v", q)
		}
	}
}

func TestSearch_InMemoryWithoutIndex(t *testing.T) {
	svc := NewService(testutil.TestStore(t, testutil.CatalogJSON), nil, nil)
	hits, err := svc.Search(context.Background(), "recon", "", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	// Two recon tools by category, one recon article by title/category.
	if len(hits) != 3 {
		t.Fatalf("hits = %+v", hits)
	}
	if hits[0].Section != models.SectionTools || hits[2].Section != models.SectionArticles {
		t.Errorf("order = %+v", hits)
	}

	hits, _ = svc.Search(context.Background(), "recon", models.SectionArticles, 0)
	if len(hits) != 1 || hits[0].Title != "Recon at scale" {
		t.Errorf("section hits = %+v", hits)
	}
}

func TestSearch_UsesIndex(t *testing.T) {
	store := testutil.TestStore(t, testutil.CatalogJSON)
	db := testutil.TestDB(t)
	svc := NewService(store, db, nil)
	if err := svc.SyncIndex(store.Snapshot()); err != nil {
		t.Fatalf("SyncIndex: %v", err)
	}
	if n, _ := db.Count(); n != 11 {
		t.Errorf("indexed = %d, want 11", n)
	}
	hits, err := svc.Search(context.Background(), "wordlists", "", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].Section != models.SectionRepositories {
		t.Errorf("hits = %+v", hits)
	}
}

func TestSearch_BlankQueryMatchesNothing(t *testing.T) {
	svc := NewService(testutil.TestStore(t, testutil.CatalogJSON), testutil.TestDB(t), nil)
	if err := svc.SyncIndex(svc.Snapshot()); err != nil {
		t.Fatal(err)
	}
	for _, q := range []string{"", "   ", "\t"} {
		hits, err := svc.Search(context.Background(), q, "", 0)
		if err != nil {
			t.Fatalf("Search(%q): %v", q, err)
		}
		if hits == nil || len(hits) != 0 {
			t.Errorf("Search(%q) = %+v, want empty", q, hits)
		}
	}
}

func TestStats(t *testing.T) {
	store := testutil.TestStore(t, testutil.CatalogJSON)
	st := NewService(store, nil, nil).Stats(context.Background())
	if !st.Ready || st.Version == "" || st.LoadError != "" || st.LoadFailedAt != nil {
		t.Errorf("stats = %+v", st)
	}
	want := map[string]int{"tools": 3, "repositories": 1, "articles": 2, "extensions": 2, "dorks": 2, "checklists": 1}
	for k, v := range want {
		if st.Counts[k] != v {
			t.Errorf("counts[%s] = %d, want %d", k, st.Counts[k], v)
		}
	}
}

func TestStats_ReportsLoadFailure(t *testing.T) {
	store := catalog.NewStore(catalog.Source{Path: filepath.Join(t.TempDir(), "missing.json")}, nil)
	before := time.Now().UTC()
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatal("expected load error")
	}

	st := NewService(store, nil, nil).Stats(context.Background())
	if st.Ready || st.LoadError == "" {
		t.Errorf("stats = %+v", st)
	}
	if st.LoadFailedAt == nil || st.LoadFailedAt.Before(before) {
		t.Errorf("load_failed_at = %v, want >= %v", st.LoadFailedAt, before)
	}
}
