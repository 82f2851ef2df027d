// Package catalogservice is the query layer shared by the JSON API and the
// MCP server: section listings, dork building, search and stats over the
// current catalog snapshot.
package catalogservice

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/starford/arsenal/internal/catalog"
	"github.com/starford/arsenal/internal/filter"
	"github.com/starford/arsenal/internal/index"
	"github.com/starford/arsenal/internal/models"
	"github.com/starford/arsenal/internal/render"
)

// DefaultSearchLimit caps search results when the caller gives no limit.
const DefaultSearchLimit = 20

// SectionListing is the result of listing one section.
type SectionListing struct {
	Section  models.Section `json:"section"`
	Category string         `json:"category"`
	Query    string         `json:"query,omitempty"`
	Total    int            `json:"total"`
	Count    int            `json:"count"`
	Records  any            `json:"records"`
}

// DorkQuery is a dork with its query built for a domain.
type DorkQuery struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
	Template    string `json:"template"`
	Query       string `json:"query"`
	SearchURL   string `json:"search_url,omitempty"`
}

// Stats summarizes the current snapshot.
// LoadError and LoadFailedAt are set while the most recent load has failed.
type Stats struct {
	Ready        bool           `json:"ready"`
	Version      string         `json:"version"`
	Checksum     string         `json:"checksum"`
	LoadedAt     time.Time      `json:"loaded_at"`
	Counts       map[string]int `json:"counts"`
	Issues       int            `json:"issues"`
	LoadError    string         `json:"load_error,omitempty"`
	LoadFailedAt *time.Time     `json:"load_failed_at,omitempty"`
}

// Service answers catalog queries. The index is optional: without it, or
// when it fails, search runs in memory.
type Service struct {
	store  *catalog.Store
	idx    index.RecordIndex
	logger *slog.Logger
}

// NewService creates a new catalog service. idx may be nil.
func NewService(store *catalog.Store, idx index.RecordIndex, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, idx: idx, logger: logger}
}

// Snapshot returns the current catalog snapshot.
func (s *Service) Snapshot() *catalog.Snapshot {
	return s.store.Snapshot()
}

// ListSection returns the records of one section, narrowed by category and
// query. Category only applies to sections with category buttons (tools and
// articles) and is reported as "all" elsewhere; an empty category means "all".
func (s *Service) ListSection(_ context.Context, sec models.Section, category, query string) SectionListing {
	if category == "" || !sec.HasCategoryFilter() {
		category = models.CategoryAll
	}
	c := s.store.Snapshot().Catalog
	out := SectionListing{Section: sec, Category: category, Query: query, Total: c.Count(sec)}

	switch sec {
	case models.SectionTools:
		recs := filter.BySearch(filter.ByCategory(c.Tools, category), filter.ToolFields, query)
		out.Records, out.Count = nonNil(recs), len(recs)
	case models.SectionRepositories:
		recs := filter.BySearch(c.Repositories, filter.RepositoryFields, query)
		out.Records, out.Count = nonNil(recs), len(recs)
	case models.SectionArticles:
		recs := filter.BySearch(filter.ByCategory(c.Articles, category), filter.ArticleFields, query)
		out.Records, out.Count = nonNil(recs), len(recs)
	case models.SectionExtensions:
		recs := filter.BySearch(c.Extensions, filter.ExtensionFields, query)
		out.Records, out.Count = nonNil(recs), len(recs)
	case models.SectionDorks:
		recs := filter.BySearch(c.Dorks, dorkFields, query)
		out.Records, out.Count = nonNil(recs), len(recs)
	case models.SectionChecklists:
		recs := filter.BySearch(c.Checklists, filter.ChecklistFields, query)
		out.Records, out.Count = nonNil(recs), len(recs)
	}
	return out
}

var dorkFields filter.Fields[models.Dork] = func(d models.Dork) []string {
	return []string{d.Name, d.Description, d.Query}
}

// Dorks builds every dork query for domain. With an empty domain the
// templates are returned unchanged and without search URLs.
func (s *Service) Dorks(_ context.Context, domain string) []DorkQuery {
	dorks := s.store.Snapshot().Catalog.Dorks
	out := make([]DorkQuery, 0, len(dorks))
	for _, d := range dorks {
		q := DorkQuery{Name: d.Name, Description: d.Description, Icon: d.Icon, Template: d.Query, Query: d.Query}
		if domain != "" {
			q.Query = render.Interpolate(d.Query, domain)
			q.SearchURL = render.SearchURL(q.Query)
		}
		out = append(out, q)
	}
	return out
}

// Search finds records across sections (or in one section when sec is set).
// A blank query matches nothing.
func (s *Service) Search(ctx context.Context, query string, sec models.Section, limit int) ([]index.Hit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []index.Hit{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if s.idx != nil {
		hits, err := s.idx.Search(query, sec, limit)
		if err == nil {
			return hits, nil
		}
		s.logger.Warn("search: index failed, using in-memory search",
			slog.String("query", query), slog.String("error", err.Error()))
	}
	return s.searchMemory(ctx, query, sec, limit), nil
}

var entryFields filter.Fields[models.Entry] = func(e models.Entry) []string {
	return []string{e.Title, e.Description, e.Category}
}

func (s *Service) searchMemory(_ context.Context, query string, sec models.Section, limit int) []index.Hit {
	entries := s.store.Snapshot().Catalog.Entries()
	out := []index.Hit{}
	for _, e := range filter.BySearch(entries, entryFields, query) {
		if sec != "" && e.Section != sec {
			continue
		}
		out = append(out, index.Hit{
			Section:     e.Section,
			Position:    e.Position,
			Title:       e.Title,
			Description: e.Description,
			Category:    e.Category,
			Link:        e.Link,
			Snippet:     e.Description,
		})
		if len(out) == limit {
			break
		}
	}
	return out
}

// Stats reports the current snapshot's metadata and section counts.
func (s *Service) Stats(_ context.Context) Stats {
	snap := s.store.Snapshot()
	counts := make(map[string]int, len(models.Sections))
	for sec, n := range snap.Catalog.Counts() {
		counts[string(sec)] = n
	}
	st := Stats{
		Ready:    s.store.Ready(),
		Version:  snap.Version,
		Checksum: snap.Checksum,
		LoadedAt: snap.LoadedAt,
		Counts:   counts,
		Issues:   len(snap.Issues),
	}
	if err := s.store.LoadError(); err != nil {
		at := s.store.LoadFailedAt()
		st.LoadError = err.Error()
		st.LoadFailedAt = &at
	}
	return st
}

// SyncIndex brings the index up to date with snap. It is a no-op without an index.
func (s *Service) SyncIndex(snap *catalog.Snapshot) error {
	if s.idx == nil {
		return nil
	}
	_, err := index.Sync(s.idx, snap, s.logger)
	return err
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
