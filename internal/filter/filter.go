// Package filter holds the pure selection functions behind every catalog view.
// None of them mutate their input.
package filter

import (
	"strings"

	"github.com/starford/arsenal/internal/models"
)

// Categorized is any record kind with a category label.
type Categorized interface {
	CategoryOf() string
}

// Fields extracts the text fields of a record that global search looks at.
type Fields[T any] func(T) []string

// ByCategory returns the records whose category equals category, in their
// original order. models.CategoryAll returns records as-is.
func ByCategory[T Categorized](records []T, category string) []T {
	if category == models.CategoryAll {
		return records
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if r.CategoryOf() == category {
			out = append(out, r)
		}
	}
	return out
}

// BySearch keeps the records where at least one field contains query,
// case-insensitively. A blank query returns records as-is.
func BySearch[T any](records []T, fields Fields[T], query string) []T {
	if strings.TrimSpace(query) == "" {
		return records
	}
	needle := strings.ToLower(query)
	out := make([]T, 0, len(records))
	for _, r := range records {
		if matches(fields(r), needle) {
			out = append(out, r)
		}
	}
	return out
}

func matches(fields []string, needle string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Categories returns the distinct non-empty categories in first-seen order.
func Categories[T Categorized](records []T) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		c := r.CategoryOf()
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Global search field sets, per record kind.
var (
	ToolFields       Fields[models.Tool]       = func(t models.Tool) []string { return []string{t.Name, t.Description, t.Category} }
	RepositoryFields Fields[models.Repository] = func(r models.Repository) []string { return []string{r.Name, r.Description} }
	ArticleFields    Fields[models.Article]    = func(a models.Article) []string { return []string{a.Title, a.Description} }
	ExtensionFields  Fields[models.Extension]  = func(e models.Extension) []string { return []string{e.Name, e.Description} }
	ChecklistFields  Fields[models.Checklist]  = func(c models.Checklist) []string { return []string{c.Name, c.Description} }
)
