package render

import (
	"html/template"
	"strings"
)

// Section renders the full content of a section region: one card per record
// in input order, or the empty-state placeholder when there are none. The
// result replaces the region wholesale.
func Section[T any](r *Renderer, records []T, card func(T) template.HTML) template.HTML {
	if len(records) == 0 {
		return r.EmptyState()
	}
	var b strings.Builder
	for _, rec := range records {
		b.WriteString(string(card(rec)))
	}
	return template.HTML(b.String()) //nolint:gosec // concatenated card output
}
