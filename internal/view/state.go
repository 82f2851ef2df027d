// Package view holds the browser's application state and turns a catalog
// plus that state into the record lists each section displays.
package view

import (
	"net/url"
	"strings"

	"github.com/starford/arsenal/internal/models"
)

// Theme is the persisted colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme reads a stored theme value. Anything unknown is light.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Query parameter names shared by the page, fragments and the API.
const (
	ParamQuery    = "q"
	ParamDomain   = "domain"
	ParamTools    = "tools"
	ParamArticles = "articles"
)

// State is the full interaction state of one page view. Values are replaced,
// never mutated: every With method returns a modified copy.
type State struct {
	ToolsCategory    string
	ArticlesCategory string
	Query            string
	Domain           string
	Theme            Theme
	Locale           string
}

// NewState returns the initial state: no filters, no query, light theme.
func NewState(locale string) State {
	return State{
		ToolsCategory:    models.CategoryAll,
		ArticlesCategory: models.CategoryAll,
		Theme:            ThemeLight,
		Locale:           locale,
	}
}

// FromValues builds a state from request query parameters on top of base.
func FromValues(base State, v url.Values) State {
	s := base
	if v.Has(ParamTools) {
		s = s.WithCategory(models.SectionTools, v.Get(ParamTools))
	}
	if v.Has(ParamArticles) {
		s = s.WithCategory(models.SectionArticles, v.Get(ParamArticles))
	}
	if v.Has(ParamQuery) {
		s = s.WithQuery(v.Get(ParamQuery))
	}
	if v.Has(ParamDomain) {
		s = s.WithDomain(v.Get(ParamDomain))
	}
	return s
}

// WithCategory selects category for a section. Selection is exclusive, so
// the new value replaces the old one. Sections without category buttons are
// left unchanged.
func (s State) WithCategory(sec models.Section, category string) State {
	if !sec.HasCategoryFilter() {
		return s
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = models.CategoryAll
	}
	switch sec {
	case models.SectionTools:
		s.ToolsCategory = category
	case models.SectionArticles:
		s.ArticlesCategory = category
	}
	return s
}

// WithQuery sets the global search query. The category selections are kept.
func (s State) WithQuery(q string) State {
	s.Query = q
	return s
}

// WithDomain sets the dork target domain.
func (s State) WithDomain(domain string) State {
	s.Domain = strings.TrimSpace(domain)
	return s
}

// WithTheme sets the theme.
func (s State) WithTheme(t Theme) State {
	s.Theme = t
	return s
}

// Category returns the selected category of a section, or "all".
func (s State) Category(sec models.Section) string {
	switch sec {
	case models.SectionTools:
		return s.ToolsCategory
	case models.SectionArticles:
		return s.ArticlesCategory
	}
	return models.CategoryAll
}

// Searching reports whether a non-blank global query is active.
func (s State) Searching() bool {
	return strings.TrimSpace(s.Query) != ""
}

// Values encodes the non-default parts of the state as query parameters.
// Theme and locale are not part of the URL.
func (s State) Values() url.Values {
	v := url.Values{}
	if s.ToolsCategory != "" && s.ToolsCategory != models.CategoryAll {
		v.Set(ParamTools, s.ToolsCategory)
	}
	if s.ArticlesCategory != "" && s.ArticlesCategory != models.CategoryAll {
		v.Set(ParamArticles, s.ArticlesCategory)
	}
	if s.Query != "" {
		v.Set(ParamQuery, s.Query)
	}
	if s.Domain != "" {
		v.Set(ParamDomain, s.Domain)
	}
	return v
}

// Href returns path with the state's query string appended.
func (s State) Href(path string) string {
	if enc := s.Values().Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}
