// Package models defines the domain types for Arsenal.
package models

import (
	"fmt"

	"github.com/starford/arsenal/internal/apperr"
)

// CategoryAll is the reserved category meaning "no category restriction".
const CategoryAll = "all"

// DomainPlaceholder is the literal token a dork query carries for the target domain.
const DomainPlaceholder = "{domain}"

// Section names one of the six catalog collections.
type Section string

// Catalog sections, in display order.
const (
	SectionTools        Section = "tools"
	SectionRepositories Section = "repositories"
	SectionArticles     Section = "articles"
	SectionExtensions   Section = "extensions"
	SectionDorks        Section = "dorks"
	SectionChecklists   Section = "checklists"
)

// Sections lists every section in display order.
var Sections = []Section{
	SectionTools,
	SectionRepositories,
	SectionArticles,
	SectionExtensions,
	SectionDorks,
	SectionChecklists,
}

// ParseSection returns the Section named s.
func ParseSection(s string) (Section, error) {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", fmt.Errorf("%w: %q", apperr.ErrUnknownSection, s)
}

// HasCategoryFilter reports whether the section exposes category buttons.
func (s Section) HasCategoryFilter() bool {
	return s == SectionTools || s == SectionArticles
}

// Tool is a standalone security tool.
type Tool struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
	Icon        string `json:"icon" yaml:"icon"`
	Link        string `json:"link" yaml:"link"`
}

// Repository is a source repository worth browsing.
type Repository struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
	Link        string `json:"link" yaml:"link"`
}

// Article is a write-up or blog post.
type Article struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
	Date        string `json:"date" yaml:"date"`
	ReadTime    string `json:"readTime" yaml:"readTime"`
	Link        string `json:"link" yaml:"link"`
}

// Extension is a browser extension.
type Extension struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
	Link        string `json:"link" yaml:"link"`
	Store       string `json:"store" yaml:"store"`
}

// Dork is a search-query template with a {domain} placeholder.
type Dork struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
	Query       string `json:"query" yaml:"query"`
}

// Checklist is an external testing checklist.
type Checklist struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
	Link        string `json:"link" yaml:"link"`
}

// CategoryOf accessors let the filter engine work over any categorized kind.

func (t Tool) CategoryOf() string       { return t.Category }
func (r Repository) CategoryOf() string { return r.Category }
func (a Article) CategoryOf() string    { return a.Category }
func (c Checklist) CategoryOf() string  { return c.Category }

// Catalog is the whole document: six sibling collections.
type Catalog struct {
	Tools        []Tool       `json:"tools" yaml:"tools"`
	Repositories []Repository `json:"repositories" yaml:"repositories"`
	Articles     []Article    `json:"articles" yaml:"articles"`
	Extensions   []Extension  `json:"extensions" yaml:"extensions"`
	Dorks        []Dork       `json:"dorks" yaml:"dorks"`
	Checklists   []Checklist  `json:"checklists" yaml:"checklists"`
}

// Count returns the number of records in a section.
func (c *Catalog) Count(s Section) int {
	switch s {
	case SectionTools:
		return len(c.Tools)
	case SectionRepositories:
		return len(c.Repositories)
	case SectionArticles:
		return len(c.Articles)
	case SectionExtensions:
		return len(c.Extensions)
	case SectionDorks:
		return len(c.Dorks)
	case SectionChecklists:
		return len(c.Checklists)
	}
	return 0
}

// Counts returns per-section record counts.
func (c *Catalog) Counts() map[Section]int {
	out := make(map[Section]int, len(Sections))
	for _, s := range Sections {
		out[s] = c.Count(s)
	}
	return out
}

// Entry is a section-agnostic view of one record, used for indexing and search.
type Entry struct {
	Section     Section `json:"section"`
	Position    int     `json:"position"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
	Link        string  `json:"link,omitempty"`
}

// Entries flattens the catalog into section-ordered entries.
func (c *Catalog) Entries() []Entry {
	var out []Entry
	for i, t := range c.Tools {
		out = append(out, Entry{SectionTools, i, t.Name, t.Description, t.Category, t.Link})
	}
	for i, r := range c.Repositories {
		out = append(out, Entry{SectionRepositories, i, r.Name, r.Description, r.Category, r.Link})
	}
	for i, a := range c.Articles {
		out = append(out, Entry{SectionArticles, i, a.Title, a.Description, a.Category, a.Link})
	}
	for i, e := range c.Extensions {
		out = append(out, Entry{SectionExtensions, i, e.Name, e.Description, "", e.Link})
	}
	for i, d := range c.Dorks {
		out = append(out, Entry{SectionDorks, i, d.Name, d.Description, "", ""})
	}
	for i, cl := range c.Checklists {
		out = append(out, Entry{SectionChecklists, i, cl.Name, cl.Description, cl.Category, cl.Link})
	}
	return out
}
