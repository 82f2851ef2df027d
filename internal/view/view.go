package view

import (
	"github.com/starford/arsenal/internal/filter"
	"github.com/starford/arsenal/internal/models"
)

// CategoryButton is one entry of a section's category filter group.
type CategoryButton struct {
	Value  string
	Active bool
	Href   string
}

// View is what every section shows for one State.
type View struct {
	State State

	Tools        []models.Tool
	Repositories []models.Repository
	Articles     []models.Article
	Extensions   []models.Extension
	Dorks        []models.Dork
	Checklists   []models.Checklist

	ToolCategories    []CategoryButton
	ArticleCategories []CategoryButton

	// Stats holds the total record count per section, independent of filters.
	Stats map[models.Section]int
}

// Compute derives the displayed record lists from a catalog and a state.
//
// While a query is active it runs over the unfiltered collections of every
// searchable section and the category selections are ignored. They are
// still held in the state, so a blank query shows the category view again.
// Dorks are never searched.
func Compute(c *models.Catalog, s State) View {
	v := View{
		State:             s,
		Dorks:             c.Dorks,
		ToolCategories:    buttons(c.Tools, s, models.SectionTools),
		ArticleCategories: buttons(c.Articles, s, models.SectionArticles),
		Stats:             c.Counts(),
	}

	if s.Searching() {
		v.Tools = filter.BySearch(c.Tools, filter.ToolFields, s.Query)
		v.Repositories = filter.BySearch(c.Repositories, filter.RepositoryFields, s.Query)
		v.Articles = filter.BySearch(c.Articles, filter.ArticleFields, s.Query)
		v.Extensions = filter.BySearch(c.Extensions, filter.ExtensionFields, s.Query)
		v.Checklists = filter.BySearch(c.Checklists, filter.ChecklistFields, s.Query)
		return v
	}

	v.Tools = filter.ByCategory(c.Tools, s.ToolsCategory)
	v.Repositories = c.Repositories
	v.Articles = filter.ByCategory(c.Articles, s.ArticlesCategory)
	v.Extensions = c.Extensions
	v.Checklists = c.Checklists
	return v
}

// Shown returns how many records a section currently displays.
func (v View) Shown(sec models.Section) int {
	switch sec {
	case models.SectionTools:
		return len(v.Tools)
	case models.SectionRepositories:
		return len(v.Repositories)
	case models.SectionArticles:
		return len(v.Articles)
	case models.SectionExtensions:
		return len(v.Extensions)
	case models.SectionDorks:
		return len(v.Dorks)
	case models.SectionChecklists:
		return len(v.Checklists)
	}
	return 0
}

// Buttons returns the category buttons of a section, nil if it has none.
func (v View) Buttons(sec models.Section) []CategoryButton {
	if !sec.HasCategoryFilter() {
		return nil
	}
	switch sec {
	case models.SectionTools:
		return v.ToolCategories
	case models.SectionArticles:
		return v.ArticleCategories
	}
	return nil
}

func buttons[T filter.Categorized](records []T, s State, sec models.Section) []CategoryButton {
	selected := s.Category(sec)
	values := append([]string{models.CategoryAll}, filter.Categories(records)...)
	out := make([]CategoryButton, 0, len(values))
	for _, val := range values {
		next := s.WithCategory(sec, val)
		out = append(out, CategoryButton{
			Value:  val,
			Active: val == selected,
			Href:   next.Href("/") + "#" + string(sec),
		})
	}
	return out
}
