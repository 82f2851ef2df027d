// Package render turns catalog records into HTML fragments. Every function
// here is total: a record with missing fields renders with empty values.
package render

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"

	"github.com/starford/arsenal/internal/models"
)

// SearchEngineURL is the prefix of a dork search link.
const SearchEngineURL = "https://www.google.com/search?q="

// Extension glyphs.
const (
	GlyphGitHub  = "fab fa-github"
	GlyphFirefox = "fab fa-firefox"
)

var cards = template.Must(template.New("cards").Parse(cardTemplates))

// Renderer renders cards for one locale.
type Renderer struct {
	msgs Messages
	md   goldmark.Markdown
}

// New creates a Renderer for locale (unknown locales fall back to English).
func New(locale string) *Renderer {
	return &Renderer{
		msgs: MessagesFor(locale),
		md:   newInlineMarkdown(),
	}
}

// newInlineMarkdown builds a goldmark instance that only knows paragraphs,
// code spans, emphasis and strikethrough. Block markers such as "# " or
// "1. " and raw HTML stay literal text and are escaped on output.
func newInlineMarkdown() goldmark.Markdown {
	p := parser.NewParser(
		parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
		parser.WithInlineParsers(
			util.Prioritized(parser.NewCodeSpanParser(), 100),
			util.Prioritized(parser.NewEmphasisParser(), 500),
		),
	)
	return goldmark.New(
		goldmark.WithParser(p),
		goldmark.WithExtensions(extension.Strikethrough),
	)
}

// Messages returns the renderer's strings.
func (r *Renderer) Messages() Messages {
	return r.msgs
}

type cardData[T any] struct {
	Record      T
	Description template.HTML
	Msg         Messages
	Glyph       string
	Query       string
	SearchURL   string
}

// Tool renders a tool card.
func (r *Renderer) Tool(t models.Tool) template.HTML {
	return r.exec("tool", cardData[models.Tool]{Record: t, Description: r.Inline(t.Description), Msg: r.msgs})
}

// Repository renders a repository card.
func (r *Renderer) Repository(rp models.Repository) template.HTML {
	return r.exec("repository", cardData[models.Repository]{Record: rp, Description: r.Inline(rp.Description), Msg: r.msgs})
}

// Article renders an article card.
func (r *Renderer) Article(a models.Article) template.HTML {
	return r.exec("article", cardData[models.Article]{Record: a, Description: r.Inline(a.Description), Msg: r.msgs})
}

// Extension renders an extension card. The link glyph is picked by ExtensionGlyph.
func (r *Renderer) Extension(e models.Extension) template.HTML {
	return r.exec("extension", cardData[models.Extension]{
		Record:      e,
		Description: r.Inline(e.Description),
		Msg:         r.msgs,
		Glyph:       ExtensionGlyph(e.Icon),
	})
}

// Dork renders a dork card. With an empty domain the card is inert and shows
// the raw template; otherwise it links to a search for the interpolated query.
func (r *Renderer) Dork(d models.Dork, domain string) template.HTML {
	data := cardData[models.Dork]{
		Record:      d,
		Description: r.Inline(d.Description),
		Msg:         r.msgs,
		Query:       d.Query,
	}
	if domain != "" {
		data.Query = Interpolate(d.Query, domain)
		data.SearchURL = SearchURL(data.Query)
	}
	return r.exec("dork", data)
}

// DorkCard binds domain, giving a card function usable with Section.
func (r *Renderer) DorkCard(domain string) func(models.Dork) template.HTML {
	return func(d models.Dork) template.HTML { return r.Dork(d, domain) }
}

// Checklist renders a checklist card.
func (r *Renderer) Checklist(c models.Checklist) template.HTML {
	return r.exec("checklist", cardData[models.Checklist]{Record: c, Description: r.Inline(c.Description), Msg: r.msgs})
}

// EmptyState renders the placeholder shown for a section with no records.
func (r *Renderer) EmptyState() template.HTML {
	return r.exec("empty", r.msgs)
}

// Inline renders a short Markdown string as inline HTML. Line breaks fold
// into spaces so the result is always a single run of phrasing content.
func (r *Renderer) Inline(s string) template.HTML {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(s), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(s))
	}
	out := strings.TrimSpace(buf.String())
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return template.HTML(out) //nolint:gosec // goldmark output without raw HTML parsing
}

func (r *Renderer) exec(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := cards.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("render: card template failed", slog.String("template", name), slog.String("error", err.Error()))
		return ""
	}
	return template.HTML(buf.String()) //nolint:gosec // html/template output
}

// Interpolate substitutes domain for the first placeholder in a dork query.
func Interpolate(query, domain string) string {
	return strings.Replace(query, models.DomainPlaceholder, domain, 1)
}

// SearchURL returns the web search link for a query.
func SearchURL(query string) string {
	return SearchEngineURL + url.QueryEscape(query)
}

// ExtensionGlyph maps an extension icon to its link glyph: only "fa-github"
// is recognized, everything else gets the Firefox glyph.
func ExtensionGlyph(icon string) string {
	if icon == "fa-github" {
		return GlyphGitHub
	}
	return GlyphFirefox
}
