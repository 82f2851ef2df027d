// Package web serves the HTML catalog browser.
package web

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/starford/arsenal/internal/apperr"
	"github.com/starford/arsenal/internal/catalog"
	"github.com/starford/arsenal/internal/models"
	"github.com/starford/arsenal/internal/render"
	"github.com/starford/arsenal/internal/view"
)

// ThemeCookie is the name of the cookie holding the persisted theme.
const ThemeCookie = "theme"

const themeMaxAge = 365 * 24 * time.Hour

// Options configures the browser.
type Options struct {
	Title  string
	Locale string
	// LiveReload includes the script that reloads the page on catalog.reloaded.
	LiveReload bool
}

// Handler renders pages and section fragments from the current snapshot.
type Handler struct {
	store    *catalog.Store
	renderer *render.Renderer
	opts     Options
}

// New creates a Handler.
func New(store *catalog.Store, opts Options) *Handler {
	if opts.Title == "" {
		opts.Title = "Arsenal"
	}
	if opts.Locale == "" {
		opts.Locale = render.DefaultLocale
	}
	return &Handler{store: store, renderer: render.New(opts.Locale), opts: opts}
}

// Routes mounts the page, fragment, theme and static routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Page)
	r.Get("/sections/{section}", h.Fragment)
	r.Post("/theme", h.ToggleTheme)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
}

type sectionData struct {
	Section    models.Section
	Title      string
	Buttons    []view.CategoryButton
	Body       template.HTML
	Shown      int
	Total      int
	DomainForm bool
	State      view.State
	Msg        render.Messages
}

type pageData struct {
	Title      string
	Msg        render.Messages
	State      view.State
	Sections   []sectionData
	LoadError  bool
	LiveReload bool
	Version    string
	Return     string
	ClearHref  string
}

// Page handles GET /.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	v := view.Compute(snap.Catalog, h.state(r))

	data := pageData{
		Title:      h.opts.Title,
		Msg:        h.renderer.Messages(),
		State:      v.State,
		LoadError:  h.store.LoadError() != nil,
		LiveReload: h.opts.LiveReload,
		Version:    snap.Version,
		Return:     v.State.Href("/"),
		ClearHref:  v.State.WithQuery("").Href("/"),
	}
	for _, sec := range models.Sections {
		data.Sections = append(data.Sections, h.section(v, sec))
	}
	h.execute(w, "page", data)
}

// Fragment handles GET /sections/{section}: the section markup alone.
func (h *Handler) Fragment(w http.ResponseWriter, r *http.Request) {
	sec, err := models.ParseSection(chi.URLParam(r, "section"))
	if err != nil {
		if errors.Is(err, apperr.ErrUnknownSection) {
			http.Error(w, "unknown section", http.StatusNotFound)
			return
		}
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	v := view.Compute(h.store.Snapshot().Catalog, h.state(r))
	h.execute(w, "section", h.section(v, sec))
}

// ToggleTheme handles POST /theme: flip the stored theme and go back.
func (h *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	next := readTheme(r).Toggle()
	http.SetCookie(w, &http.Cookie{
		Name:     ThemeCookie,
		Value:    string(next),
		Path:     "/",
		MaxAge:   int(themeMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, returnPath(r.FormValue("return")), http.StatusSeeOther)
}

func (h *Handler) state(r *http.Request) view.State {
	base := view.NewState(h.opts.Locale).WithTheme(readTheme(r))
	return view.FromValues(base, r.URL.Query())
}

func (h *Handler) section(v view.View, sec models.Section) sectionData {
	msgs := h.renderer.Messages()
	return sectionData{
		Section:    sec,
		Title:      msgs.SectionTitle(sec),
		Buttons:    v.Buttons(sec),
		Body:       SectionHTML(h.renderer, v, sec),
		Shown:      v.Shown(sec),
		Total:      v.Stats[sec],
		DomainForm: sec == models.SectionDorks,
		State:      v.State,
		Msg:        msgs,
	}
}

func (h *Handler) execute(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("web: template failed", slog.String("template", name), slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// SectionHTML renders the cards of one section of a computed view.
func SectionHTML(r *render.Renderer, v view.View, sec models.Section) template.HTML {
	switch sec {
	case models.SectionTools:
		return render.Section(r, v.Tools, r.Tool)
	case models.SectionRepositories:
		return render.Section(r, v.Repositories, r.Repository)
	case models.SectionArticles:
		return render.Section(r, v.Articles, r.Article)
	case models.SectionExtensions:
		return render.Section(r, v.Extensions, r.Extension)
	case models.SectionDorks:
		return render.Section(r, v.Dorks, r.DorkCard(v.State.Domain))
	case models.SectionChecklists:
		return render.Section(r, v.Checklists, r.Checklist)
	}
	return r.EmptyState()
}

func readTheme(r *http.Request) view.Theme {
	c, err := r.Cookie(ThemeCookie)
	if err != nil {
		return view.ThemeLight
	}
	return view.ParseTheme(c.Value)
}

// returnPath keeps theme redirects on this site.
func returnPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	return p
}
