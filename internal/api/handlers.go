package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/arsenal/internal/catalogservice"
	"github.com/starford/arsenal/internal/checksum"
	"github.com/starford/arsenal/internal/models"
)

// Handler holds API route handlers.
type Handler struct {
	svc *catalogservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *catalogservice.Service) *Handler {
	return &Handler{svc: svc}
}

// Catalog handles GET /api/catalog.
//
//	@Summary		Get the whole catalog snapshot
//	@Tags			catalog
//	@Produce		json
//	@Param			If-None-Match	header	string	false	"ETag of a cached snapshot"
//	@Success		200		{object}	CatalogResponse
//	@Success		304		"Not modified"
//	@Security		BearerAuth
//	@Router			/catalog [get]
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	snap := h.svc.Snapshot()
	if etag := checksum.ETag(snap.Checksum); etag != "" {
		w.Header().Set("ETag", etag)
		if checksum.MatchETag(r.Header.Get("If-None-Match"), snap.Checksum) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	writeJSON(w, http.StatusOK, CatalogResponse{
		Version:  snap.Version,
		Checksum: snap.Checksum,
		LoadedAt: snap.LoadedAt,
		Catalog:  snap.Catalog,
	})
}

// Section handles GET /api/sections/{section}.
//
//	@Summary		List one section, optionally filtered
//	@Tags			catalog
//	@Produce		json
//	@Param			section		path		string	true	"Section"	Enums(tools, repositories, articles, extensions, dorks, checklists)
//	@Param			category	query		string	false	"Category, or all (tools and articles only)"
//	@Param			q			query		string	false	"Case-insensitive substring"
//	@Success		200			{object}	SectionResponse
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sections/{section} [get]
func (h *Handler) Section(w http.ResponseWriter, r *http.Request) {
	sec, err := models.ParseSection(chi.URLParam(r, "section"))
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, h.svc.ListSection(r.Context(), sec, q.Get("category"), q.Get("q")))
}

// Dorks handles GET /api/dorks.
//
//	@Summary		Build dork queries for a domain
//	@Tags			dorks
//	@Produce		json
//	@Param			domain	query		string	false	"Target domain"
//	@Success		200		{object}	DorksResponse
//	@Security		BearerAuth
//	@Router			/dorks [get]
func (h *Handler) Dorks(w http.ResponseWriter, r *http.Request) {
	domain := r.URL.Query().Get("domain")
	writeJSON(w, http.StatusOK, DorksResponse{
		Domain: domain,
		Dorks:  h.svc.Dorks(r.Context(), domain),
	})
}

// Search handles GET /api/search.
//
//	@Summary		Search records across sections
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			section	query		string	false	"Restrict to a section"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	var sec models.Section
	if raw := r.URL.Query().Get("section"); raw != "" {
		parsed, err := models.ParseSection(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("unknown section"))
			return
		}
		sec = parsed
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	results, err := h.svc.Search(r.Context(), q, sec, limit)
	if err != nil {
		writeError(w, fmt.Errorf("search %q: %w", q, err))
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Query: q, Results: results})
}

// Stats handles GET /api/stats.
//
//	@Summary		Section counts and snapshot metadata
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	StatsResponse
//	@Security		BearerAuth
//	@Router			/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Stats(r.Context()))
}
