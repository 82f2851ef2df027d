package api

import (
	"time"

	"github.com/starford/arsenal/internal/catalogservice"
	"github.com/starford/arsenal/internal/index"
	"github.com/starford/arsenal/internal/models"
)

// CatalogResponse is the full snapshot.
type CatalogResponse struct {
	Version  string          `json:"version" example:"7f1c..." validate:"required"`
	Checksum string          `json:"checksum" example:"abc123..." validate:"required"`
	LoadedAt time.Time       `json:"loaded_at"`
	Catalog  *models.Catalog `json:"catalog" validate:"required"`
}

// SectionResponse is a filtered section listing (aliased from the domain layer).
type SectionResponse = catalogservice.SectionListing

// DorkQuery is a dork built for a domain (aliased from the domain layer).
type DorkQuery = catalogservice.DorkQuery

// DorksResponse wraps built dork queries.
type DorksResponse struct {
	Domain string      `json:"domain" example:"example.com"`
	Dorks  []DorkQuery `json:"dorks" validate:"required"`
}

// SearchResult is a single search hit in the API response.
type SearchResult = index.Hit

// SearchResponse wraps search results.
type SearchResponse struct {
	Query   string         `json:"query" example:"recon" validate:"required"`
	Results []SearchResult `json:"results" validate:"required"`
}

// StatsResponse is the snapshot summary (aliased from the domain layer).
type StatsResponse = catalogservice.Stats
