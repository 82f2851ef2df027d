// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the Arsenal catalog to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/arsenal/internal/catalogservice"
	"github.com/starford/arsenal/internal/models"
)

// CatalogFormatURI is the resource URI of the catalog document format.
const CatalogFormatURI = "arsenal://catalog-format"

// Server wraps the MCP server with Arsenal tools.
type Server struct {
	mcp *server.MCPServer
	svc *catalogservice.Service
}

// New creates a new MCP server with all Arsenal tools registered.
func New(svc *catalogservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Arsenal",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_catalog",
		mcp.WithDescription("Search tools, repositories, articles, extensions, dorks and checklists "+
			"by name, title, description and category."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithString("section", mcp.Description("Optional section to restrict the search to")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 20)")),
	), s.searchCatalog)

	s.mcp.AddTool(mcp.NewTool("list_section",
		mcp.WithDescription("List the records of one catalog section, optionally filtered by category and text."),
		mcp.WithString("section", mcp.Required(),
			mcp.Enum("tools", "repositories", "articles", "extensions", "dorks", "checklists"),
			mcp.Description("Section name")),
		mcp.WithString("category", mcp.Description("Category to keep, tools and articles only (default all)")),
		mcp.WithString("query", mcp.Description("Case-insensitive substring filter")),
	), s.listSection)

	s.mcp.AddTool(mcp.NewTool("build_dork_queries",
		mcp.WithDescription("Build every Google dork for a target domain, with ready-to-open search URLs."),
		mcp.WithString("domain", mcp.Required(), mcp.Description("Target domain, e.g. example.com")),
	), s.buildDorkQueries)

	s.mcp.AddTool(mcp.NewTool("catalog_stats",
		mcp.WithDescription("Record counts per section and the loaded snapshot version."),
	), s.catalogStats)

	s.mcp.AddTool(mcp.NewTool("get_catalog_format",
		mcp.WithDescription("Returns the catalog document format. "+
			"Read it before proposing additions to the catalog file."),
	), s.getCatalogFormat)

	// Resource: catalog document format.
	s.mcp.AddResource(
		mcp.NewResource(CatalogFormatURI, "Catalog Document Format",
			mcp.WithResourceDescription("Structure of the catalog document Arsenal loads."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readCatalogFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchCatalog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if query = strings.TrimSpace(query); query == "" {
		return mcp.NewToolResultError("query must not be blank"), nil
	}
	var sec models.Section
	if raw := req.GetString("section", ""); raw != "" {
		if sec, err = models.ParseSection(raw); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	hits, err := s.svc.Search(ctx, query, sec, req.GetInt("limit", catalogservice.DefaultSearchLimit))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(hits) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("no results for %q", query)), nil
	}
	return jsonResult(hits)
}

func (s *Server) listSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("section")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sec, err := models.ParseSection(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.svc.ListSection(ctx, sec, req.GetString("category", ""), req.GetString("query", "")))
}

func (s *Server) buildDorkQueries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	domain, err := req.RequireString("domain")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if domain == "" {
		return mcp.NewToolResultError("domain must not be empty"), nil
	}
	return jsonResult(s.svc.Dorks(ctx, domain))
}

func (s *Server) catalogStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.svc.Stats(ctx))
}

func (s *Server) getCatalogFormat(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(CatalogFormatContract), nil
}

func (s *Server) readCatalogFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      CatalogFormatURI,
			MIMEType: "text/markdown",
			Text:     CatalogFormatContract,
		},
	}, nil
}
