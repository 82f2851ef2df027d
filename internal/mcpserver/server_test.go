package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/arsenal/internal/catalogservice"
	"github.com/starford/arsenal/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	store := testutil.TestStore(t, testutil.CatalogJSON)
	db := testutil.TestDB(t)
	svc := catalogservice.NewService(store, db, nil)
	if err := svc.SyncIndex(store.Snapshot()); err != nil {
		t.Fatal(err)
	}
	return New(svc, "test")
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so handlers are called directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "search_catalog":
		result, err = srv.searchCatalog(ctx, req)
	case "list_section":
		result, err = srv.listSection(ctx, req)
	case "build_dork_queries":
		result, err = srv.buildDorkQueries(ctx, req)
	case "catalog_stats":
		result, err = srv.catalogStats(ctx, req)
	case "get_catalog_format":
		result, err = srv.getCatalogFormat(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestSearchCatalog(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "search_catalog", map[string]any{"query": "wordlists"})
	if r.IsError || !strings.Contains(resultText(r), "SecLists") {
		t.Errorf("search result = %q", resultText(r))
	}

	r = callTool(t, srv, "search_catalog", map[string]any{"query": "zzz-nothing"})
	if !strings.HasPrefix(resultText(r), "no results") {
		t.Errorf("empty search = %q", resultText(r))
	}

	r = callTool(t, srv, "search_catalog", map[string]any{"query": "x", "section": "bogus"})
	if !r.IsError {
		t.Error("expected error for unknown section")
	}
}

func TestSearchCatalog_MissingQuery(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "search_catalog", map[string]any{})
	if !r.IsError {
		t.Error("expected error without query")
	}
	r = callTool(t, srv, "search_catalog", map[string]any{"query": "   "})
	if !r.IsError {
		t.Error("expected error for a blank query")
	}
}

func TestListSection(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "list_section", map[string]any{"section": "tools", "category": "osint"})
	text := resultText(r)
	if r.IsError || !strings.Contains(text, "sherlock") || strings.Contains(text, "amass") {
		t.Errorf("list = %s", text)
	}
}

func TestBuildDorkQueries(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "build_dork_queries", map[string]any{"domain": "example.com"})
	text := resultText(r)
	if !strings.Contains(text, "site:example.com filetype:pdf") {
		t.Errorf("dorks = %s", text)
	}

	r = callTool(t, srv, "build_dork_queries", map[string]any{"domain": ""})
	if !r.IsError {
		t.Error("expected error for empty domain")
	}
}

func TestCatalogStats(t *testing.T) {
	srv := testServer(t)
	text := resultText(callTool(t, srv, "catalog_stats", map[string]any{}))
	if !strings.Contains(text, `"tools": 3`) {
		t.Errorf("stats = %s", text)
	}
}

func TestCatalogFormat(t *testing.T) {
	srv := testServer(t)
	text := resultText(callTool(t, srv, "get_catalog_format", map[string]any{}))
	if !strings.Contains(text, "{domain}") {
		t.Error("format contract should describe the dork placeholder")
	}

	contents, err := srv.readCatalogFormatResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil || len(contents) != 1 {
		t.Fatalf("resource = %v, %v", contents, err)
	}
	if tc, ok := contents[0].(mcp.TextResourceContents); !ok || tc.URI != CatalogFormatURI {
		t.Errorf("resource contents = %+v", contents[0])
	}
}
