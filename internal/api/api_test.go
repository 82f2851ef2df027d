package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/starford/arsenal/internal/catalogservice"
	"github.com/starford/arsenal/internal/models"
	"github.com/starford/arsenal/internal/testutil"
)

// testEnv sets up a catalog store, SQLite index, service, and router for testing.
// An empty authToken means disabled mode; a non-empty one means token mode.
func testEnv(t *testing.T, authToken string) (*catalogservice.Service, http.Handler) {
	t.Helper()
	return testEnvWithSSE(t, authToken != "", authToken, nil)
}

func testEnvWithSSE(t *testing.T, authEnabled bool, token string, sseHandler http.Handler) (*catalogservice.Service, http.Handler) {
	t.Helper()

	store := testutil.TestStore(t, testutil.CatalogJSON)
	db := testutil.TestDB(t)
	svc := catalogservice.NewService(store, db, nil)
	if err := svc.SyncIndex(store.Snapshot()); err != nil {
		t.Fatalf("SyncIndex: %v", err)
	}
	router := NewRouter(svc, authEnabled, token, sseHandler, nil)
	return svc, router
}

func get(t *testing.T, router http.Handler, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCatalogEndpoint(t *testing.T) {
	svc, router := testEnv(t, "")

	w := get(t, router, "/catalog", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp CatalogResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Version != svc.Snapshot().Version || len(resp.Catalog.Tools) != 3 {
		t.Errorf("resp = %+v", resp)
	}
	if etag := w.Header().Get("ETag"); etag != `"`+svc.Snapshot().Checksum+`"` {
		t.Errorf("ETag = %q", etag)
	}
}

func TestCatalogEndpoint_NotModified(t *testing.T) {
	_, router := testEnv(t, "")

	etag := get(t, router, "/catalog", nil).Header().Get("ETag")
	w := get(t, router, "/catalog", map[string]string{"If-None-Match": etag})
	if w.Code != http.StatusNotModified {
		t.Errorf("conditional get = %d, want 304", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("304 with body %q", w.Body.String())
	}

	w = get(t, router, "/catalog", map[string]string{"If-None-Match": `"stale"`})
	if w.Code != http.StatusOK {
		t.Errorf("stale etag = %d, want 200", w.Code)
	}
}

func TestSectionEndpoint(t *testing.T) {
	_, router := testEnv(t, "")

	w := get(t, router, "/sections/tools?category=recon", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Section  string        `json:"section"`
		Category string        `json:"category"`
		Total    int           `json:"total"`
		Count    int           `json:"count"`
		Records  []models.Tool `json:"records"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Section != "tools" || resp.Total != 3 || resp.Count != 2 {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Records[0].Name != "amass" || resp.Records[1].Name != "trufflehog" {
		t.Errorf("records out of order: %+v", resp.Records)
	}
}

func TestSectionEndpoint_Unknown(t *testing.T) {
	_, router := testEnv(t, "")
	w := get(t, router, "/sections/exploits", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown section = %d, want 404", w.Code)
	}
}

func TestDorksEndpoint(t *testing.T) {
	_, router := testEnv(t, "")

	w := get(t, router, "/dorks?domain=example.com", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp DorksResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Dorks) != 2 || resp.Dorks[0].Query != "site:example.com filetype:pdf" {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Dorks[0].SearchURL == "" {
		t.Error("search url missing")
	}

	w = get(t, router, "/dorks", nil)
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Dorks[0].SearchURL != "" {
		t.Error("no domain should give no search url")
	}
}

func TestSearchEndpoint(t *testing.T) {
	_, router := testEnv(t, "")

	w := get(t, router, "/search?q=wordlists", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp SearchResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Results) != 1 || resp.Results[0].Title != "SecLists" {
		t.Errorf("results = %+v", resp.Results)
	}
}

func TestSearchMissingQuery(t *testing.T) {
	_, router := testEnv(t, "")
	w := get(t, router, "/search", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing q = %d, want 400", w.Code)
	}
	w = get(t, router, "/search?q=%20%20", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("blank q = %d, want 400", w.Code)
	}
	w = get(t, router, "/search?q=x&section=bogus", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad section = %d, want 400", w.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	_, router := testEnv(t, "")
	w := get(t, router, "/stats", nil)
	var st StatsResponse
	_ = json.Unmarshal(w.Body.Bytes(), &st)
	if !st.Ready || st.Counts["articles"] != 2 {
		t.Errorf("stats = %+v", st)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	_, router := testEnv(t, "secret123")
	w := get(t, router, "/stats", map[string]string{"Authorization": "Bearer secret123"})
	if w.Code != http.StatusOK {
		t.Errorf("authed = %d, want 200", w.Code)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	_, router := testEnv(t, "secret123")
	w := get(t, router, "/catalog", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthed = %d, want 401", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("WWW-Authenticate"), "Bearer") {
		t.Errorf("WWW-Authenticate = %q", w.Header().Get("WWW-Authenticate"))
	}
}

func TestAuthMiddleware_WrongToken(t *testing.T) {
	_, router := testEnv(t, "secret123")
	w := get(t, router, "/catalog", map[string]string{"Authorization": "Bearer wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_Disabled(t *testing.T) {
	_, router := testEnv(t, "")
	w := get(t, router, "/catalog", nil)
	if w.Code != http.StatusOK {
		t.Errorf("no auth = %d, want 200", w.Code)
	}
}

func TestCORS_AllowsLocalOrigin(t *testing.T) {
	_, router := testEnv(t, "")
	w := get(t, router, "/stats", map[string]string{"Origin": "http://localhost:3000"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	w = get(t, router, "/stats", map[string]string{"Origin": "https://evil.test"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("foreign origin allowed: %q", got)
	}
}

// sseStub writes headers and blocks until the request context is done.
var sseStub = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.WriteHeader(http.StatusOK)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
	<-r.Context().Done()
})

func TestSSEEvents_AuthProtected(t *testing.T) {
	_, router := testEnvWithSSE(t, true, "secret", sseStub)

	// No token → 401.
	w := get(t, router, "/events", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("SSE no auth = %d, want 401", w.Code)
	}
}

func TestSSEEvents_AuthDisabled(t *testing.T) {
	_, router := testEnvWithSSE(t, false, "", sseStub)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code == http.StatusUnauthorized {
		t.Error("SSE should not require auth when disabled")
	}
}

func TestSSEEvents_ValidToken(t *testing.T) {
	_, router := testEnvWithSSE(t, true, "tok", sseStub)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code == http.StatusUnauthorized {
		t.Error("SSE with valid token should not 401")
	}
}
