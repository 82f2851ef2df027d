// Package testutil provides shared test helpers for catalogs and databases.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/arsenal/internal/catalog"
	"github.com/starford/arsenal/internal/index"
)

// CatalogJSON is a small catalog covering every section.
const CatalogJSON = `{
  "tools": [
    {"name": "amass", "description": "Subdomain enumeration", "category": "recon", "icon": "fa-sitemap", "link": "https://github.com/owasp-amass/amass"},
    {"name": "trufflehog", "description": "A Git history scanner", "category": "recon", "icon": "fa-key", "link": "https://github.com/trufflesecurity/trufflehog"},
    {"name": "sherlock", "description": "Username hunting", "category": "osint", "icon": "fa-user", "link": "https://github.com/sherlock-project/sherlock"}
  ],
  "repositories": [
    {"name": "SecLists", "description": "Wordlists for fuzzing", "category": "wordlists", "link": "https://github.com/danielmiessler/SecLists"}
  ],
  "articles": [
    {"title": "IDOR 101", "description": "Access control bugs", "category": "web", "date": "2024-01-02", "readTime": "5 min", "link": "https://example.com/idor"},
    {"title": "Recon at scale", "description": "Automating asset discovery", "category": "recon", "date": "2024-03-09", "readTime": "8 min", "link": "https://example.com/recon"}
  ],
  "extensions": [
    {"name": "Wappalyzer", "description": "Tech detection", "icon": "fa-firefox", "link": "https://addons.mozilla.org/wappalyzer", "store": "Firefox Add-ons"},
    {"name": "Trufflehog Chrome", "description": "Secrets in pages", "icon": "fa-github", "link": "https://github.com/trufflesecurity/Trufflehog-Chrome-Extension", "store": "GitHub"}
  ],
  "dorks": [
    {"name": "PDF files", "description": "Public documents", "icon": "fa-file-pdf", "query": "site:{domain} filetype:pdf"},
    {"name": "Login pages", "description": "Find logins", "icon": "fa-lock", "query": "site:{domain} inurl:login"}
  ],
  "checklists": [
    {"name": "WSTG", "description": "Web security testing guide", "category": "web", "link": "https://owasp.org/www-project-web-security-testing-guide/"}
  ]
}`

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "arsenal-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestSnapshot parses a JSON catalog document.
func TestSnapshot(t *testing.T, doc string) *catalog.Snapshot {
	t.Helper()
	snap, err := catalog.Parse([]byte(doc), catalog.FormatJSON)
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}
	return snap
}

// TestStore returns a loaded store serving doc.
func TestStore(t *testing.T, doc string) *catalog.Store {
	t.Helper()
	return catalog.NewStaticStore(TestSnapshot(t, doc))
}

// WriteCatalog writes doc to catalog.json in dir and returns its path.
func WriteCatalog(t *testing.T, dir, doc string) string {
	t.Helper()
	p := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(p, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}
