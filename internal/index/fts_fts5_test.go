//go:build sqlite_fts5

package index

import "testing"

func TestFTS5_TableExists(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM records_fts`).Scan(&count); err != nil {
		t.Fatalf("records_fts table missing: %v", err)
	}
}

func TestFTS5_SearchWithSnippet(t *testing.T) {
	db := testDB(t)
	if _, err := Sync(db, testSnapshot(t, indexJSON), quietLogger()); err != nil {
		t.Fatal(err)
	}
	hits, err := db.Search("wordlists", "", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].Title != "SecLists" {
		t.Fatalf("hits = %+v", hits)
	}
	if hits[0].Snippet == "" {
		t.Error("expected non-empty snippet")
	}
}

func TestFTS5_QuerySyntaxIsQuoted(t *testing.T) {
	db := testDB(t)
	if _, err := Sync(db, testSnapshot(t, indexJSON), quietLogger()); err != nil {
		t.Fatal(err)
	}
	for _, q := range []string{`"unbalanced`, `NOT`, `a OR`, `title:amass`} {
		if _, err := db.Search(q, "", 10); err != nil {
			t.Errorf("Search(%q): %v", q, err)
		}
	}
}

func TestFTS5_ReplaceClearsOldEntries(t *testing.T) {
	db := testDB(t)
	_, _ = Sync(db, testSnapshot(t, indexJSON), quietLogger())
	_, _ = Sync(db, testSnapshot(t, `{"tools": [{"name": "nuclei"}]}`), quietLogger())

	hits, _ := db.Search("trufflehog", "", 10)
	if len(hits) != 0 {
		t.Errorf("replaced record still in FTS index: %+v", hits)
	}
}

func TestMatchExpr(t *testing.T) {
	if got := matchExpr(`git "x`); got != `"git"* """x"*` {
		t.Errorf("matchExpr = %q", got)
	}
	if matchExpr("   ") != "" {
		t.Error("blank query should produce no expression")
	}
}
