//go:build !sqlite_fts5

package index

import "testing"

func TestLikeSearch_CaseInsensitiveSubstring(t *testing.T) {
	db := testDB(t)
	if _, err := Sync(db, testSnapshot(t, indexJSON), quietLogger()); err != nil {
		t.Fatal(err)
	}
	hits, err := db.Search("ENUMER", "", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].Title != "amass" {
		t.Errorf("hits = %+v", hits)
	}
}

func TestLikeSearch_WildcardsAreLiteral(t *testing.T) {
	db := testDB(t)
	if _, err := Sync(db, testSnapshot(t, indexJSON), quietLogger()); err != nil {
		t.Fatal(err)
	}
	hits, err := db.Search("%", "", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("%% matched everything: %+v", hits)
	}
}
