//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/starford/arsenal/internal/models"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS records_fts USING fts5(
			section UNINDEXED,
			position UNINDEXED,
			title,
			description,
			category,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsClear(tx *sql.Tx) error {
	if _, err := tx.Exec(`DELETE FROM records_fts`); err != nil {
		return fmt.Errorf("index: clear fts: %w", err)
	}
	return nil
}

func ftsInsert(tx *sql.Tx, e models.Entry) error {
	_, err := tx.Exec(`INSERT INTO records_fts (section, position, title, description, category) VALUES (?, ?, ?, ?, ?)`,
		string(e.Section), e.Position, e.Title, e.Description, e.Category)
	if err != nil {
		return fmt.Errorf("index: insert fts: %w", err)
	}
	return nil
}

// matchExpr quotes every term as a prefix phrase so user input is never
// parsed as FTS5 query syntax.
func matchExpr(query string) string {
	terms := strings.Fields(query)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"*`
	}
	return strings.Join(terms, " ")
}

// Search performs an FTS5 full-text search and returns hits with snippets.
// An empty section searches every section.
func (db *DB) Search(query string, section models.Section, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	expr := matchExpr(query)
	if expr == "" {
		return []Hit{}, nil
	}
	rows, err := db.conn.Query(`
		SELECT r.section, r.position, r.title, r.description, r.category, r.link,
		       snippet(records_fts, 3, '<b>', '</b>', '...', 16)
		FROM records_fts f
		JOIN records r ON r.section = f.section AND r.position = f.position
		WHERE records_fts MATCH ?
		  AND (? = '' OR r.section = ?)
		ORDER BY r.section_idx, r.position
		LIMIT ?
	`, expr, string(section), string(section), limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	return scanHits(rows)
}
