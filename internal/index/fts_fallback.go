//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/starford/arsenal/internal/models"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; search uses LIKE over the records table.
	return nil
}

func ftsClear(_ *sql.Tx) error { return nil }

func ftsInsert(_ *sql.Tx, _ models.Entry) error { return nil }

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search performs a LIKE-based search (fallback when FTS5 is not compiled in).
// An empty section searches every section.
func (db *DB) Search(query string, section models.Section, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	like := "%" + likeEscaper.Replace(strings.TrimSpace(query)) + "%"
	rows, err := db.conn.Query(`
		SELECT section, position, title, description, category, link, substr(description, 1, 200)
		FROM records
		WHERE (title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\' OR category LIKE ? ESCAPE '\')
		  AND (? = '' OR section = ?)
		ORDER BY section_idx, position
		LIMIT ?
	`, like, like, like, string(section), string(section), limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	return scanHits(rows)
}
