package index

import (
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/starford/arsenal/internal/models"
)

const defaultLimit = 20

const checksumKey = "catalog_checksum"

// Hit is one search result.
type Hit struct {
	Section     models.Section `json:"section"`
	Position    int            `json:"position"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category,omitempty"`
	Link        string         `json:"link,omitempty"`
	Snippet     string         `json:"snippet"`
}

// ReplaceAll swaps the indexed records for entries and stores checksum, in
// one transaction.
func (db *DB) ReplaceAll(entries []models.Entry, checksum string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return fmt.Errorf("index: clear records: %w", err)
	}
	if err := ftsClear(tx); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO records (section, section_idx, position, title, description, category, link)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("index: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(string(e.Section), sectionIndex(e.Section), e.Position, e.Title, e.Description, e.Category, e.Link); err != nil {
			return fmt.Errorf("index: insert record: %w", err)
		}
		if err := ftsInsert(tx, e); err != nil {
			return err
		}
	}

	_, err = tx.Exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, checksumKey, checksum)
	if err != nil {
		return fmt.Errorf("index: store checksum: %w", err)
	}

	return tx.Commit()
}

// Checksum returns the checksum of the indexed document, or "" if nothing
// has been indexed yet.
func (db *DB) Checksum() (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT value FROM meta WHERE key = ?`, checksumKey).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: checksum: %w", err)
	}
	return cs, nil
}

// Count returns the number of indexed records.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT count(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("index: count: %w", err)
	}
	return n, nil
}

func sectionIndex(s models.Section) int {
	return slices.Index(models.Sections, s)
}

func scanHits(rows *sql.Rows) ([]Hit, error) {
	defer rows.Close()
	out := []Hit{}
	for rows.Next() {
		var h Hit
		var sec string
		if err := rows.Scan(&sec, &h.Position, &h.Title, &h.Description, &h.Category, &h.Link, &h.Snippet); err != nil {
			return nil, err
		}
		h.Section = models.Section(sec)
		out = append(out, h)
	}
	return out, rows.Err()
}
