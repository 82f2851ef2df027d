package index

import "github.com/starford/arsenal/internal/models"

// RecordIndex defines the interface for record indexing operations.
// Consumers should depend on this interface rather than the concrete *DB type.
type RecordIndex interface {
	ReplaceAll(entries []models.Entry, checksum string) error
	Checksum() (string, error)
	Count() (int, error)
	Search(query string, section models.Section, limit int) ([]Hit, error)
	Close() error
}

// Verify *DB satisfies RecordIndex at compile time.
var _ RecordIndex = (*DB)(nil)
