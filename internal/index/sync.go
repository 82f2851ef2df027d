package index

import (
	"log/slog"

	"github.com/starford/arsenal/internal/catalog"
)

// Sync brings the index up to date with snap. It rewrites the records only
// when the document checksum changed and reports whether it did. A snapshot
// without a checksum (nothing loaded yet) is skipped.
func Sync(db RecordIndex, snap *catalog.Snapshot, logger *slog.Logger) (bool, error) {
	if snap == nil || snap.Checksum == "" {
		return false, nil
	}
	current, err := db.Checksum()
	if err != nil {
		return false, err
	}
	if current == snap.Checksum {
		logger.Debug("sync: index up to date", slog.String("checksum", snap.Checksum))
		return false, nil
	}

	entries := snap.Catalog.Entries()
	if err := db.ReplaceAll(entries, snap.Checksum); err != nil {
		return false, err
	}
	logger.Info("sync: indexed",
		slog.Int("records", len(entries)),
		slog.String("version", snap.Version))
	return true, nil
}
