package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/starford/arsenal/internal/apperr"
	"github.com/starford/arsenal/internal/checksum"
	"github.com/starford/arsenal/internal/models"
)

// Snapshot is one immutable load of the catalog document.
type Snapshot struct {
	Catalog  *models.Catalog
	Version  string
	Checksum string
	LoadedAt time.Time
	Issues   []Issue
}

// Empty returns the snapshot served before any document loaded.
func Empty() *Snapshot {
	return &Snapshot{
		Catalog: &models.Catalog{
			Tools:        []models.Tool{},
			Repositories: []models.Repository{},
			Articles:     []models.Article{},
			Extensions:   []models.Extension{},
			Dorks:        []models.Dork{},
			Checklists:   []models.Checklist{},
		},
	}
}

// Parse turns raw document bytes into a snapshot.
func Parse(data []byte, format Format) (*Snapshot, error) {
	c, issues, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Catalog:  c,
		Version:  uuid.NewString(),
		Checksum: checksum.Sum(data),
		LoadedAt: time.Now().UTC(),
		Issues:   issues,
	}, nil
}

type failure struct {
	err error
	at  time.Time
}

// Store holds the current snapshot. Readers never lock: a reload builds a
// complete new snapshot and swaps the pointer.
type Store struct {
	src     Source
	logger  *slog.Logger
	current atomic.Pointer[Snapshot]
	failed  atomic.Pointer[failure]
	loaded  atomic.Bool
}

// NewStore creates a store serving the empty snapshot until Load succeeds.
func NewStore(src Source, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{src: src, logger: logger}
	s.current.Store(Empty())
	return s
}

// NewStaticStore creates a store around an already-parsed snapshot.
func NewStaticStore(snap *Snapshot) *Store {
	s := &Store{logger: slog.Default()}
	s.current.Store(snap)
	s.loaded.Store(true)
	return s
}

// Source returns where the store reads its document from.
func (s *Store) Source() Source {
	return s.src
}

// Snapshot returns the current snapshot. It is never nil.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Ready reports whether a document has loaded successfully at least once.
func (s *Store) Ready() bool {
	return s.loaded.Load()
}

// LoadError returns the error of the most recent load, or nil if it succeeded.
func (s *Store) LoadError() error {
	if f := s.failed.Load(); f != nil {
		return f.err
	}
	return nil
}

// LoadFailedAt returns when the most recent load failed, or the zero time if
// it succeeded.
func (s *Store) LoadFailedAt() time.Time {
	if f := s.failed.Load(); f != nil {
		return f.at
	}
	return time.Time{}
}

// Load reads and parses the document and swaps it in. On failure the
// current snapshot stays in place and the error is remembered.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	snap, err := s.read(ctx)
	if err != nil {
		s.failed.Store(&failure{err: err, at: time.Now().UTC()})
		s.logger.Error("catalog: load failed",
			slog.String("source", s.src.String()),
			slog.String("error", err.Error()))
		return s.Snapshot(), fmt.Errorf("%w: %w", apperr.ErrLoadFailed, err)
	}

	s.current.Store(snap)
	s.failed.Store(nil)
	s.loaded.Store(true)

	for _, issue := range snap.Issues {
		s.logger.Warn("catalog: record issue", slog.String("issue", issue.String()))
	}
	attrs := []any{
		slog.String("source", s.src.String()),
		slog.String("version", snap.Version),
		slog.Int("issues", len(snap.Issues)),
	}
	for _, sec := range models.Sections {
		attrs = append(attrs, slog.Int(string(sec), snap.Catalog.Count(sec)))
	}
	s.logger.Info("catalog: loaded", attrs...)
	return snap, nil
}

func (s *Store) read(ctx context.Context) (*Snapshot, error) {
	data, err := s.src.Read(ctx)
	if err != nil {
		return nil, err
	}
	return Parse(data, s.src.Format())
}
