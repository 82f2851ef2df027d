// Package catalog loads the catalog document and publishes read-only snapshots of it.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Format is the encoding of a catalog document.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const maxDocumentBytes = 16 << 20

// Source locates the catalog document: a local file or a remote URL.
// Path wins when both are set.
type Source struct {
	Path    string
	URL     string
	Timeout time.Duration
}

// String describes the source for logs.
func (s Source) String() string {
	if s.Path != "" {
		return s.Path
	}
	return s.URL
}

// IsFile reports whether the source is a local file.
func (s Source) IsFile() bool {
	return s.Path != ""
}

// Format guesses the document format from the file or URL extension.
func (s Source) Format() Format {
	name := s.Path
	if name == "" {
		name = s.URL
		if i := strings.IndexAny(name, "?#"); i >= 0 {
			name = name[:i]
		}
		name = path.Base(name)
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Read fetches the raw document bytes.
func (s Source) Read(ctx context.Context) ([]byte, error) {
	switch {
	case s.Path != "":
		data, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, fmt.Errorf("catalog: read %s: %w", s.Path, err)
		}
		return data, nil
	case s.URL != "":
		return s.fetch(ctx)
	default:
		return nil, errors.New("catalog: either path or url must be provided")
	}
}

func (s Source) fetch(ctx context.Context) ([]byte, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch %s: %w", s.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: fetch %s: unexpected status %d", s.URL, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("catalog: read body: %w", err)
	}
	return data, nil
}
