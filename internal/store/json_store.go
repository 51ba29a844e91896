package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/ajitpratap0/clubroster/internal/roster"
)

// JSONStore implements Store on a single JSON file.
type JSONStore struct {
	path   string
	logger *slog.Logger
}

// NewJSONStore creates a store backed by the file at path. The file is
// created on first save.
func NewJSONStore(path string, logger *slog.Logger) *JSONStore {
	return &JSONStore{path: path, logger: logger}
}

// Path returns the data file location.
func (s *JSONStore) Path() string { return s.path }

// Load reads and decodes the data file.
func (s *JSONStore) Load(_ context.Context) (roster.Graph, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return roster.Graph{}, ErrNoData
	}
	if err != nil {
		return roster.Graph{}, fmt.Errorf("reading %s: %w", s.path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return roster.Graph{}, fmt.Errorf("decoding %s: %w: %w", s.path, ErrCorrupt, err)
	}
	g, err := DecodeDocument(doc)
	if err != nil {
		return roster.Graph{}, fmt.Errorf("decoding %s: %w: %w", s.path, ErrCorrupt, err)
	}
	s.logger.Debug("roster loaded", "path", s.path, "members", len(g.Members), "events", len(g.Events))
	return g, nil
}

// Save writes g atomically.
func (s *JSONStore) Save(_ context.Context, g roster.Graph) error {
	if err := writeJSONAtomic(s.path, EncodeGraph(g)); err != nil {
		return fmt.Errorf("saving %s: %w", s.path, err)
	}
	return nil
}

// Quarantine renames the data file to <path>.<id>.invalid.
func (s *JSONStore) Quarantine() (string, error) {
	dest := fmt.Sprintf("%s.%s.invalid", s.path, uuid.New().String()[:8])
	if err := os.Rename(s.path, dest); err != nil {
		return "", fmt.Errorf("quarantining %s: %w", s.path, err)
	}
	return dest, nil
}

// Close is a no-op; the file is not held open.
func (s *JSONStore) Close() error { return nil }
