package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ajitpratap0/clubroster/internal/model"
)

// SessionStore keeps the view session in a small JSON file so list indices
// stay meaningful from one invocation to the next.
type SessionStore struct {
	path string
}

// NewSessionStore creates a session store at path.
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// LoadSession reads the saved session. A missing file yields the zero session.
func (s *SessionStore) LoadSession(_ context.Context) (model.Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return model.Session{}, nil
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("reading session %s: %w", s.path, err)
	}
	var sess model.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return model.Session{}, fmt.Errorf("decoding session %s: %w", s.path, err)
	}
	return sess, nil
}

// SaveSession writes sess atomically.
func (s *SessionStore) SaveSession(_ context.Context, sess model.Session) error {
	if err := writeJSONAtomic(s.path, sess); err != nil {
		return fmt.Errorf("saving session %s: %w", s.path, err)
	}
	return nil
}
