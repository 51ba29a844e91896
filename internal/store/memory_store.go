package store

import (
	"context"
	"sync"

	"github.com/ajitpratap0/clubroster/internal/roster"
)

// MemoryStore is an in-memory implementation of Store for tests and
// throwaway sessions.
type MemoryStore struct {
	mu    sync.RWMutex
	graph *roster.Graph
	saves int
	err   error
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith creates a memory store holding a copy of g.
func NewMemoryStoreWith(g roster.Graph) *MemoryStore {
	c := g.Clone()
	return &MemoryStore{graph: &c}
}

// Load returns a copy of the stored graph.
func (m *MemoryStore) Load(_ context.Context) (roster.Graph, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.graph == nil {
		return roster.Graph{}, ErrNoData
	}
	return m.graph.Clone(), nil
}

// Save stores a copy of g, or returns the error set with FailWith.
func (m *MemoryStore) Save(_ context.Context, g roster.Graph) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	// Deep-copy so later engine mutations do not leak into stored data.
	c := g.Clone()
	m.graph = &c
	m.saves++
	return nil
}

// FailWith makes every later Save return err. Pass nil to recover.
func (m *MemoryStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Saves returns the number of successful saves.
func (m *MemoryStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// Close is a no-op for the memory store.
func (m *MemoryStore) Close() error { return nil }
