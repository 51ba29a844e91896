package store

import (
	"context"
	"errors"

	"github.com/ajitpratap0/clubroster/internal/roster"
)

var (
	// ErrNoData is returned by Load when nothing has been saved yet.
	ErrNoData = errors.New("no roster data stored")

	// ErrCorrupt is returned by Load when stored data exists but cannot be
	// decoded into valid entities.
	ErrCorrupt = errors.New("corrupt roster data")
)

// Store defines the interface for roster persistence. Implementations store
// and return plain graphs; relationship checks happen in LoadEngine.
type Store interface {
	// Load reads the whole graph.
	Load(ctx context.Context) (roster.Graph, error)

	// Save replaces the stored graph with g.
	Save(ctx context.Context, g roster.Graph) error

	// Close cleans up resources.
	Close() error
}

// Quarantiner is implemented by stores that can move unreadable data out of
// the way so the next save does not overwrite it.
type Quarantiner interface {
	// Quarantine moves the current data aside and returns where it went.
	Quarantine() (string, error)
}
