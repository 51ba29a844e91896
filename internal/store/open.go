package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ajitpratap0/clubroster/internal/config"
	"github.com/ajitpratap0/clubroster/internal/metrics"
	"github.com/ajitpratap0/clubroster/internal/roster"
)

// New opens the backend selected by cfg.
func New(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (Store, error) {
	switch cfg.Backend {
	case config.BackendJSON:
		return NewJSONStore(cfg.DataFile, logger), nil
	case config.BackendSQLite:
		return NewSQLiteStore(ctx, cfg.SQLiteFile, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// LoadEngine loads the stored graph into an engine.
//
// Nothing stored yields an empty engine. Stored data that cannot be decoded
// or that fails the integrity check also yields an empty engine, together
// with the error that caused the fallback; when quarantine is set the bad
// data is moved aside first. Any other error is returned with a nil engine.
func LoadEngine(ctx context.Context, st Store, quarantine bool, logger *slog.Logger) (*roster.Engine, error) {
	g, err := st.Load(ctx)
	if errors.Is(err, ErrNoData) {
		logger.Debug("no stored roster, starting empty")
		return roster.New(), nil
	}
	if err != nil && !errors.Is(err, ErrCorrupt) {
		return nil, fmt.Errorf("loading roster: %w", err)
	}

	var engine *roster.Engine
	if err == nil {
		engine, err = roster.Load(g)
		if err == nil {
			return engine, nil
		}
		var ie *roster.IntegrityError
		if errors.As(err, &ie) {
			metrics.IntegrityViolations.Add(int64(ie.Count()))
		}
	}

	metrics.Inc(metrics.LoadFallbacks)
	logger.Warn("stored roster is invalid, starting with an empty roster", "error", err)
	if q, ok := st.(Quarantiner); ok && quarantine {
		dest, qerr := q.Quarantine()
		if qerr != nil {
			logger.Error("quarantining invalid roster failed", "error", qerr)
		} else {
			logger.Warn("invalid roster moved aside", "path", dest)
		}
	}
	return roster.New(), err
}
