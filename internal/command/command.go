// Package command holds one type per user command and the runner that
// applies them to a model.
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ajitpratap0/clubroster/internal/metrics"
	"github.com/ajitpratap0/clubroster/internal/model"
	"github.com/ajitpratap0/clubroster/internal/roster"
	"github.com/ajitpratap0/clubroster/internal/viewstate"
)

// Result is what a command reports back to the user.
type Result struct {
	Feedback string
	// Changed is set when the roster graph was mutated and must be saved.
	Changed bool
}

// Command is a parsed user command.
type Command interface {
	// Name is the command word, e.g. "assign".
	Name() string
	// Execute applies the command to m. On error, m's graph is unchanged.
	Execute(m *model.Model) (Result, error)
}

// GraphSaver persists the roster graph.
type GraphSaver interface {
	Save(ctx context.Context, g roster.Graph) error
}

// SessionSaver persists the view session.
type SessionSaver interface {
	SaveSession(ctx context.Context, s model.Session) error
}

// Runner executes commands one at a time and persists their effects. When
// saving fails the model is rolled back to its state before the command.
type Runner struct {
	model    *model.Model
	store    GraphSaver
	sessions SessionSaver
	logger   *slog.Logger
}

// NewRunner creates a Runner. sessions may be nil when the view session is
// not persisted.
func NewRunner(m *model.Model, store GraphSaver, sessions SessionSaver, logger *slog.Logger) *Runner {
	return &Runner{
		model:    m,
		store:    store,
		sessions: sessions,
		logger:   logger,
	}
}

// Model returns the model the runner applies commands to.
func (r *Runner) Model() *model.Model { return r.model }

// Run executes cmd and saves the graph if it changed.
func (r *Runner) Run(ctx context.Context, cmd Command) (Result, error) {
	engine := r.model.Engine()
	before := engine.Snapshot()
	session := r.model.Session()

	res, err := cmd.Execute(r.model)
	if err != nil {
		metrics.Inc(metrics.CommandsFailed)
		if errors.Is(err, viewstate.ErrInvalidState) {
			metrics.Inc(metrics.GateRejections)
		}
		r.logger.Warn("command failed", "command", cmd.Name(), "state", r.model.Gate().State(), "error", err)
		return Result{}, err
	}

	if res.Changed {
		if err := r.store.Save(ctx, engine.Snapshot()); err != nil {
			engine.Restore(before)
			_ = r.model.ApplySession(session)
			metrics.Inc(metrics.CommandsFailed)
			r.logger.Error("saving roster failed, command rolled back", "command", cmd.Name(), "error", err)
			return Result{}, fmt.Errorf("saving roster: %w", err)
		}
		metrics.Inc(metrics.Saves)
	}

	if r.sessions != nil {
		if err := r.sessions.SaveSession(ctx, r.model.Session()); err != nil {
			r.logger.Warn("saving view session failed", "error", err)
		}
	}

	metrics.Inc(metrics.CommandsExecuted)
	r.logger.Debug("command executed", "command", cmd.Name(), "state", r.model.Gate().State(), "changed", res.Changed)
	r.model.Notify(model.Change{Command: cmd.Name(), State: r.model.Gate().State()})
	return res, nil
}
