package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ajitpratap0/clubroster/internal/command"
	"github.com/ajitpratap0/clubroster/internal/model"
	"github.com/ajitpratap0/clubroster/internal/store"
	"github.com/ajitpratap0/clubroster/internal/ui"
)

// session is the open roster: storage, the live model and the renderer. A
// one-shot invocation opens it once; the shell keeps it open across lines.
type session struct {
	logger   *slog.Logger
	store    store.Store
	runner   *command.Runner
	renderer *ui.Renderer
}

var current *session

func openSession(cmd *cobra.Command) (*session, error) {
	if current != nil {
		return current, nil
	}
	logger := newLogger()
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	renderer := ui.NewRenderer(out, cfg.Display.Color && isTerminal(out), cfg.Display.DateFormat)

	st, err := store.New(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	engine, loadErr := store.LoadEngine(ctx, st, cfg.Storage.QuarantineInvalid, logger)
	if engine == nil {
		_ = st.Close()
		return nil, loadErr
	}

	m := model.New(engine)
	sessions := store.NewSessionStore(cfg.Storage.SessionFile)
	if loadErr != nil {
		renderer.Warn(fmt.Sprintf("stored roster rejected, starting empty: %v", loadErr))
	} else {
		sess, err := sessions.LoadSession(ctx)
		if err != nil {
			logger.Warn("ignoring unreadable view session", "error", err)
		} else if err := m.ApplySession(sess); err != nil {
			logger.Warn("view session reset", "error", err)
		}
	}
	m.Subscribe(renderer.Listener(m))

	current = &session{
		logger:   logger,
		store:    st,
		runner:   command.NewRunner(m, st, sessions, logger),
		renderer: renderer,
	}
	return current, nil
}

func closeSession() {
	if current == nil {
		return
	}
	if err := current.store.Close(); err != nil {
		current.logger.Warn("closing storage", "error", err)
	}
	current = nil
}

// execute runs c against the open session and prints its feedback. The view
// itself is re-rendered by the model listener.
func execute(cmd *cobra.Command, c command.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Name(), err)
	}
	res, err := s.runner.Run(cmd.Context(), c)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Name(), err)
	}
	s.renderer.Feedback(res.Feedback)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
