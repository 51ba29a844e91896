package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/clubroster/internal/config"
)

var cfg *config.Config

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := newRootCmd()
	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	closeSession()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. The shell builds a fresh tree for every
// line it reads, so flag values never leak from one line to the next.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clubroster",
		Short: "clubroster: club members, events and who does what at each event",
		Long: `clubroster keeps a roster of club members and events, and the roles each
member holds at each event. Index arguments refer to the list shown by the
last list, find or add command.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg != nil {
				return nil
			}
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
	}

	rootCmd.AddCommand(
		addMemberCmd(),
		editMemberCmd(),
		deleteMemberCmd(),
		findMemberCmd(),
		listMembersCmd(),
		addEventCmd(),
		editEventCmd(),
		deleteEventCmd(),
		findEventCmd(),
		listEventsCmd(),
		viewEventCmd(),
		assignCmd(),
		assignRoleCmd(),
		unassignCmd(),
		unassignRoleCmd(),
		clearCmd(),
		statsCmd(),
		checkCmd(),
		exportCmd(),
		importCmd(),
		shellCmd(),
	)

	return rootCmd
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if cfg != nil {
		switch strings.ToLower(cfg.Logging.Level) {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "error":
			level = slog.LevelError
		}
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg != nil && cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
