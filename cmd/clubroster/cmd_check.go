package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/clubroster/internal/roster"
	"github.com/ajitpratap0/clubroster/internal/store"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the stored roster for consistency without loading it",
		Long: `Read the stored roster and run the integrity check over it, listing every
problem found. Nothing is modified or quarantined.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			st, err := store.New(ctx, cfg.Storage, logger)
			if err != nil {
				return fmt.Errorf("check: opening storage: %w", err)
			}
			defer func() { _ = st.Close() }()

			g, err := st.Load(ctx)
			if errors.Is(err, store.ErrNoData) {
				fmt.Fprintln(out, "Storage: OK (empty)")
				return nil
			}
			if err != nil {
				fmt.Fprintf(out, "Storage: FAIL (%v)\n", err)
				return fmt.Errorf("check: stored roster is unreadable")
			}
			fmt.Fprintf(out, "Storage: OK (%d members, %d events)\n", len(g.Members), len(g.Events))

			err = roster.ValidateGraph(g.Members, g.Events)
			var ie *roster.IntegrityError
			if !errors.As(err, &ie) {
				fmt.Fprintln(out, "Integrity: OK")
				return nil
			}
			fmt.Fprintf(out, "Integrity: FAIL (%d problems)\n", ie.Count())
			for _, p := range ie.Graph {
				fmt.Fprintf(out, "  - %s\n", p)
			}
			for _, v := range ie.Members {
				fmt.Fprintf(out, "  - %s\n", v.Member)
				for _, p := range v.Problems {
					fmt.Fprintf(out, "      %s\n", p)
				}
			}
			return fmt.Errorf("check: %w", roster.ErrIntegrityViolation)
		},
	}
}
