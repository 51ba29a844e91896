package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/clubroster/internal/metrics"
	"github.com/ajitpratap0/clubroster/internal/models"
)

func statsCmd() *cobra.Command {
	var showMetrics bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show roster statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return fmt.Errorf("stats: %w", err)
			}
			m := s.runner.Model()
			members := m.Engine().Members()
			events := m.Engine().Events()
			out := cmd.OutOrStdout()

			assignments, participants := 0, 0
			for i := range members {
				for _, r := range members[i].EventRoles {
					if r.Unassigned {
						participants++
					}
				}
			}
			for i := range events {
				assignments += len(events[i].Roster)
			}

			fmt.Fprintf(out, "Members:     %d\n", len(members))
			fmt.Fprintf(out, "Events:      %d\n", len(events))
			fmt.Fprintf(out, "Assignments: %d (%d without a named role)\n", assignments, participants)
			fmt.Fprintf(out, "View:        %s\n", m.Gate().State())

			if busiest, n := busiestMember(members); n > 0 {
				fmt.Fprintf(out, "Busiest:     %s (%d events)\n", busiest, n)
			}

			if showMetrics {
				fmt.Fprintln(out, "\nCounters (this process):")
				snap := metrics.Snapshot()
				keys := make([]string, 0, len(snap))
				for k := range snap {
					keys = append(keys, k)
				}
				slices.Sort(keys)
				for _, k := range keys {
					fmt.Fprintf(out, "  %-22s %d\n", k, snap[k])
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "also print process counters")
	return cmd
}

// busiestMember returns the member assigned to the most events.
func busiestMember(members []models.Member) (models.Name, int) {
	var best models.Name
	most := 0
	for i := range members {
		seen := make(map[string]bool)
		for _, r := range members[i].EventRoles {
			seen[r.Event.Key()] = true
		}
		if len(seen) > most {
			best, most = members[i].Name, len(seen)
		}
	}
	return best, most
}
