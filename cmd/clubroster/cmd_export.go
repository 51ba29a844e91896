package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/clubroster/internal/models"
	"github.com/ajitpratap0/clubroster/internal/roster"
	"github.com/ajitpratap0/clubroster/internal/store"
)

func exportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the roster to JSON, YAML or CSV",
		Long: `Export the roster. JSON and YAML carry the full stored document and can be
read back with import. CSV has one row per member per event, for
spreadsheets.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			g := s.runner.Model().Engine().Snapshot()

			var w io.Writer
			if output == "" || output == "-" {
				w = cmd.OutOrStdout()
			} else {
				f, createErr := os.Create(output)
				if createErr != nil {
					return fmt.Errorf("export: creating output file: %w", createErr)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			if err := writeExport(w, strings.ToLower(format), g); err != nil {
				return fmt.Errorf("export: %w", err)
			}

			if output != "" && output != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d members and %d events to %s\n", len(g.Members), len(g.Events), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format: json, yaml or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file path (- for stdout)")
	return cmd
}

func writeExport(w io.Writer, format string, g roster.Graph) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(store.EncodeGraph(g)); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(store.EncodeGraph(g)); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
	case "csv":
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"event", "from", "to", "member", "phone", "email", "roles"}); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
		for i := range g.Events {
			ev := &g.Events[i]
			for _, name := range ev.Roster {
				m := findMember(g, name.Key())
				if m == nil {
					continue
				}
				held := m.RolesFor(ev.Name)
				roles := make([]string, len(held))
				for j, r := range held {
					roles[j] = r.Name
				}
				row := []string{
					string(ev.Name),
					ev.From.Format(cfg.Display.DateFormat),
					ev.To.Format(cfg.Display.DateFormat),
					string(m.Name),
					m.Phone,
					m.Email,
					strings.Join(roles, "; "),
				}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("writing CSV row: %w", err)
				}
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("flushing CSV: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q (use json, yaml or csv)", format)
	}
	return nil
}

func findMember(g roster.Graph, key string) *models.Member {
	for i := range g.Members {
		if g.Members[i].Name.Key() == key {
			return &g.Members[i]
		}
	}
	return nil
}
