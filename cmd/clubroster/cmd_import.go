package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/clubroster/internal/command"
	"github.com/ajitpratap0/clubroster/internal/roster"
	"github.com/ajitpratap0/clubroster/internal/store"
)

func importCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the roster with one read from a JSON or YAML export",
		Long: `Replace the whole roster with the contents of FILE, as written by export.
The file must pass the same integrity check applied at startup; if it does
not, every problem is listed and the current roster is left untouched.

The format is taken from the file extension unless --format is given. Use -
to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var r io.Reader
			if path == "-" {
				r = cmd.InOrStdin()
			} else {
				f, openErr := os.Open(path)
				if openErr != nil {
					return fmt.Errorf("import: opening file: %w", openErr)
				}
				defer func() { _ = f.Close() }()
				r = f
			}

			if format == "" {
				format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
			}
			g, err := readImport(r, format)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			return execute(cmd, command.Replace{Graph: g})
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "input format: json or yaml (default: from extension)")
	return cmd
}

func readImport(r io.Reader, format string) (roster.Graph, error) {
	var doc store.Document
	switch format {
	case "json":
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return roster.Graph{}, fmt.Errorf("decoding JSON: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return roster.Graph{}, fmt.Errorf("decoding YAML: %w", err)
		}
	default:
		return roster.Graph{}, fmt.Errorf("unsupported format %q (use json or yaml)", format)
	}
	return store.DecodeDocument(doc)
}
