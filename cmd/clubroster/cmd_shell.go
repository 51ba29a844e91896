package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

const shellPrompt = "clubroster> "

var inShell bool

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands interactively against one open roster",
		Long: `Start an interactive session. Each line is a clubroster command without the
leading "clubroster", e.g. assign "Spring Gala" "Alex Yeoh" --role Usher.
Quote names that contain spaces. Type exit or quit, or press Ctrl+D, to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if inShell {
				return fmt.Errorf("shell: already running")
			}
			s, err := openSession(cmd)
			if err != nil {
				return fmt.Errorf("shell: %w", err)
			}
			inShell = true
			defer func() { inShell = false }()

			ctx := cmd.Context()
			if err := s.renderer.View(s.runner.Model()); err != nil {
				s.renderer.Error(err)
			}

			reader := newLineReader(cmd.InOrStdin(), cmd.OutOrStdout())
			for ctx.Err() == nil {
				line, err := reader.ReadLine(shellPrompt)
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return fmt.Errorf("shell: reading input: %w", err)
				}
				words, err := tokenize(line)
				if err != nil {
					s.renderer.Error(err)
					continue
				}
				if len(words) == 0 {
					continue
				}
				if words[0] == "exit" || words[0] == "quit" {
					return nil
				}

				root := newRootCmd()
				root.SetArgs(words)
				root.SetIn(cmd.InOrStdin())
				root.SetOut(cmd.OutOrStdout())
				root.SetErr(cmd.ErrOrStderr())
				root.SilenceErrors = true
				if err := root.ExecuteContext(ctx); err != nil {
					s.renderer.Error(err)
				}
			}
			return nil
		},
	}
}
