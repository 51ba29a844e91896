package main

import (
	"github.com/spf13/cobra"

	"github.com/ajitpratap0/clubroster/internal/command"
)

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every member and event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, command.Clear{})
		},
	}
}
