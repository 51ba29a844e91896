package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/clubroster/internal/command"
	"github.com/ajitpratap0/clubroster/internal/models"
	"github.com/ajitpratap0/clubroster/internal/roster"
)

func addEventCmd() *cobra.Command {
	var (
		from   string
		to     string
		detail string
		roles  []string
	)

	cmd := &cobra.Command{
		Use:   "add-event NAME",
		Short: "Add an event with the roles members can hold at it",
		Example: `  clubroster add-event "Spring Gala" --from "2024-03-09 18:00" --to "2024-03-09 23:00" --role Usher --role Host`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseWhen(from)
			if err != nil {
				return fmt.Errorf("add-event: --from: %w", err)
			}
			end, err := parseWhen(to)
			if err != nil {
				return fmt.Errorf("add-event: --to: %w", err)
			}
			ev, err := models.NewEvent(args[0], start, end, detail, roles)
			if err != nil {
				return fmt.Errorf("add-event: %w", err)
			}
			return execute(cmd, command.AddEvent{Event: ev})
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "start time")
	cmd.Flags().StringVarP(&to, "to", "t", "", "end time")
	cmd.Flags().StringVarP(&detail, "detail", "d", "", "free-text description")
	cmd.Flags().StringArrayVarP(&roles, "role", "r", nil, "role members can hold at the event, repeatable")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func editEventCmd() *cobra.Command {
	var (
		name   string
		from   string
		to     string
		detail string
	)

	cmd := &cobra.Command{
		Use:   "edit-event INDEX",
		Short: "Edit the event at INDEX in the event list",
		Long: `Edit the event at INDEX in the event list currently shown. Only the given
fields change; the role list and roster are kept. Only allowed while the
event list is on display.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return fmt.Errorf("edit-event: %w", err)
			}
			var edit roster.EventEdit
			flags := cmd.Flags()
			if flags.Changed("name") {
				n, err := models.ParseName(name)
				if err != nil {
					return fmt.Errorf("edit-event: %w", err)
				}
				edit.Name = &n
			}
			if flags.Changed("from") {
				t, err := parseWhen(from)
				if err != nil {
					return fmt.Errorf("edit-event: --from: %w", err)
				}
				edit.From = &t
			}
			if flags.Changed("to") {
				t, err := parseWhen(to)
				if err != nil {
					return fmt.Errorf("edit-event: --to: %w", err)
				}
				edit.To = &t
			}
			if flags.Changed("detail") {
				edit.Detail = &detail
			}
			if edit == (roster.EventEdit{}) {
				return fmt.Errorf("edit-event: at least one field to edit must be provided")
			}
			return execute(cmd, command.EditEvent{Index: index, Edit: edit})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new name")
	cmd.Flags().StringVarP(&from, "from", "f", "", "new start time")
	cmd.Flags().StringVarP(&to, "to", "t", "", "new end time")
	cmd.Flags().StringVarP(&detail, "detail", "d", "", "new description")
	return cmd
}

func deleteEventCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-event INDEX",
		Short: "Delete the event at INDEX and strip its roles from every member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return fmt.Errorf("delete-event: %w", err)
			}
			return execute(cmd, command.DeleteEvent{Index: index})
		},
	}
}

func findEventCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find-event KEYWORD...",
		Short: "Filter the event list by whole-word name keywords",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, command.FindEvent{Keywords: args})
		},
	}
}

func listEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list-events",
		Aliases: []string{"events"},
		Short:   "List every event",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, command.ListEvents{})
		},
	}
}

func viewEventCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view-event NAME",
		Short: "Show one event with its roster and the roles each member holds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := models.ParseName(args[0])
			if err != nil {
				return fmt.Errorf("view-event: %w", err)
			}
			return execute(cmd, command.ViewEvent{Event: n})
		},
	}
}

// parseWhen reads a time in the configured display layout.
func parseWhen(s string) (time.Time, error) {
	return models.ParseDateTime(cfg.Display.DateFormat, s)
}
