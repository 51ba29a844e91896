package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/clubroster/internal/command"
	"github.com/ajitpratap0/clubroster/internal/models"
)

// pairArgs parses the EVENT MEMBER positional arguments shared by the
// assignment commands.
func pairArgs(args []string) (event, member models.Name, err error) {
	event, err = models.ParseName(args[0])
	if err != nil {
		return "", "", fmt.Errorf("event: %w", err)
	}
	member, err = models.ParseName(args[1])
	if err != nil {
		return "", "", fmt.Errorf("member: %w", err)
	}
	return event, member, nil
}

func assignCmd() *cobra.Command {
	var roles []string

	cmd := &cobra.Command{
		Use:   "assign EVENT MEMBER",
		Short: "Put a member on an event's roster",
		Long: `Put MEMBER on the roster of EVENT with the given roles. Every role must be
one the event declares. Without --role the member joins as a plain
participant.`,
		Example: `  clubroster assign "Spring Gala" "Alex Yeoh" --role Usher`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			event, member, err := pairArgs(args)
			if err != nil {
				return fmt.Errorf("assign: %w", err)
			}
			return execute(cmd, command.Assign{Event: event, Member: member, Roles: roles})
		},
	}

	cmd.Flags().StringArrayVarP(&roles, "role", "r", nil, "event role, repeatable")
	return cmd
}

func assignRoleCmd() *cobra.Command {
	var roles []string

	cmd := &cobra.Command{
		Use:   "assign-role EVENT MEMBER",
		Short: "Give a member already on an event's roster more roles",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			event, member, err := pairArgs(args)
			if err != nil {
				return fmt.Errorf("assign-role: %w", err)
			}
			return execute(cmd, command.AssignRole{Event: event, Member: member, Roles: roles})
		},
	}

	cmd.Flags().StringArrayVarP(&roles, "role", "r", nil, "event role, repeatable")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func unassignCmd() *cobra.Command {
	var roles []string

	cmd := &cobra.Command{
		Use:   "unassign EVENT MEMBER",
		Short: "Take a member off an event, or strip some of its roles",
		Long: `Without --role, take MEMBER off the roster of EVENT along with every role
held there. With --role, strip only those roles; roles the member does not
hold are ignored, and a member left without roles stays on as a participant.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			event, member, err := pairArgs(args)
			if err != nil {
				return fmt.Errorf("unassign: %w", err)
			}
			return execute(cmd, command.Unassign{Event: event, Member: member, Roles: roles})
		},
	}

	cmd.Flags().StringArrayVarP(&roles, "role", "r", nil, "event role to strip, repeatable")
	return cmd
}

func unassignRoleCmd() *cobra.Command {
	var roles []string

	cmd := &cobra.Command{
		Use:   "unassign-role EVENT MEMBER",
		Short: "Strip roles a member holds at an event, keeping it on the roster",
		Long: `Strip the given roles from MEMBER for EVENT. Every role must be declared by
the event and held by the member.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			event, member, err := pairArgs(args)
			if err != nil {
				return fmt.Errorf("unassign-role: %w", err)
			}
			return execute(cmd, command.UnassignRole{Event: event, Member: member, Roles: roles})
		},
	}

	cmd.Flags().StringArrayVarP(&roles, "role", "r", nil, "event role to strip, repeatable")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}
