package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/clubroster/internal/command"
	"github.com/ajitpratap0/clubroster/internal/models"
	"github.com/ajitpratap0/clubroster/internal/roster"
)

func addMemberCmd() *cobra.Command {
	var (
		phone string
		email string
		roles []string
	)

	cmd := &cobra.Command{
		Use:   "add-member NAME",
		Short: "Add a member to the club",
		Example: `  clubroster add-member "Alex Yeoh" --phone 98765432 --email alex@example.com --role Treasurer`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := models.NewMember(args[0], phone, email, roles)
			if err != nil {
				return fmt.Errorf("add-member: %w", err)
			}
			return execute(cmd, command.AddMember{Member: m})
		},
	}

	cmd.Flags().StringVarP(&phone, "phone", "p", "", "phone number (digits only)")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	cmd.Flags().StringArrayVarP(&roles, "role", "r", nil, "club role, repeatable")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func editMemberCmd() *cobra.Command {
	var (
		name       string
		phone      string
		email      string
		roles      []string
		clearRoles bool
	)

	cmd := &cobra.Command{
		Use:   "edit-member INDEX",
		Short: "Edit the member at INDEX in the member list",
		Long: `Edit the member at INDEX in the member list currently shown. Only the
given fields change. --role replaces the member's club roles; --clear-roles
removes them all. Event assignments are kept, and a rename is reflected in
every event roster.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return fmt.Errorf("edit-member: %w", err)
			}
			var edit roster.MemberEdit
			flags := cmd.Flags()
			if flags.Changed("name") {
				n, err := models.ParseName(name)
				if err != nil {
					return fmt.Errorf("edit-member: %w", err)
				}
				edit.Name = &n
			}
			if flags.Changed("phone") {
				edit.Phone = &phone
			}
			if flags.Changed("email") {
				edit.Email = &email
			}
			if flags.Changed("role") && clearRoles {
				return fmt.Errorf("edit-member: --role and --clear-roles cannot be combined")
			}
			if flags.Changed("role") || clearRoles {
				parsed, err := models.ParseMemberRoles(roles)
				if err != nil {
					return fmt.Errorf("edit-member: %w", err)
				}
				edit.Roles = &parsed
			}
			if edit == (roster.MemberEdit{}) {
				return fmt.Errorf("edit-member: at least one field to edit must be provided")
			}
			return execute(cmd, command.EditMember{Index: index, Edit: edit})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new name")
	cmd.Flags().StringVarP(&phone, "phone", "p", "", "new phone number")
	cmd.Flags().StringVarP(&email, "email", "e", "", "new email address")
	cmd.Flags().StringArrayVarP(&roles, "role", "r", nil, "replacement club role, repeatable")
	cmd.Flags().BoolVar(&clearRoles, "clear-roles", false, "remove every club role")
	return cmd
}

func deleteMemberCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-member INDEX",
		Short: "Delete the member at INDEX and remove it from every event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return fmt.Errorf("delete-member: %w", err)
			}
			return execute(cmd, command.DeleteMember{Index: index})
		},
	}
}

func findMemberCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find-member KEYWORD...",
		Short: "List members whose name contains any of the keywords as a whole word",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, command.FindMember{Keywords: args})
		},
	}
}

func listMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list-members",
		Aliases: []string{"members"},
		Short:   "List every member",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, command.ListMembers{})
		},
	}
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("index must be a positive integer, got %q", s)
	}
	return n, nil
}
