package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xvierd/kicks-cli/internal/domain"
)

var (
	usersLimit int
	userLabel  string
)

// usersCmd groups the known-user commands.
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage known users",
	Long:  `List, add, and search the users whose kicks have been viewed on this machine.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return usersListCmd.RunE(cmd, args)
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known users, most recently seen first",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := app.kicks.KnownUsers(cmd.Context(), usersLimit)
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		return printUsers(cmd.OutOrStdout(), users)
	},
}

var usersAddCmd = &cobra.Command{
	Use:   "add <user-id>",
	Short: "Remember a user id, optionally with a label",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := domain.ParseUserIdentity(args[0])
		if err != nil {
			return fmt.Errorf("user %q: %w", args[0], err)
		}
		u, err := app.kicks.AddUser(cmd.Context(), id, userLabel)
		if err != nil {
			return fmt.Errorf("failed to add user: %w", err)
		}
		if jsonOutput {
			return printUsers(cmd.OutOrStdout(), []*domain.KnownUser{u})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Added %s (%s)\n", u.DisplayName(), u.ID)
		return nil
	},
}

var usersFindCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Fuzzy-search known users by label or id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := app.kicks.SearchUsers(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to search users: %w", err)
		}
		return printUsers(cmd.OutOrStdout(), users)
	},
}

func printUsers(w io.Writer, users []*domain.KnownUser) error {
	if jsonOutput {
		list := make([]map[string]interface{}, 0, len(users))
		for _, u := range users {
			list = append(list, map[string]interface{}{
				"user_id":   u.ID.String(),
				"label":     u.Label,
				"last_seen": u.LastSeen.Format("2006-01-02T15:04:05"),
			})
		}
		jsonData, err := json.MarshalIndent(map[string]interface{}{
			"users": list,
			"count": len(list),
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal users: %w", err)
		}
		fmt.Fprintln(w, string(jsonData))
		return nil
	}

	if len(users) == 0 {
		fmt.Fprintln(w, "No users found.")
		return nil
	}

	fmt.Fprintf(w, "👶 Users (%d):\n\n", len(users))
	for _, u := range users {
		label := u.Label
		if label == "" {
			label = "-"
		}
		fmt.Fprintf(w, "  %-14s %-16s seen %s\n", u.ID, label, u.LastSeen.Format("Jan 2 15:04"))
	}
	return nil
}

func init() {
	usersCmd.PersistentFlags().IntVarP(&usersLimit, "limit", "n", 20, "Maximum number of users to list (0 for all)")
	usersAddCmd.Flags().StringVarP(&userLabel, "label", "l", "", "Display label for the user")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersFindCmd)
}
