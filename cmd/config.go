package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xvierd/kicks-cli/internal/config"
	"github.com/xvierd/kicks-cli/internal/domain"
)

var configUserLabel string

// configCmd prints the effective configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration after the config file and KICKS_* environment
overrides have been applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printConfig(cmd.OutOrStdout(), app.config)
	},
}

var configSetUserCmd = &cobra.Command{
	Use:   "set-user <user-id>",
	Short: "Set the default user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := domain.ParseUserIdentity(args[0])
		if err != nil {
			return fmt.Errorf("user %q: %w", args[0], err)
		}

		if err := updateConfigFile(func(c *config.Config) {
			c.User.ID = id.String()
			c.User.Label = configUserLabel
		}); err != nil {
			return err
		}
		app.config.User.ID = id.String()
		app.config.User.Label = configUserLabel
		if _, err := app.kicks.AddUser(cmd.Context(), id, configUserLabel); err != nil {
			app.logger.Warn("failed to remember user", "user", id, "err", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "  Saved: default user %s\n", id)
		return nil
	},
}

var configZeroCmd = &cobra.Command{
	Use:   "zero-mode <hide|ring>",
	Short: "Choose what a zero count shows",
	Long: `Choose what the widget shows when today's count is zero:
  hide  no chart until the first kick (default)
  ring  an empty ring once the count has loaded`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{config.ZeroModeHide, config.ZeroModeRing},
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := args[0]
		if mode != config.ZeroModeHide && mode != config.ZeroModeRing {
			return fmt.Errorf("invalid zero mode %q (want %s or %s)", mode, config.ZeroModeHide, config.ZeroModeRing)
		}
		if err := updateConfigFile(func(c *config.Config) {
			c.Display.ZeroMode = mode
		}); err != nil {
			return err
		}
		app.config.Display.ZeroMode = mode
		fmt.Fprintf(cmd.OutOrStdout(), "  Saved: zero mode %s\n", mode)
		return nil
	},
}

// updateConfigFile applies change to the config as stored on disk, leaving
// out flag and KICKS_* overrides that only apply to this run.
func updateConfigFile(change func(*config.Config)) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	stored, err := config.LoadFileOnly(path)
	if err != nil {
		return err
	}
	change(stored)
	if err := config.SaveTo(path, stored); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) error {
	if jsonOutput {
		jsonData, err := json.MarshalIndent(map[string]interface{}{
			"api_url":       cfg.API.BaseURL,
			"timeout":       cfg.Timeout().String(),
			"user_id":       cfg.User.ID,
			"user_label":    cfg.User.Label,
			"zero_mode":     cfg.Display.ZeroMode,
			"compact":       cfg.Display.Compact,
			"notifications": cfg.Notifications.Enabled,
			"sound":         cfg.Notifications.Sound,
			"mcp":           cfg.MCP.Enabled,
			"data_dir":      cfg.Storage.DataDir,
			"log_level":     cfg.Log.Level,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Fprintln(w, string(jsonData))
		return nil
	}

	user := cfg.User.ID
	if user == "" {
		user = "(none)"
	} else if cfg.User.Label != "" {
		user += " (" + cfg.User.Label + ")"
	}

	notifStatus := "off"
	if cfg.Notifications.Enabled {
		notifStatus = "on"
		if cfg.Notifications.Sound {
			notifStatus = "on (with sound)"
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Current configuration:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "    API:            %s\n", cfg.API.BaseURL)
	fmt.Fprintf(w, "    Timeout:        %s\n", cfg.Timeout())
	fmt.Fprintf(w, "    User:           %s\n", user)
	fmt.Fprintf(w, "    Zero mode:      %s\n", cfg.Display.ZeroMode)
	fmt.Fprintf(w, "    Compact:        %v\n", cfg.Display.Compact)
	fmt.Fprintf(w, "    Notifications:  %s\n", notifStatus)
	fmt.Fprintf(w, "    MCP:            %v\n", cfg.MCP.Enabled)
	fmt.Fprintf(w, "    Data dir:       %s\n", cfg.Storage.DataDir)
	fmt.Fprintf(w, "    Log level:      %s\n", cfg.Log.Level)
	fmt.Fprintln(w)
	return nil
}

func init() {
	configSetUserCmd.Flags().StringVarP(&configUserLabel, "label", "l", "", "Display label for the user")

	configCmd.AddCommand(configSetUserCmd)
	configCmd.AddCommand(configZeroCmd)
}
