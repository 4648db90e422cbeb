// Package cmd provides the CLI commands for the kicks application.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	userFlag   string
	dbPath     string
	apiURLFlag string
	jsonOutput bool
	inlineMode bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kicks",
	Short: "kicks - daily baby kick counter",
	Long: `kicks shows today's baby kick count as a progress ring toward the
daily goal of 10, with a short note on how active the baby has been.

Run "kicks" with no arguments to open the live dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runDashboard,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if cerr := cleanupServices(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "Numeric user id (default: config user.id or KICKS_USER_ID)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: ~/.kicks/kicks.db)")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "Base URL of the kick counting service")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&inlineMode, "inline", "i", false, "Compact inline view (no fullscreen)")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("kicks\nVersion: {{.Version}}\n")

	// Add subcommands
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
}
