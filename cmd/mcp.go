package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/kicks-cli/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server provides tools for querying daily kick counts, recorded history and known users.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !app.config.MCP.Enabled {
			return fmt.Errorf("MCP server is disabled in config (mcp.enabled = false)")
		}

		// stdout carries the protocol, so status goes to stderr.
		fmt.Fprintln(cmd.ErrOrStderr(), "🚀 Starting MCP server on stdio (Ctrl+C to stop)")

		server := mcp.NewServer(app.kicks, Version)
		if err := server.Start(setupSignalHandler()); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}

		return nil
	},
}
