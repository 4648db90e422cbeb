package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/xvierd/kicks-cli/internal/adapters/mcp"
	"github.com/xvierd/kicks-cli/internal/adapters/tui"
)

var todayPlain bool

// todayCmd fetches and prints today's count once.
var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's kick count",
	Long: `Fetch today's kick count once and print the progress ring and activity
message. Use --json for machine-readable output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := requireIdentity()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		state := app.kicks.Lookup(ctx, id)
		out := cmd.OutOrStdout()

		if jsonOutput {
			jsonData, err := json.MarshalIndent(mcp.DailyKicksPayload(state), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal result: %w", err)
			}
			fmt.Fprintln(out, string(jsonData))
			return nil
		}

		width, colored := outputSize(out)
		if todayPlain {
			colored = false
		}
		rendered := tui.RenderWidget(state, &app.config.Theme, app.config.Display, width, colored)
		if rendered != "" {
			fmt.Fprintln(out, rendered)
		}
		if state.Err != nil {
			app.logger.Warn("fetch failed", "user", id, "err", state.Err)
		}
		return nil
	},
}

// outputSize reports the terminal width of w and whether it is a terminal.
// Non-terminal writers get width 0, which lets the widget pick its default.
func outputSize(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(f.Fd()) {
		return 0, false
	}
	width, _, err := term.GetSize(f.Fd())
	if err != nil {
		return 0, true
	}
	return width, true
}

func init() {
	todayCmd.Flags().BoolVar(&todayPlain, "plain", false, "Disable colors")
}
