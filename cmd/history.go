package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/xvierd/kicks-cli/internal/domain"
)

var (
	historyDays   int
	historyFormat string
)

// historyCmd lists recorded snapshots for the selected user.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded kick counts",
	Long: `List the kick counts recorded on this machine for the selected user,
newest first. Every fetch made by the dashboard or "kicks today" is recorded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyDays < 1 {
			return fmt.Errorf("--days must be at least 1")
		}
		id, err := requireIdentity()
		if err != nil {
			return err
		}

		since := domain.StartOfDay(time.Now()).AddDate(0, 0, -(historyDays - 1))
		snaps, err := app.kicks.History(cmd.Context(), id, since)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return writeHistoryJSON(out, id, snaps)
		}

		switch historyFormat {
		case "csv":
			return writeHistoryCSV(out, snaps)
		case "table", "":
			if len(snaps) == 0 {
				fmt.Fprintf(out, "No kicks recorded for %s in the last %d days.\n", id, historyDays)
				return nil
			}
			return writeHistoryTable(out, snaps)
		default:
			return fmt.Errorf("unknown format %q (want table or csv)", historyFormat)
		}
	},
}

func writeHistoryJSON(w io.Writer, id domain.UserIdentity, snaps []*domain.KickSnapshot) error {
	list := make([]map[string]interface{}, 0, len(snaps))
	for _, s := range snaps {
		list = append(list, snapshotRecord(s))
	}
	jsonData, err := json.MarshalIndent(map[string]interface{}{
		"user_id":   id.String(),
		"snapshots": list,
		"count":     len(list),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}

func snapshotRecord(s *domain.KickSnapshot) map[string]interface{} {
	return map[string]interface{}{
		"day":         s.Day.Format("2006-01-02"),
		"total_kicks": int(s.TotalKicks),
		"outcome":     string(s.Outcome),
		"error":       s.Error,
		"fetched_at":  s.FetchedAt.Format(time.RFC3339),
	}
}

var historyHeader = []string{"day", "fetched_at", "total_kicks", "outcome", "error"}

func historyRow(s *domain.KickSnapshot) []string {
	return []string{
		s.Day.Format("2006-01-02"),
		s.FetchedAt.Format("15:04:05"),
		strconv.Itoa(int(s.TotalKicks)),
		string(s.Outcome),
		s.Error,
	}
}

func writeHistoryCSV(w io.Writer, snaps []*domain.KickSnapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(historyHeader); err != nil {
		return err
	}
	for _, s := range snaps {
		if err := cw.Write(historyRow(s)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeHistoryTable(w io.Writer, snaps []*domain.KickSnapshot) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("DAY", "TIME", "KICKS", "OUTCOME", "ERROR")
	for _, s := range snaps {
		t.Row(historyRow(s)...)
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}

func init() {
	historyCmd.Flags().IntVarP(&historyDays, "days", "d", 7, "Number of days to include, today counts as one")
	historyCmd.Flags().StringVarP(&historyFormat, "format", "f", "table", "Output format: table or csv")
}
