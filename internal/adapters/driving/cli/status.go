package cli

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync state and index size",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}

	status, err := syncService.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	state := "idle"
	if status.Running {
		state = fmt.Sprintf("running (%s)", status.Mode)
		if !status.StartedAt.IsZero() {
			state += " since " + formatTime(status.StartedAt)
		}
	}
	cmd.Printf("%s %s\n", labelStyle.Render("Sync:"), state)
	if status.LastError != "" {
		cmd.Printf("%s %s\n", labelStyle.Render("Last run failed:"), status.LastError)
	}

	if indexStats != nil {
		counts, err := indexStats.CountDocuments(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count documents: %w", err)
		}

		cmd.Println()
		cmd.Println(headingStyle.Render("Index"))
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			cmd.Printf("  %s %d\n", labelStyle.Render(fmt.Sprintf("%-16s", name+":")), counts[name])
		}
	}

	if status.LastReport != nil {
		cmd.Println()
		heading := "Last run"
		if !status.LastSuccessAt.IsZero() {
			heading += " (finished " + formatTime(status.LastSuccessAt) + ")"
		}
		cmd.Println(headingStyle.Render(heading))
		printReport(cmd, status.LastReport)
	}

	return nil
}

func formatTime(t time.Time) string {
	return t.Local().Format(time.DateTime)
}
