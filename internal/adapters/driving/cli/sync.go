package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/drivesync/internal/core/domain"
	"github.com/custodia-labs/drivesync/internal/core/ports/driving"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Apply drive changes since the last run",
	Long: `Fetches every change recorded by the drive since the stored cursor,
updates the index and advances the cursor.

The cursor only moves after the index has been updated, so a failed run
is retried from the same point next time.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Index every file in the drive",
	Long: `Lists the whole drive and indexes every file and folder.

Use this for the first run or to rebuild the index. The change cursor is
taken before listing starts, so 'drivesync sync' picks up anything that
changed while the backfill was running.`,
	Args: cobra.NoArgs,
	RunE: runBackfill,
}

var dryRun bool

func init() {
	for _, cmd := range []*cobra.Command{syncCmd, backfillCmd} {
		cmd.Flags().BoolVar(&dryRun, "dry-run", false,
			"Run the pipeline against an in-memory index; nothing is written")
		rootCmd.AddCommand(cmd)
	}
}

func runSync(cmd *cobra.Command, _ []string) error {
	service, err := pipelineService()
	if err != nil {
		return err
	}

	cmd.Println("Synchronising drive changes...")
	return runPipeline(cmd, service.SyncChanges)
}

func runBackfill(cmd *cobra.Command, _ []string) error {
	service, err := pipelineService()
	if err != nil {
		return err
	}

	cmd.Println("Backfilling the whole drive...")
	return runPipeline(cmd, service.Backfill)
}

// pipelineService returns the service selected by --dry-run.
func pipelineService() (driving.DriveSync, error) {
	if dryRun {
		if dryRunService == nil {
			return nil, errors.New("dry run not configured")
		}
		return dryRunService, nil
	}
	if syncService == nil {
		return nil, errors.New("sync service not configured")
	}
	return syncService, nil
}

func runPipeline(cmd *cobra.Command, run func(context.Context) (*domain.SyncReport, error)) error {
	report, err := run(cmd.Context())
	if err != nil {
		return fmt.Errorf("sync failed: %w", explain(err))
	}

	printReport(cmd, report)
	if dryRun {
		cmd.Println()
		cmd.Println("Dry run: the index and the stored cursor were not changed.")
	}
	return nil
}

// explain adds a next step to errors the user can act on.
func explain(err error) error {
	switch {
	case errors.Is(err, domain.ErrAuthRequired), errors.Is(err, domain.ErrAuthInvalid):
		return fmt.Errorf("%w (run 'drivesync auth login')", err)
	case errors.Is(err, domain.ErrSyncInProgress):
		return fmt.Errorf("%w (another run is still active)", err)
	case errors.Is(err, domain.ErrInvalidCursor):
		return fmt.Errorf("%w (run 'drivesync backfill' to rebuild the index and reset the cursor)", err)
	default:
		return err
	}
}

func printReport(cmd *cobra.Command, report *domain.SyncReport) {
	if report == nil {
		return
	}

	cmd.Println(headingStyle.Render(fmt.Sprintf("Run %s (%s)", report.RunID, report.Mode)))
	rows := []struct {
		label string
		value int
	}{
		{"Files", report.Files},
		{"Folders", report.Folders},
		{"Removed", report.Removed},
		{"Owners", report.Owners},
		{"Locations", report.Locations},
	}
	for _, row := range rows {
		cmd.Printf("  %s %d\n", labelStyle.Render(fmt.Sprintf("%-10s", row.label+":")), row.value)
	}
	cmd.Printf("  %s %d extracted, %d partial, %d failed, %d skipped\n",
		labelStyle.Render(fmt.Sprintf("%-10s", "Content:")),
		report.Extraction[domain.ExtractionExtracted],
		report.Extraction[domain.ExtractionPartial],
		report.Extraction[domain.ExtractionFailed],
		report.Extraction[domain.ExtractionSkipped],
	)
}
