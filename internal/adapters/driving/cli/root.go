// Package cli implements the drivesync command line.
// Commands are thin triggers around the driving ports; services are
// injected by cmd/drivesync through SetServices.
package cli

import (
	"context"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/drivesync/internal/core/ports/driven"
	"github.com/custodia-labs/drivesync/internal/core/ports/driving"
	"github.com/custodia-labs/drivesync/internal/logger"
)

// version is set at build time.
var version = "dev"

// IndexStats reports per-index document counts.
type IndexStats interface {
	CountDocuments(ctx context.Context) (map[string]int, error)
}

// Services are the dependencies of the commands.
type Services struct {
	Sync driving.DriveSync
	// DryRun runs the pipeline without writing the index or the cursor.
	DryRun driving.DriveSync
	Config driven.ConfigStore
	Stats  IndexStats
}

var (
	syncService   driving.DriveSync
	dryRunService driving.DriveSync
	configStore   driven.ConfigStore
	indexStats    IndexStats
)

var verbose bool

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Faint(true)
)

var rootCmd = &cobra.Command{
	Use:   "drivesync",
	Short: "Mirror Google Drive into a local search index",
	Long: `drivesync keeps a local search index in step with a Google Drive.

Run 'drivesync auth login' once, then 'drivesync backfill' to index the
whole drive. Afterwards 'drivesync sync' applies only what changed since
the last run and is safe to call from cron or any other scheduler.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output to stderr")
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	syncService = s.Sync
	dryRunService = s.DryRun
	configStore = s.Config
	indexStats = s.Stats
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
