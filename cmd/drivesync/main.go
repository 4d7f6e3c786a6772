// Command drivesync mirrors a Google Drive into a local search index.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/drivesync/internal/adapters/driven/config/file"
	"github.com/custodia-labs/drivesync/internal/adapters/driven/oauth"
	"github.com/custodia-labs/drivesync/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/drivesync/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/drivesync/internal/adapters/driving/cli"
	"github.com/custodia-labs/drivesync/internal/connectors/google"
	"github.com/custodia-labs/drivesync/internal/connectors/google/drive"
	"github.com/custodia-labs/drivesync/internal/core/ports/driven"
	"github.com/custodia-labs/drivesync/internal/core/services"
	"github.com/custodia-labs/drivesync/internal/logger"
	"github.com/custodia-labs/drivesync/internal/normalisers/pdf"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

// keyDataDir selects the directory of the sqlite database.
const keyDataDir = "data_dir"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()

	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := sqlite.NewStore(configStore.GetString(keyDataDir))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close store: %v", err)
		}
	}()

	creds := oauth.CredentialsFromConfig(configStore)
	tokens := oauth.NewTokenProvider(ctx,
		oauth.GoogleConfig(creds.ClientID, creds.ClientSecret, ""),
		creds.RefreshToken,
	)

	driveService, err := google.NewDriveService(ctx, google.NewTokenSource(ctx, tokens))
	if err != nil {
		return fmt.Errorf("create drive service: %w", err)
	}

	syncService, dryRunService := newSyncServices(
		drive.NewClient(driveService, drive.DefaultConfig()),
		store,
		services.LoadConfig(configStore),
	)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Sync:   syncService,
		DryRun: dryRunService,
		Config: configStore,
		Stats:  store,
	})

	return cli.Execute(ctx)
}

// newSyncServices builds the live pipeline over store and a dry-run
// pipeline that reads the stored cursor but writes only to memory.
func newSyncServices(
	driveService driven.DriveService,
	store *sqlite.Store,
	cfg services.Config,
) (live, dryRun *services.SyncService) {
	extractors := []driven.TextExtractor{pdf.New()}

	live = services.NewSyncService(
		driveService,
		store.CursorStore(),
		store.SearchIndex(),
		store.RunStore(),
		extractors,
		cfg,
	)
	dryRun = services.NewSyncService(
		driveService,
		memory.NewOverlayCursorStore(store.CursorStore()),
		memory.NewSearchIndex(),
		memory.NewRunStore(),
		extractors,
		cfg,
	)
	return live, dryRun
}
