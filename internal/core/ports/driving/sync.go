package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/drivesync/internal/core/domain"
)

// DriveSync mirrors a drive into the search index.
// Runs are expected to be triggered by an external scheduler; at most one
// run may be in flight.
type DriveSync interface {
	// SyncChanges applies every change since the stored cursor.
	SyncChanges(ctx context.Context) (*domain.SyncReport, error)

	// Backfill lists and indexes every entity in the drive.
	Backfill(ctx context.Context) (*domain.SyncReport, error)

	// Status returns the current sync status.
	Status(ctx context.Context) (*SyncStatus, error)
}

// SyncStatus represents the current state of the sync service.
type SyncStatus struct {
	// Running indicates if a sync is currently in progress, in this or
	// another process.
	Running bool

	// Mode is the mode of the running sync.
	Mode domain.SyncMode

	// StartedAt is when the running sync started.
	StartedAt time.Time

	// LastReport is the report of the last successful sync, if any.
	LastReport *domain.SyncReport

	// LastSuccessAt is when the last successful sync finished.
	LastSuccessAt time.Time

	// LastError is set when the most recent run failed.
	LastError string
}
