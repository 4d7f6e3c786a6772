package driven

import (
	"context"

	"github.com/custodia-labs/drivesync/internal/core/domain"
)

// RunStore keeps the history of sync runs so that status can be read
// from a different process than the one that ran the sync.
type RunStore interface {
	// SaveRun inserts the run or replaces the run with the same ID.
	SaveRun(ctx context.Context, run *domain.SyncRun) error

	// LatestRun returns the most recently started run.
	// Returns domain.ErrNotFound if no run has been recorded.
	LatestRun(ctx context.Context) (*domain.SyncRun, error)

	// LastSuccessfulRun returns the most recently started run that succeeded.
	// Returns domain.ErrNotFound if none has.
	LastSuccessfulRun(ctx context.Context) (*domain.SyncRun, error)
}
