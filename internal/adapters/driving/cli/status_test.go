package cli

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drivesync/internal/core/domain"
	"github.com/custodia-labs/drivesync/internal/core/ports/driving"
)

func TestStatusCmd_Idle(t *testing.T) {
	withServices(t, Services{
		Sync: &fakeSync{},
		Stats: &fakeStats{counts: map[string]int{
			domain.IndexFiles:     10,
			domain.IndexLocations: 3,
			domain.IndexOwners:    2,
		}},
	})

	out, err := execute(t, "status")

	require.NoError(t, err)
	assert.Contains(t, out, "Sync: idle")
	assert.Regexp(t, `files:\s+10`, out)
	assert.Regexp(t, `file_owners:\s+2`, out)
	assert.NotContains(t, out, "Last run")

	// Indexes are listed in name order.
	assert.Less(t, strings.Index(out, "file_locations"), strings.Index(out, "file_owners"))
	assert.Less(t, strings.Index(out, "file_owners"), strings.Index(out, "files:"))
}

func TestStatusCmd_RunningWithLastReport(t *testing.T) {
	withServices(t, Services{Sync: &fakeSync{status: &driving.SyncStatus{
		Running:    true,
		Mode:       domain.SyncModeBackfill,
		LastReport: testReport(domain.SyncModeDelta),
	}}})

	out, err := execute(t, "status")

	require.NoError(t, err)
	assert.Contains(t, out, "Sync: running (backfill)")
	assert.Contains(t, out, "Last run")
	assert.Contains(t, out, "Run run-1 (delta)")
}

func TestStatusCmd_StatsError(t *testing.T) {
	withServices(t, Services{
		Sync:  &fakeSync{},
		Stats: &fakeStats{err: errors.New("database locked")},
	})

	_, err := execute(t, "status")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database locked")
}

func TestStatusCmd_ShowsTimesAndLastFailure(t *testing.T) {
	started := time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local)
	finished := time.Date(2026, 3, 1, 8, 0, 5, 0, time.Local)
	withServices(t, Services{Sync: &fakeSync{status: &driving.SyncStatus{
		Running:       true,
		Mode:          domain.SyncModeDelta,
		StartedAt:     started,
		LastReport:    testReport(domain.SyncModeDelta),
		LastSuccessAt: finished,
		LastError:     "sync index: database locked",
	}}})

	out, err := execute(t, "status")

	require.NoError(t, err)
	assert.Contains(t, out, "Sync: running (delta) since 2026-03-01 09:30:00")
	assert.Contains(t, out, "Last run failed: sync index: database locked")
	assert.Contains(t, out, "Last run (finished 2026-03-01 08:00:05)")
}
