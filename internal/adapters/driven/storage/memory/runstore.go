package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/drivesync/internal/core/domain"
	"github.com/custodia-labs/drivesync/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
// Runs are kept in start order.
type RunStore struct {
	mu   sync.RWMutex
	runs []domain.SyncRun
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{}
}

// SaveRun inserts run or replaces the run with the same ID.
func (s *RunStore) SaveRun(_ context.Context, run *domain.SyncRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.runs {
		if s.runs[i].ID == run.ID {
			s.runs[i] = *run
			return nil
		}
	}
	s.runs = append(s.runs, *run)
	return nil
}

// LatestRun returns the most recently started run.
func (s *RunStore) LatestRun(_ context.Context) (*domain.SyncRun, error) {
	return s.latest(func(*domain.SyncRun) bool { return true })
}

// LastSuccessfulRun returns the most recently started successful run.
func (s *RunStore) LastSuccessfulRun(_ context.Context) (*domain.SyncRun, error) {
	return s.latest(func(r *domain.SyncRun) bool { return r.State == domain.RunSucceeded })
}

func (s *RunStore) latest(match func(*domain.SyncRun) bool) (*domain.SyncRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *domain.SyncRun
	for i := range s.runs {
		r := &s.runs[i]
		if !match(r) {
			continue
		}
		if found == nil || !r.StartedAt.Before(found.StartedAt) {
			found = r
		}
	}
	if found == nil {
		return nil, domain.ErrNotFound
	}
	run := *found
	return &run, nil
}
