package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/drivesync/internal/core/domain"
	"github.com/custodia-labs/drivesync/internal/core/ports/driven"
	"github.com/custodia-labs/drivesync/internal/core/ports/driving"
	"github.com/custodia-labs/drivesync/internal/logger"
)

// Ensure SyncService implements the interface.
var _ driving.DriveSync = (*SyncService)(nil)

// SyncService runs the drive to search index pipeline.
type SyncService struct {
	fetcher   *Fetcher
	extractor *Extractor
	indexSync *IndexSync
	runs      driven.RunStore

	// Status tracking
	mu      sync.Mutex
	current *domain.SyncRun
}

// NewSyncService creates a sync service.
func NewSyncService(
	drive driven.DriveService,
	cursors driven.CursorStore,
	index driven.SearchIndex,
	runs driven.RunStore,
	extractors []driven.TextExtractor,
	cfg Config,
) *SyncService {
	return &SyncService{
		fetcher:   NewFetcher(drive, cursors, cfg),
		extractor: NewExtractor(drive, extractors, cfg),
		indexSync: NewIndexSync(index),
		runs:      runs,
	}
}

// SyncChanges applies every change since the stored cursor.
// The cursor only advances once the index has accepted the batch, so a
// failed run is retried from the same position.
func (s *SyncService) SyncChanges(ctx context.Context) (*domain.SyncReport, error) {
	return s.run(ctx, domain.SyncModeDelta, s.syncChanges)
}

// Backfill lists and indexes every entity in the drive.
// A start cursor is taken before listing and stored afterwards, so the
// next SyncChanges picks up anything modified while the listing ran.
func (s *SyncService) Backfill(ctx context.Context) (*domain.SyncReport, error) {
	return s.run(ctx, domain.SyncModeBackfill, s.backfill)
}

func (s *SyncService) syncChanges(ctx context.Context, report *domain.SyncReport) error {
	batch, err := s.fetcher.FetchChanges(ctx)
	if err != nil {
		return fmt.Errorf("fetch changes: %w", err)
	}
	logger.Info("Fetched %d changes in %d pages", len(batch.Records), batch.Pages)

	removedIDs, updated := SplitRemovedAndUpdated(batch.Records)
	if err := s.process(ctx, report, updated, removedIDs); err != nil {
		return err
	}

	return s.fetcher.CommitCursor(ctx, batch.NewStartCursor)
}

func (s *SyncService) backfill(ctx context.Context, report *domain.SyncReport) error {
	startCursor, err := s.fetcher.StartCursor(ctx)
	if err != nil {
		return err
	}

	entities, err := s.fetcher.FetchAllEntities(ctx)
	if err != nil {
		return fmt.Errorf("fetch entities: %w", err)
	}
	logger.Info("Listed %d entities", len(entities))

	if err := s.process(ctx, report, entities, nil); err != nil {
		return err
	}

	return s.fetcher.CommitCursor(ctx, startCursor)
}

// run executes one pipeline run while holding the run slot.
func (s *SyncService) run(
	ctx context.Context,
	mode domain.SyncMode,
	fn func(context.Context, *domain.SyncReport) error,
) (*domain.SyncReport, error) {
	run, err := s.begin(ctx, mode)
	if err != nil {
		return nil, err
	}

	report := &domain.SyncReport{
		RunID:      run.ID,
		Mode:       mode,
		Extraction: make(map[domain.ExtractionStatus]int),
	}
	err = fn(ctx, report)
	s.finish(ctx, run, report, err)
	if err != nil {
		logger.Warn("Run %s failed: %v", run.ID, err)
		return nil, err
	}

	logger.Info("Run %s complete: %d files, %d folders, %d removed, %d owners, %d locations",
		run.ID, report.Files, report.Folders, report.Removed, report.Owners, report.Locations)
	return report, nil
}

// Status returns the current sync status.
// Runs are read from the run store, so a run in another process shows as
// running. A run left behind by a crashed process stays "running" until
// the next run starts.
func (s *SyncService) Status(ctx context.Context) (*driving.SyncStatus, error) {
	status := &driving.SyncStatus{}

	s.mu.Lock()
	if s.current != nil {
		status.Running = true
		status.Mode = s.current.Mode
		status.StartedAt = s.current.StartedAt
	}
	s.mu.Unlock()

	latest, err := s.runs.LatestRun(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return status, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get latest run: %w", err)
	}

	switch latest.State {
	case domain.RunRunning:
		if !status.Running {
			status.Running = true
			status.Mode = latest.Mode
			status.StartedAt = latest.StartedAt
		}
	case domain.RunFailed:
		status.LastError = latest.Error
	}

	last, err := s.runs.LastSuccessfulRun(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return status, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get last successful run: %w", err)
	}
	status.LastReport = last.Report
	status.LastSuccessAt = last.FinishedAt
	return status, nil
}

// process runs the stages shared by delta and backfill runs.
func (s *SyncService) process(
	ctx context.Context,
	report *domain.SyncReport,
	updated []domain.Entity,
	removedIDs []string,
) error {
	files, folders := SplitFilesAndFolders(updated)
	report.Files = len(files)
	report.Folders = len(folders)
	report.Removed = len(removedIDs)
	logger.Info("%d files, %d folders, %d removed", len(files), len(folders), len(removedIDs))

	locations := domain.NewLocationTable()
	owners := domain.NewOwnerTable()

	ResolveFolders(folders, locations)
	docs := EnrichFiles(files, folders, owners)

	results, err := s.extractor.ExtractContent(ctx, docs)
	if err != nil {
		return fmt.Errorf("extract content: %w", err)
	}
	for _, r := range results {
		report.Extraction[r.Status]++
	}

	// Pseudo-locations ride along with any batch that indexes entities.
	if len(updated) > 0 {
		locations.AddPseudoLocations()
	}
	report.Owners = owners.Len()
	report.Locations = locations.Len()

	if err := s.indexSync.Sync(ctx, locations.Records(), owners.Records(), docs, removedIDs); err != nil {
		return fmt.Errorf("sync index: %w", err)
	}
	return nil
}

// begin claims the run slot and records the run as started.
func (s *SyncService) begin(ctx context.Context, mode domain.SyncMode) (*domain.SyncRun, error) {
	s.mu.Lock()
	if s.current != nil {
		s.mu.Unlock()
		return nil, domain.ErrSyncInProgress
	}
	run := &domain.SyncRun{
		ID:        uuid.NewString(),
		Mode:      mode,
		State:     domain.RunRunning,
		StartedAt: time.Now(),
	}
	s.current = run
	s.mu.Unlock()

	logger.Section(fmt.Sprintf("Drive sync (%s) run %s", mode, run.ID))
	s.saveRun(ctx, run)
	return run, nil
}

// finish records the outcome and releases the run slot.
// Failed runs keep no report, so the last successful report stays visible.
func (s *SyncService) finish(ctx context.Context, run *domain.SyncRun, report *domain.SyncReport, err error) {
	run.FinishedAt = time.Now()
	if err != nil {
		run.State = domain.RunFailed
		run.Error = err.Error()
	} else {
		run.State = domain.RunSucceeded
		run.Report = report
	}
	// The outcome is recorded even when the run was cancelled
	s.saveRun(context.WithoutCancel(ctx), run)

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// saveRun records run history. Failures are logged and never fail the run.
func (s *SyncService) saveRun(ctx context.Context, run *domain.SyncRun) {
	if err := s.runs.SaveRun(ctx, run); err != nil {
		logger.Warn("Failed to record run %s: %v", run.ID, err)
	}
}
