package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/drivesync/internal/core/domain"
	"github.com/custodia-labs/drivesync/internal/core/ports/driven"
	"github.com/custodia-labs/drivesync/internal/logger"
)

// ChangeBatch is the fully drained change stream of one delta run.
type ChangeBatch struct {
	// Records are all change records in listing order.
	Records []domain.ChangeRecord

	// NewStartCursor is the cursor reported on the last page.
	NewStartCursor string

	// Pages is the number of pages fetched.
	Pages int
}

// Fetcher pages through the drive change stream and full listing.
type Fetcher struct {
	drive    driven.DriveService
	cursors  driven.CursorStore
	pageSize int64
	retries  int
}

// NewFetcher creates a fetcher.
func NewFetcher(drive driven.DriveService, cursors driven.CursorStore, cfg Config) *Fetcher {
	return &Fetcher{
		drive:    drive,
		cursors:  cursors,
		pageSize: cfg.PageSize,
		retries:  cfg.MaxRetries,
	}
}

// FetchChanges drains the change stream from the stored cursor.
// With no stored cursor a fresh start cursor is obtained first.
// The new start cursor is returned, not stored; call CommitCursor once the
// batch has been applied so a failed run reprocesses the same window.
func (f *Fetcher) FetchChanges(ctx context.Context) (*ChangeBatch, error) {
	pageToken, err := f.startToken(ctx)
	if err != nil {
		return nil, err
	}

	batch := &ChangeBatch{}
	for {
		page, err := f.drive.ListChanges(ctx, driven.ListRequest{
			PageToken: pageToken,
			PageSize:  f.pageSize,
			Retries:   f.retries,
		})
		if err != nil {
			return nil, fmt.Errorf("list changes: %w", err)
		}
		batch.Pages++
		batch.Records = append(batch.Records, page.Changes...)
		logger.Debug("Fetched change page %d (%d changes)", batch.Pages, len(page.Changes))

		if page.NextPageToken == "" {
			batch.NewStartCursor = page.NewStartCursor
			break
		}
		pageToken = page.NextPageToken
	}

	return batch, nil
}

// FetchAllEntities drains the full entity listing.
func (f *Fetcher) FetchAllEntities(ctx context.Context) ([]domain.Entity, error) {
	var (
		entities  []domain.Entity
		pageToken string
		pages     int
	)
	for {
		page, err := f.drive.ListAll(ctx, driven.ListRequest{
			PageToken: pageToken,
			PageSize:  f.pageSize,
			Retries:   f.retries,
		})
		if err != nil {
			return nil, fmt.Errorf("list files: %w", err)
		}
		pages++
		entities = append(entities, page.Entities...)
		logger.Debug("Fetched listing page %d (%d entities)", pages, len(page.Entities))

		if page.NextPageToken == "" {
			return entities, nil
		}
		pageToken = page.NextPageToken
	}
}

// StartCursor obtains a fresh start cursor from the drive.
func (f *Fetcher) StartCursor(ctx context.Context) (string, error) {
	token, err := f.drive.GetStartCursor(ctx, f.retries)
	if err != nil {
		return "", fmt.Errorf("get start cursor: %w", err)
	}
	return token, nil
}

// CommitCursor persists the cursor for the next delta run.
// An empty token is ignored so a missing cursor never overwrites a good one.
func (f *Fetcher) CommitCursor(ctx context.Context, token string) error {
	if token == "" {
		logger.Warn("Drive returned no new start cursor, keeping the stored one")
		return nil
	}
	if err := f.cursors.Set(ctx, domain.CursorKey, domain.NewCursor(token).Encode()); err != nil {
		return fmt.Errorf("save cursor: %w", err)
	}
	logger.Debug("Cursor advanced to %s", token)
	return nil
}

// startToken returns the stored cursor or a fresh start cursor.
func (f *Fetcher) startToken(ctx context.Context) (string, error) {
	stored, err := f.cursors.Get(ctx, domain.CursorKey)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("get cursor: %w", err)
	}

	cursor, err := domain.DecodeCursor(stored)
	if err != nil {
		return "", fmt.Errorf("decode cursor: %w", err)
	}
	if !cursor.IsEmpty() {
		return cursor.StartPageToken, nil
	}

	logger.Info("No stored cursor, starting from the current change stream position")
	return f.StartCursor(ctx)
}
