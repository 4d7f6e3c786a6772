package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/drivesync/internal/core/domain"
	"github.com/custodia-labs/drivesync/internal/core/ports/driven"
	"github.com/custodia-labs/drivesync/internal/logger"
)

// IndexSync writes one run's output to the search index.
type IndexSync struct {
	index driven.SearchIndex
}

// NewIndexSync creates an index sync for the given search index.
func NewIndexSync(index driven.SearchIndex) *IndexSync {
	return &IndexSync{index: index}
}

// Sync upserts each non-empty collection into its index and deletes the
// removed ids from both the files and locations indices.
// Upserts are last-write-wins per id, so replaying a run is harmless.
func (s *IndexSync) Sync(
	ctx context.Context,
	locations []domain.LocationRecord,
	owners []domain.OwnerRecord,
	files []domain.FileDocument,
	removedIDs []string,
) error {
	if err := s.upsert(ctx, domain.IndexLocations, toDocuments(locations)); err != nil {
		return err
	}
	if err := s.upsert(ctx, domain.IndexOwners, toDocuments(owners)); err != nil {
		return err
	}
	if err := s.upsert(ctx, domain.IndexFiles, toDocuments(files)); err != nil {
		return err
	}

	if len(removedIDs) == 0 {
		return nil
	}
	for _, name := range []string{domain.IndexLocations, domain.IndexFiles} {
		if err := s.index.Delete(ctx, name, removedIDs); err != nil {
			return fmt.Errorf("delete from %s: %w", name, err)
		}
	}
	logger.Debug("Deleted %d ids from %s and %s", len(removedIDs), domain.IndexLocations, domain.IndexFiles)
	return nil
}

func (s *IndexSync) upsert(ctx context.Context, name string, docs []domain.IndexDocument) error {
	if len(docs) == 0 {
		return nil
	}
	if err := s.index.Upsert(ctx, name, docs); err != nil {
		return fmt.Errorf("upsert into %s: %w", name, err)
	}
	logger.Debug("Upserted %d documents into %s", len(docs), name)
	return nil
}

// toDocuments converts a typed slice into index documents.
func toDocuments[T domain.IndexDocument](items []T) []domain.IndexDocument {
	docs := make([]domain.IndexDocument, len(items))
	for i, item := range items {
		docs[i] = item
	}
	return docs
}
