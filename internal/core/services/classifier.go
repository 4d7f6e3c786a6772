package services

import "github.com/custodia-labs/drivesync/internal/core/domain"

// SplitRemovedAndUpdated partitions change records into removed ids and
// updated entities. Only "file" changes are considered. Input order is kept.
func SplitRemovedAndUpdated(records []domain.ChangeRecord) ([]string, []domain.Entity) {
	removed := []string{}
	updated := []domain.Entity{}

	for _, rec := range records {
		if rec.ChangeType != domain.ChangeTypeFile {
			continue
		}
		if rec.Removed {
			removed = append(removed, rec.EntityID)
			continue
		}
		if rec.Entity != nil {
			updated = append(updated, *rec.Entity)
		}
	}

	return removed, updated
}

// SplitFilesAndFolders partitions entities by the folder MIME type.
func SplitFilesAndFolders(entities []domain.Entity) ([]domain.Entity, []domain.Entity) {
	files := []domain.Entity{}
	folders := []domain.Entity{}

	for _, e := range entities {
		if e.IsFolder() {
			folders = append(folders, e)
		} else {
			files = append(files, e)
		}
	}

	return files, folders
}
