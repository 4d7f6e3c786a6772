package services

import (
	"slices"

	"github.com/custodia-labs/drivesync/internal/core/domain"
)

// ResolveFolders computes the ancestor path of every folder in the batch.
//
// Each folder keeps a worklist seeded with its direct parents. Visiting an
// ancestor that is in the batch records its name and link and appends its
// own parents to the worklist, so indirect ancestors are reached without
// recursion. The scan ends when the worklist stops growing. An ancestor is
// visited at most once per folder, which bounds the worklist on cycles and
// diamonds. Ancestors outside the batch are skipped and the path is
// truncated there.
//
// Location is written root first. Every folder is recorded in locations.
func ResolveFolders(folders []domain.Entity, locations *domain.LocationTable) {
	byID := make(map[string]*domain.Entity, len(folders))
	for i := range folders {
		byID[folders[i].ID] = &folders[i]
	}

	for i := range folders {
		folder := &folders[i]

		pending := slices.Clone(folder.Parents)
		visited := map[string]bool{folder.ID: true}
		nearestFirst := []string{}
		links := make(map[string]string)

		for next := 0; next < len(pending); next++ {
			parent, ok := byID[pending[next]]
			if !ok || visited[parent.ID] {
				continue
			}
			visited[parent.ID] = true

			nearestFirst = append(nearestFirst, parent.Name)
			links[parent.Name] = parent.WebViewLink
			pending = append(pending, parent.Parents...)
		}

		slices.Reverse(nearestFirst)
		folder.Location = nearestFirst
		folder.LocationLink = links

		if locations != nil {
			locations.Set(folder.ID, folder.Name)
		}
	}
}
