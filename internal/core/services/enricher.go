package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/custodia-labs/drivesync/internal/core/domain"
	"github.com/custodia-labs/drivesync/internal/logger"
)

// IconSize is the canonical icon size written into icon links.
const IconSize = "128"

// iconSizeRegex matches the size segment of drive icon links.
var iconSizeRegex = regexp.MustCompile(`/[0-9]+/type/`)

// EnrichFiles builds the index records for files.
// Folders must already be resolved by ResolveFolders. Owners are added to
// the run-wide owner table.
func EnrichFiles(files, folders []domain.Entity, owners *domain.OwnerTable) []domain.FileDocument {
	byID := make(map[string]*domain.Entity, len(folders))
	for i := range folders {
		byID[folders[i].ID] = &folders[i]
	}

	docs := make([]domain.FileDocument, 0, len(files))
	for i := range files {
		docs = append(docs, enrichFile(&files[i], byID, owners))
	}
	return docs
}

func enrichFile(file *domain.Entity, folders map[string]*domain.Entity, owners *domain.OwnerTable) domain.FileDocument {
	doc := domain.FileDocument{
		ID:           file.ID,
		Name:         file.Name,
		MimeType:     file.MimeType,
		WebViewLink:  file.WebViewLink,
		IconLink:     NormaliseIconLink(file.IconLink),
		CreatedTime:  EpochMillis(file.CreatedTime),
		ModifiedTime: EpochMillis(file.ModifiedTime),
		Shared:       file.Shared,
		Owners:       fileOwners(file, owners),
		LocationLink: make(map[string]string),
	}
	if file.LastModifyingUser != nil {
		doc.LastModifiedBy = file.LastModifyingUser.DisplayName
	}

	root := domain.RootLocation(file.Shared)
	doc.Location = []string{root}

	if len(file.Parents) > 0 {
		if parent, ok := folders[file.Parents[0]]; ok {
			doc.Location = append(doc.Location, parent.Location...)
			doc.Location = append(doc.Location, parent.Name)
			for name, link := range parent.LocationLink {
				doc.LocationLink[name] = link
			}
			doc.LocationLink[parent.Name] = parent.WebViewLink
		}
	}
	doc.LocationLink[root] = ""

	return doc
}

// fileOwners merges the sharing user and owners of a file, deduplicated by
// email with the first display name winning. It returns the display names
// and records every owner in the run-wide table.
func fileOwners(file *domain.Entity, owners *domain.OwnerTable) []string {
	candidates := make([]domain.User, 0, len(file.Owners)+1)
	if file.SharingUser != nil {
		candidates = append(candidates, *file.SharingUser)
	}
	candidates = append(candidates, file.Owners...)

	names := []string{}
	seen := make(map[string]bool, len(candidates))
	for _, user := range candidates {
		if user.Email == "" {
			continue
		}
		key := strings.ToLower(user.Email)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, user.DisplayName)
		if owners != nil {
			owners.Add(user.Email, user.DisplayName)
		}
	}
	return names
}

// NormaliseIconLink rewrites the size segment of an icon link to IconSize.
func NormaliseIconLink(link string) string {
	return iconSizeRegex.ReplaceAllString(link, "/"+IconSize+"/type/")
}

// EpochMillis converts a drive timestamp to milliseconds since the epoch.
// Empty or unparseable timestamps return 0.
func EpochMillis(ts string) int64 {
	if ts == "" {
		return 0
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		logger.Warn("Unparseable timestamp %q: %v", ts, err)
		return 0
	}
	return t.UnixMilli()
}
