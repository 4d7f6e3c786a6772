package drive

import (
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/drivesync/internal/core/domain"
)

// fileFields is the projection requested for every file.
const fileFields = "id, name, mimeType, parents, webViewLink, iconLink, " +
	"createdTime, modifiedTime, lastModifyingUser, owners, sharingUser, shared"

// Field projections for the list calls.
var (
	changesFields = googleapi.Field("nextPageToken, newStartPageToken, " +
		"changes(changeType, removed, fileId, file(" + fileFields + "))")
	filesFields = googleapi.Field("nextPageToken, files(" + fileFields + ")")
)

// toEntity converts a Drive file to a domain entity.
func toEntity(f *drive.File) domain.Entity {
	e := domain.Entity{
		ID:                f.Id,
		Name:              f.Name,
		MimeType:          f.MimeType,
		Parents:           f.Parents,
		CreatedTime:       f.CreatedTime,
		ModifiedTime:      f.ModifiedTime,
		LastModifyingUser: toUser(f.LastModifyingUser),
		SharingUser:       toUser(f.SharingUser),
		WebViewLink:       f.WebViewLink,
		IconLink:          f.IconLink,
		Shared:            f.Shared,
	}
	for _, owner := range f.Owners {
		if u := toUser(owner); u != nil {
			e.Owners = append(e.Owners, *u)
		}
	}
	if e.WebViewLink == "" {
		e.WebViewLink = ResolveWebURL(e.ID, e.MimeType)
	}
	return e
}

// toChangeRecord converts a Drive change to a change record.
func toChangeRecord(c *drive.Change) domain.ChangeRecord {
	rec := domain.ChangeRecord{
		ChangeType: c.ChangeType,
		Removed:    c.Removed,
		EntityID:   c.FileId,
	}
	if c.File != nil && !c.Removed {
		e := toEntity(c.File)
		rec.Entity = &e
	}
	return rec
}

func toUser(u *drive.User) *domain.User {
	if u == nil {
		return nil
	}
	return &domain.User{Email: u.EmailAddress, DisplayName: u.DisplayName}
}
