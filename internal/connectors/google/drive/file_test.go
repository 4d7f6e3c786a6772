package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/drive/v3"

	"github.com/custodia-labs/drivesync/internal/core/domain"
)

func TestToEntity(t *testing.T) {
	f := &drive.File{
		Id:                "f1",
		Name:              "Budget",
		MimeType:          domain.MimeTypeGoogleSheet,
		Parents:           []string{"p1"},
		WebViewLink:       "https://docs.google.com/spreadsheets/d/f1",
		IconLink:          "https://icons/sheet.png",
		CreatedTime:       "2024-01-01T10:00:00Z",
		ModifiedTime:      "2024-02-01T10:00:00Z",
		LastModifyingUser: &drive.User{EmailAddress: "b@example.com", DisplayName: "B"},
		Owners: []*drive.User{
			{EmailAddress: "a@example.com", DisplayName: "A"},
			nil,
		},
		Shared: true,
	}

	e := toEntity(f)

	assert.Equal(t, "f1", e.ID)
	assert.Equal(t, "Budget", e.Name)
	assert.Equal(t, domain.MimeTypeGoogleSheet, e.MimeType)
	assert.Equal(t, []string{"p1"}, e.Parents)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/f1", e.WebViewLink)
	assert.Equal(t, "https://icons/sheet.png", e.IconLink)
	assert.Equal(t, "2024-01-01T10:00:00Z", e.CreatedTime)
	assert.Equal(t, "2024-02-01T10:00:00Z", e.ModifiedTime)
	require.NotNil(t, e.LastModifyingUser)
	assert.Equal(t, "b@example.com", e.LastModifyingUser.Email)
	assert.Nil(t, e.SharingUser)
	assert.Equal(t, []domain.User{{Email: "a@example.com", DisplayName: "A"}}, e.Owners)
	assert.True(t, e.Shared)
}

func TestToEntity_MissingWebViewLink(t *testing.T) {
	e := toEntity(&drive.File{Id: "x", MimeType: "image/png"})
	assert.Equal(t, "https://drive.google.com/file/d/x/view", e.WebViewLink)
}

func TestToChangeRecord(t *testing.T) {
	t.Run("updated file", func(t *testing.T) {
		rec := toChangeRecord(&drive.Change{
			ChangeType: "file",
			FileId:     "f1",
			File:       &drive.File{Id: "f1", Name: "a"},
		})
		assert.Equal(t, domain.ChangeTypeFile, rec.ChangeType)
		assert.False(t, rec.Removed)
		require.NotNil(t, rec.Entity)
		assert.Equal(t, "a", rec.Entity.Name)
	})

	t.Run("removed file drops entity", func(t *testing.T) {
		rec := toChangeRecord(&drive.Change{
			ChangeType: "file",
			FileId:     "f1",
			Removed:    true,
			File:       &drive.File{Id: "f1"},
		})
		assert.True(t, rec.Removed)
		assert.Equal(t, "f1", rec.EntityID)
		assert.Nil(t, rec.Entity)
	})

	t.Run("drive change", func(t *testing.T) {
		rec := toChangeRecord(&drive.Change{ChangeType: "drive", DriveId: "d1"})
		assert.Equal(t, "drive", rec.ChangeType)
		assert.Nil(t, rec.Entity)
	})
}
