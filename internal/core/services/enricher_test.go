package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drivesync/internal/core/domain"
)

func TestEnrichFiles_LocationUnderResolvedFolders(t *testing.T) {
	folders := []domain.Entity{
		newFolder("Root", "Root"),
		newFolder("A", "Alpha", "Root"),
	}
	ResolveFolders(folders, nil)

	files := []domain.Entity{newFile("f1", "notes.txt", "A")}
	docs := EnrichFiles(files, folders, domain.NewOwnerTable())

	require.Len(t, docs, 1)
	assert.Equal(t, []string{domain.LocationMyDrive, "Root", "Alpha"}, docs[0].Location)
	assert.Equal(t, map[string]string{
		domain.LocationMyDrive: "",
		"Root":                 "https://drive.example/Root",
		"Alpha":                "https://drive.example/A",
	}, docs[0].LocationLink)
}

func TestEnrichFiles_SharedRootAndUnknownParent(t *testing.T) {
	f := newFile("f1", "shared.pdf", "not-in-batch")
	f.Shared = true

	docs := EnrichFiles([]domain.Entity{f}, nil, domain.NewOwnerTable())

	assert.Equal(t, []string{domain.LocationShared}, docs[0].Location)
	assert.Equal(t, map[string]string{domain.LocationShared: ""}, docs[0].LocationLink)
	assert.True(t, docs[0].Shared)
}

func TestEnrichFiles_NoParents(t *testing.T) {
	docs := EnrichFiles([]domain.Entity{newFile("f1", "orphan")}, nil, nil)

	assert.Equal(t, []string{domain.LocationMyDrive}, docs[0].Location)
}

func TestEnrichFiles_CopiesMetadata(t *testing.T) {
	f := domain.Entity{
		ID:                "f1",
		Name:              "Plan",
		MimeType:          domain.MimeTypeGoogleDoc,
		CreatedTime:       "2024-01-02T03:04:05.678Z",
		ModifiedTime:      "2024-01-02T03:04:06Z",
		LastModifyingUser: &domain.User{DisplayName: "Ada", Email: "ada@example.com"},
		WebViewLink:       "https://docs.example/f1",
		IconLink:          "https://icons.example/16/type/application/pdf",
	}

	doc := EnrichFiles([]domain.Entity{f}, nil, nil)[0]

	assert.Equal(t, "f1", doc.ID)
	assert.Equal(t, "Plan", doc.Name)
	assert.Equal(t, domain.MimeTypeGoogleDoc, doc.MimeType)
	assert.Equal(t, int64(1704164645678), doc.CreatedTime)
	assert.Equal(t, int64(1704164646000), doc.ModifiedTime)
	assert.Equal(t, "Ada", doc.LastModifiedBy)
	assert.Equal(t, "https://docs.example/f1", doc.WebViewLink)
	assert.Equal(t, "https://icons.example/128/type/application/pdf", doc.IconLink)
	assert.Empty(t, doc.Content)
}

func TestEnrichFiles_OwnersDeduplicated(t *testing.T) {
	f1 := newFile("f1", "a")
	f1.SharingUser = &domain.User{Email: "Bob@Example.com", DisplayName: "Bobby"}
	f1.Owners = []domain.User{
		{Email: "bob@example.com", DisplayName: "Robert"},
		{Email: "carol@example.com", DisplayName: "Carol"},
		{Email: "", DisplayName: "Nobody"},
	}
	f2 := newFile("f2", "b")
	f2.Owners = []domain.User{{Email: "CAROL@example.com", DisplayName: "Caroline"}}

	owners := domain.NewOwnerTable()
	docs := EnrichFiles([]domain.Entity{f1, f2}, nil, owners)

	assert.Equal(t, []string{"Bobby", "Carol"}, docs[0].Owners)
	assert.Equal(t, []string{"Caroline"}, docs[1].Owners)

	records := owners.Records()
	require.Len(t, records, 2)
	assert.Equal(t, domain.OwnerRecord{
		ID:    domain.OwnerID("bob@example.com"),
		Name:  "Bobby",
		Email: "Bob@Example.com",
	}, records[0])
	assert.Equal(t, "Carol", records[1].Name)
}

func TestEnrichFiles_NoOwners(t *testing.T) {
	doc := EnrichFiles([]domain.Entity{newFile("f1", "a")}, nil, domain.NewOwnerTable())[0]

	assert.NotNil(t, doc.Owners)
	assert.Empty(t, doc.Owners)
}

func TestNormaliseIconLink(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://x/icon/16/type/image/png", "https://x/icon/128/type/image/png"},
		{"https://x/icon/128/type/image/png", "https://x/icon/128/type/image/png"},
		{"https://x/icon/type/image/png", "https://x/icon/type/image/png"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormaliseIconLink(tt.in))
	}
}

func TestEpochMillis(t *testing.T) {
	assert.Equal(t, int64(0), EpochMillis(""))
	assert.Equal(t, int64(0), EpochMillis("yesterday"))
	assert.Equal(t, int64(0), EpochMillis("1970-01-01T00:00:00Z"))
	assert.Equal(t, int64(1500), EpochMillis("1970-01-01T00:00:01.5Z"))
	assert.Equal(t, int64(3600000), EpochMillis("1970-01-01T02:00:00+01:00"))
}
