package domain

// Drive MIME types the pipeline treats specially.
const (
	MimeTypeFolder       = "application/vnd.google-apps.folder"
	MimeTypeGoogleDoc    = "application/vnd.google-apps.document"
	MimeTypeGoogleSheet  = "application/vnd.google-apps.spreadsheet"
	MimeTypeGoogleSlides = "application/vnd.google-apps.presentation"
	MimeTypePDF          = "application/pdf"
)

// ChangeTypeFile is the change type of file and folder changes.
// Other change types (e.g. shared drive metadata) are ignored.
const ChangeTypeFile = "file"

// EntityKind distinguishes files from folders.
type EntityKind string

const (
	// KindFile is any non-folder entity.
	KindFile EntityKind = "file"

	// KindFolder is a folder entity.
	KindFolder EntityKind = "folder"
)

// User is a drive account referenced by an entity.
type User struct {
	// Email is the account email address. May be empty for anonymous users.
	Email string

	// DisplayName is the human-readable account name.
	DisplayName string
}

// Entity is a drive file or folder as returned by the drive service.
// Location and LocationLink are derived by the pipeline.
type Entity struct {
	// ID is the stable, drive-assigned identifier.
	ID string

	// Name is the display name.
	Name string

	// MimeType is the drive MIME type.
	MimeType string

	// Parents holds the direct parent folder ids. Empty for drive roots.
	Parents []string

	// CreatedTime is the creation timestamp (RFC 3339).
	CreatedTime string

	// ModifiedTime is the last modification timestamp (RFC 3339).
	ModifiedTime string

	// LastModifyingUser is the user who last modified the entity, if known.
	LastModifyingUser *User

	// Owners are the owning accounts.
	Owners []User

	// SharingUser is the account that shared the entity, if any.
	SharingUser *User

	// WebViewLink opens the entity in a browser.
	WebViewLink string

	// IconLink is the entity's icon URL.
	IconLink string

	// Shared is true if the entity has been shared.
	Shared bool

	// Location is the resolved ancestor path, root first.
	Location []string

	// LocationLink maps each name in Location to its web view link.
	LocationLink map[string]string
}

// Kind reports whether the entity is a file or a folder.
func (e *Entity) Kind() EntityKind {
	if e.MimeType == MimeTypeFolder {
		return KindFolder
	}
	return KindFile
}

// IsFolder returns true if the entity is a folder.
func (e *Entity) IsFolder() bool {
	return e.Kind() == KindFolder
}

// ChangeRecord is a single event from the drive change stream.
type ChangeRecord struct {
	// ChangeType is the kind of object that changed ("file" for files and folders).
	ChangeType string

	// Removed is true if the entity was removed or access to it was lost.
	Removed bool

	// EntityID identifies the changed entity.
	EntityID string

	// Entity is the current state of the entity. Nil when Removed.
	Entity *Entity
}
