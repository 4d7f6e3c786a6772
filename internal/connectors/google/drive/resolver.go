package drive

import "github.com/custodia-labs/drivesync/internal/core/domain"

// ResolveWebURL builds the browser URL for an entity whose webViewLink was
// not returned.
func ResolveWebURL(id, mimeType string) string {
	if id == "" {
		return ""
	}
	if mimeType == domain.MimeTypeFolder {
		return "https://drive.google.com/drive/folders/" + id
	}
	return "https://drive.google.com/file/d/" + id + "/view"
}
