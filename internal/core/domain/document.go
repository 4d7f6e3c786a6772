package domain

// Index names used by the search index.
const (
	IndexLocations = "file_locations"
	IndexOwners    = "file_owners"
	IndexFiles     = "files"
)

// IndexDocument is a record that can be upserted into a search index.
type IndexDocument interface {
	// DocumentID returns the primary key of the record.
	DocumentID() string
}

// FileDocument is the flat, index-ready record for a drive file.
// Field names in JSON match the files index schema.
type FileDocument struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	MimeType       string            `json:"mimeType"`
	WebViewLink    string            `json:"webViewLink"`
	IconLink       string            `json:"iconLink"`
	CreatedTime    int64             `json:"createdTime"`
	ModifiedTime   int64             `json:"modifiedTime"`
	LastModifiedBy string            `json:"lastModifiedBy"`
	Owners         []string          `json:"owners"`
	Shared         bool              `json:"shared"`
	Location       []string          `json:"location"`
	LocationLink   map[string]string `json:"locationLink"`
	Content        string            `json:"content"`
}

// DocumentID implements IndexDocument.
func (d FileDocument) DocumentID() string { return d.ID }

// OwnerRecord is a deduplicated owner entry.
type OwnerRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DocumentID implements IndexDocument.
func (o OwnerRecord) DocumentID() string { return o.ID }

// LocationRecord is a deduplicated location (folder or pseudo-location) entry.
type LocationRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DocumentID implements IndexDocument.
func (l LocationRecord) DocumentID() string { return l.ID }
