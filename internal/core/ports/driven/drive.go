package driven

import (
	"context"

	"github.com/custodia-labs/drivesync/internal/core/domain"
)

// DriveService is the external drive the pipeline mirrors.
// Every call carries a retry budget for transient failures; an error
// returned after the budget is exhausted wraps domain.ErrTransport.
type DriveService interface {
	// GetStartCursor returns a start token for the change stream at "now".
	GetStartCursor(ctx context.Context, retries int) (string, error)

	// ListChanges returns one page of changes starting at req.PageToken.
	ListChanges(ctx context.Context, req ListRequest) (*ChangesPage, error)

	// ListAll returns one page of the full entity listing.
	ListAll(ctx context.Context, req ListRequest) (*EntitiesPage, error)

	// ExportAs exports a native document to the target MIME type.
	ExportAs(ctx context.Context, fileID, targetMimeType string, retries int) ([]byte, error)

	// DownloadRaw downloads the raw bytes of a binary file.
	DownloadRaw(ctx context.Context, fileID string, retries int) ([]byte, error)
}

// ListRequest selects a page of a drive listing.
type ListRequest struct {
	// PageToken is the cursor or continuation token. Empty for the first page
	// of a full listing.
	PageToken string

	// PageSize is the maximum number of records per page.
	PageSize int64

	// Retries is the retry budget for transient failures.
	Retries int
}

// ChangesPage is one page of the change stream.
type ChangesPage struct {
	// Changes are the change records on this page.
	Changes []domain.ChangeRecord

	// NextPageToken continues the listing. Empty on the last page.
	NextPageToken string

	// NewStartCursor is the cursor for the next incremental run.
	// Only set on the last page.
	NewStartCursor string
}

// EntitiesPage is one page of the full listing.
type EntitiesPage struct {
	// Entities are the files and folders on this page.
	Entities []domain.Entity

	// NextPageToken continues the listing. Empty on the last page.
	NextPageToken string
}
