package drive

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"

	"github.com/custodia-labs/drivesync/internal/connectors/google"
	"github.com/custodia-labs/drivesync/internal/core/domain"
	"github.com/custodia-labs/drivesync/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.DriveService = (*Client)(nil)

// Client implements driven.DriveService on the Drive v3 API.
// Every call is rate limited and retried with backoff on transient errors;
// failures are classified with google.WrapError.
type Client struct {
	svc     *drive.Service
	limiter *google.RateLimiter
	cfg     Config
}

// NewClient creates a Drive client around an API service.
func NewClient(svc *drive.Service, cfg Config) *Client {
	if cfg.MaxDownloadBytes <= 0 {
		cfg.MaxDownloadBytes = DefaultMaxDownloadBytes
	}
	return &Client{
		svc:     svc,
		limiter: google.NewRateLimiter(cfg.RateLimit),
		cfg:     cfg,
	}
}

// GetStartCursor returns the current position of the change stream.
func (c *Client) GetStartCursor(ctx context.Context, retries int) (string, error) {
	resp, err := call(ctx, c, retries, func() (*drive.StartPageToken, error) {
		return c.svc.Changes.GetStartPageToken().
			SupportsAllDrives(true).
			Context(ctx).
			Do()
	})
	if err != nil {
		return "", fmt.Errorf("get start page token: %w", err)
	}
	if resp.StartPageToken == "" {
		return "", fmt.Errorf("get start page token: %w: empty token", domain.ErrTransport)
	}
	return resp.StartPageToken, nil
}

// ListChanges fetches one page of the change stream.
func (c *Client) ListChanges(ctx context.Context, req driven.ListRequest) (*driven.ChangesPage, error) {
	resp, err := call(ctx, c, req.Retries, func() (*drive.ChangeList, error) {
		call := c.svc.Changes.List(req.PageToken).
			Spaces("drive").
			Fields(changesFields).
			IncludeItemsFromAllDrives(true).
			SupportsAllDrives(true)
		if req.PageSize > 0 {
			call = call.PageSize(req.PageSize)
		}
		return call.Context(ctx).Do()
	})
	if err != nil {
		return nil, fmt.Errorf("list changes: %w", err)
	}

	page := &driven.ChangesPage{
		Changes:        make([]domain.ChangeRecord, 0, len(resp.Changes)),
		NextPageToken:  resp.NextPageToken,
		NewStartCursor: resp.NewStartPageToken,
	}
	for _, change := range resp.Changes {
		if change != nil {
			page.Changes = append(page.Changes, toChangeRecord(change))
		}
	}
	return page, nil
}

// ListAll fetches one page of the full listing across all drives.
func (c *Client) ListAll(ctx context.Context, req driven.ListRequest) (*driven.EntitiesPage, error) {
	resp, err := call(ctx, c, req.Retries, func() (*drive.FileList, error) {
		call := c.svc.Files.List().
			Spaces("drive").
			Corpora("allDrives").
			Fields(filesFields).
			IncludeItemsFromAllDrives(true).
			SupportsAllDrives(true)
		if req.PageToken != "" {
			call = call.PageToken(req.PageToken)
		}
		if req.PageSize > 0 {
			call = call.PageSize(req.PageSize)
		}
		return call.Context(ctx).Do()
	})
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	page := &driven.EntitiesPage{
		Entities:      make([]domain.Entity, 0, len(resp.Files)),
		NextPageToken: resp.NextPageToken,
	}
	for _, f := range resp.Files {
		if f != nil {
			page.Entities = append(page.Entities, toEntity(f))
		}
	}
	return page, nil
}

// ExportAs exports a native document to targetMimeType.
func (c *Client) ExportAs(ctx context.Context, fileID, targetMimeType string, retries int) ([]byte, error) {
	data, err := call(ctx, c, retries, func() ([]byte, error) {
		resp, err := c.svc.Files.Export(fileID, targetMimeType).Context(ctx).Download()
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		return c.readBody(resp.Body)
	})
	if err != nil {
		return nil, fmt.Errorf("export %s as %s: %w", fileID, targetMimeType, err)
	}
	return data, nil
}

// DownloadRaw downloads the stored bytes of a file.
func (c *Client) DownloadRaw(ctx context.Context, fileID string, retries int) ([]byte, error) {
	data, err := call(ctx, c, retries, func() ([]byte, error) {
		resp, err := c.svc.Files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		return c.readBody(resp.Body)
	})
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", fileID, err)
	}
	return data, nil
}

// readBody reads at most MaxDownloadBytes.
func (c *Client) readBody(body io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, c.cfg.MaxDownloadBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > c.cfg.MaxDownloadBytes {
		return nil, fmt.Errorf("%w: over %d bytes", domain.ErrTooLarge, c.cfg.MaxDownloadBytes)
	}
	return data, nil
}

// call runs fn under the rate limiter with retries and classifies the error.
func call[T any](ctx context.Context, c *Client, retries int, fn func() (T, error)) (T, error) {
	result, err := google.Retry(ctx, c.cfg.retryConfig(retries), func() (T, error) {
		var zero T
		if err := c.limiter.Wait(ctx); err != nil {
			return zero, err
		}
		result, err := fn()
		if google.IsRateLimited(err) {
			c.limiter.Pause(google.RetryAfter(err))
		}
		return result, err
	})
	return result, google.WrapError(err)
}
