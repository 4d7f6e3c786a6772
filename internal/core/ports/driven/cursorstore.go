package driven

import "context"

// CursorStore persists opaque resumable tokens across process restarts.
// Values never expire.
type CursorStore interface {
	// Get retrieves the token stored under key.
	// Returns domain.ErrNotFound if no token has been stored.
	Get(ctx context.Context, key string) (string, error)

	// Set stores or replaces the token under key.
	Set(ctx context.Context, key, token string) error
}
