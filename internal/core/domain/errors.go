package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSyncInProgress indicates a sync is already running.
	ErrSyncInProgress = errors.New("sync in progress")

	// ErrInvalidCursor indicates a stored cursor could not be decoded.
	ErrInvalidCursor = errors.New("invalid cursor format")

	// Drive Errors.

	// ErrTransport indicates a drive or index call failed after exhausting retries.
	ErrTransport = errors.New("transport error")

	// ErrEncrypted indicates a document could not be read because it is encrypted.
	ErrEncrypted = errors.New("document is encrypted")

	// ErrMalformedDocument indicates a document could not be parsed.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrTooLarge indicates a download exceeded the configured size limit.
	ErrTooLarge = errors.New("document too large")

	// Authentication Errors.

	// ErrAuthRequired indicates the drive requires authentication but none is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the authentication credentials are invalid.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

// IsItemError reports whether err is a per-item extraction failure that
// should not abort a sync run.
func IsItemError(err error) bool {
	return errors.Is(err, ErrTransport) ||
		errors.Is(err, ErrEncrypted) ||
		errors.Is(err, ErrMalformedDocument) ||
		errors.Is(err, ErrTooLarge)
}
