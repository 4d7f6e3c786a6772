package google

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/drivesync/internal/core/domain"
)

// apiCode returns the HTTP status of a Google API error, or 0.
func apiCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}

// IsUnauthorized returns true if the error indicates invalid credentials,
// either rejected by the API or by the token endpoint during refresh.
func IsUnauthorized(err error) bool {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return true
	}
	return apiCode(err) == http.StatusUnauthorized
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return apiCode(err) == http.StatusNotFound
}

// IsRateLimited returns true if the error indicates rate limiting.
// Drive also reports per-user rate limits as 403 with a rateLimitExceeded reason.
func IsRateLimited(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	if gerr.Code == http.StatusTooManyRequests {
		return true
	}
	if gerr.Code == http.StatusForbidden {
		for _, item := range gerr.Errors {
			if item.Reason == "rateLimitExceeded" || item.Reason == "userRateLimitExceeded" {
				return true
			}
		}
	}
	return false
}

// IsTransient returns true for failures worth retrying: 5xx responses,
// rate limiting and network errors.
// Missing credentials are never transient, even when the HTTP client
// reports them as a *url.Error.
func IsTransient(err error) bool {
	if err == nil || isContextError(err) || IsUnauthorized(err) || errors.Is(err, domain.ErrAuthRequired) {
		return false
	}
	if code := apiCode(err); code != 0 {
		return code >= http.StatusInternalServerError || IsRateLimited(err)
	}

	// *url.Error satisfies net.Error whatever it wraps, so judge the cause
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		err = urlErr.Err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)
}

// RetryAfter returns the server requested delay of a rate limit response, or 0.
func RetryAfter(err error) time.Duration {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}
	seconds, convErr := strconv.Atoi(gerr.Header.Get("Retry-After"))
	if convErr != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// WrapError classifies a Google API error with the domain sentinels.
// Invalid credentials abort the run; everything else from the API or the
// network is a transport error, so a single file's failure can be skipped.
// Context errors pass through unchanged.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrAuthRequired) || isContextError(err) {
		return err
	}

	switch {
	case IsUnauthorized(err):
		return fmt.Errorf("%w: %w", domain.ErrAuthInvalid, err)
	case IsRateLimited(err):
		return fmt.Errorf("%w: %w: %w", domain.ErrTransport, domain.ErrRateLimited, err)
	case apiCode(err) != 0 || IsTransient(err):
		return fmt.Errorf("%w: %w", domain.ErrTransport, err)
	default:
		return err
	}
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
