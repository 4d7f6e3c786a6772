package drive

import (
	"time"

	"github.com/custodia-labs/drivesync/internal/connectors/google"
)

// DefaultMaxDownloadBytes caps a single export or download (100 MiB).
const DefaultMaxDownloadBytes = 100 * 1024 * 1024

// Config holds Google Drive client configuration.
type Config struct {
	// MaxDownloadBytes is the largest body ExportAs or DownloadRaw will read.
	MaxDownloadBytes int64
	// BaseDelay and MaxDelay bound the retry backoff.
	BaseDelay time.Duration
	MaxDelay  time.Duration
	// RateLimit paces requests.
	RateLimit google.RateLimitConfig
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxDownloadBytes: DefaultMaxDownloadBytes,
		BaseDelay:        google.DefaultBaseDelay,
		MaxDelay:         google.DefaultMaxDelay,
		RateLimit:        google.DefaultRateLimit,
	}
}

// retryConfig returns the backoff settings for a call with the given retries.
func (c Config) retryConfig(retries int) google.RetryConfig {
	cfg := google.DefaultRetryConfig(retries)
	if c.BaseDelay > 0 {
		cfg.BaseDelay = c.BaseDelay
	}
	if c.MaxDelay > 0 {
		cfg.MaxDelay = c.MaxDelay
	}
	return cfg
}
