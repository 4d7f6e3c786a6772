package google

import (
	"context"
	"time"

	"github.com/custodia-labs/drivesync/internal/logger"
)

// Backoff defaults for Drive API calls.
const (
	DefaultBaseDelay  = 500 * time.Millisecond
	DefaultMaxDelay   = 32 * time.Second
	DefaultMultiplier = 2.0
)

// RetryConfig configures exponential backoff retry behaviour.
type RetryConfig struct {
	Retries    int           // Retries after the first attempt
	BaseDelay  time.Duration // Initial delay between attempts
	MaxDelay   time.Duration // Maximum delay between attempts
	Multiplier float64       // Exponential backoff multiplier
}

// DefaultRetryConfig returns the Drive defaults with the given retry count.
func DefaultRetryConfig(retries int) RetryConfig {
	return RetryConfig{
		Retries:    retries,
		BaseDelay:  DefaultBaseDelay,
		MaxDelay:   DefaultMaxDelay,
		Multiplier: DefaultMultiplier,
	}
}

// Retry runs fn until it succeeds, fails with a non-transient error, or
// runs out of retries. A rate limit response with Retry-After waits at
// least that long. The last error is returned.
func Retry[T any](ctx context.Context, cfg RetryConfig, fn func() (T, error)) (T, error) {
	var zero T
	delay := cfg.BaseDelay

	for attempt := 0; ; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		if !IsTransient(err) || attempt >= cfg.Retries {
			return zero, err
		}

		wait := max(delay, RetryAfter(err))
		logger.Debug("Transient drive error (attempt %d/%d), retrying in %s: %v", attempt+1, cfg.Retries+1, wait, err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
}
