// Package retry provides a generic retry mechanism with exponential backoff
// and jitter, used for calls to the upstream search provider.
package retry

import (
	"context"
	"math/rand"
	"time"
)

// Config holds the retry configuration options.
type Config struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration

	// Multiplier grows the delay after each retry.
	Multiplier float64

	// JitterFactor adds up to this fraction of random jitter to each delay.
	JitterFactor float64

	// RetryIf decides whether an error is worth retrying.
	// A nil predicate retries every error.
	RetryIf func(error) bool
}

// ProviderConfig is tuned for external API calls.
var ProviderConfig = Config{
	MaxAttempts:  3,
	InitialDelay: 200 * time.Millisecond,
	MaxDelay:     2 * time.Second,
	Multiplier:   2.0,
	JitterFactor: 0.2,
}

// Do executes fn, retrying per the configuration. The zero result of T and
// the last error are returned when all attempts fail; context cancellation
// aborts between attempts and during delays.
func Do[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if cfg.RetryIf != nil && !cfg.RetryIf(err) {
			return zero, err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(withJitter(delay, cfg.MaxDelay, cfg.JitterFactor)):
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
	}

	return zero, lastErr
}

// withJitter caps the delay and adds random jitter.
func withJitter(delay, max time.Duration, jitterFactor float64) time.Duration {
	if max > 0 && delay > max {
		delay = max
	}
	if jitterFactor > 0 {
		jitter := time.Duration(rand.Float64() * jitterFactor * float64(delay))
		delay += jitter
	}
	return delay
}
