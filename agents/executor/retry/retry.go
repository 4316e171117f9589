/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package retry retries provider calls that fail with rate-limit or
// transient server errors.
//
// Retrying here is local to a single API call inside an executor. A stage
// whose executor ultimately fails is not retried by the pipeline.
package retry

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"time"

	"github.com/chainguard-dev/clog"
)

// Config controls how often and how long to back off.
type Config struct {
	// MaxRetries is the number of retries after the first attempt.
	// Zero disables retrying.
	MaxRetries int

	// BaseBackoff is the delay before the first retry; it doubles per attempt.
	BaseBackoff time.Duration

	// MaxBackoff caps the exponential delay.
	MaxBackoff time.Duration

	// MaxJitter is the upper bound of random delay added to each backoff.
	MaxJitter time.Duration
}

// DefaultConfig suits provider quota errors, which take a while to clear.
func DefaultConfig() Config {
	return Config{
		MaxRetries:  5,
		BaseBackoff: time.Second,
		MaxBackoff:  time.Minute,
		MaxJitter:   500 * time.Millisecond,
	}
}

// Validate rejects negative settings.
func (c Config) Validate() error {
	switch {
	case c.MaxRetries < 0:
		return errors.New("max retries cannot be negative")
	case c.BaseBackoff < 0:
		return errors.New("base backoff cannot be negative")
	case c.MaxBackoff < 0:
		return errors.New("max backoff cannot be negative")
	case c.MaxJitter < 0:
		return errors.New("max jitter cannot be negative")
	}
	return nil
}

// Backoff returns the delay before retry number attempt (zero based),
// without jitter.
func (c Config) Backoff(attempt int) time.Duration {
	d := c.BaseBackoff << attempt
	if d < 0 || d > c.MaxBackoff {
		return c.MaxBackoff
	}
	return d
}

func (c Config) jitter() time.Duration {
	if c.MaxJitter <= 0 {
		return 0
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(c.MaxJitter)))
	if err != nil {
		return 0
	}
	return time.Duration(n.Int64())
}

// Do calls fn until it succeeds, returns an error retryable rejects, or the
// retry budget is spent. It gives up early when ctx is done.
func Do[T any](ctx context.Context, cfg Config, operation string, retryable func(error) bool, fn func() (T, error)) (T, error) {
	var (
		result T
		err    error
	)
	for attempt := 0; ; attempt++ {
		result, err = fn()
		if err == nil || !retryable(err) {
			return result, err
		}
		if attempt >= cfg.MaxRetries {
			return result, fmt.Errorf("%s failed after %d retries: %w", operation, cfg.MaxRetries, err)
		}

		wait := cfg.Backoff(attempt) + cfg.jitter()
		clog.FromContext(ctx).With("operation", operation).
			With("attempt", attempt+1).
			With("max_retries", cfg.MaxRetries).
			With("backoff", wait).
			With("error", err.Error()).
			Warn("Transient provider error, retrying")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return result, ctx.Err()
		case <-timer.C:
		}
	}
}

// OnStatus returns a classifier that retries when status(err) is one of codes.
// status reports false when err carries no status.
func OnStatus(status func(error) (int, bool), codes ...int) func(error) bool {
	return func(err error) bool {
		code, ok := status(err)
		return ok && slices.Contains(codes, code)
	}
}

// TransientHTTPStatuses are the statuses every provider uses for rate limits
// and overload.
var TransientHTTPStatuses = []int{429, 500, 502, 503, 504, 529}
