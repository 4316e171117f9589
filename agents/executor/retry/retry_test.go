/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package retry_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"chainguard.dev/casecrew/agents/executor/retry"
)

func fastConfig() retry.Config {
	return retry.Config{
		MaxRetries:  3,
		BaseBackoff: time.Millisecond,
		MaxBackoff:  5 * time.Millisecond,
		MaxJitter:   time.Millisecond,
	}
}

var errTransient = errors.New("429 too many requests")

func isTransient(err error) bool { return errors.Is(err, errTransient) }

func TestDo(t *testing.T) {
	tests := []struct {
		name         string
		failures     int32
		err          error
		wantAttempts int32
		wantErr      bool
	}{
		{name: "first try", failures: 0, err: errTransient, wantAttempts: 1},
		{name: "recovers", failures: 2, err: errTransient, wantAttempts: 3},
		{name: "exhausted", failures: 10, err: errTransient, wantAttempts: 4, wantErr: true},
		{name: "permanent error", failures: 10, err: errors.New("400 bad request"), wantAttempts: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var attempts atomic.Int32
			got, err := retry.Do(context.Background(), fastConfig(), "op", isTransient, func() (string, error) {
				if attempts.Add(1) <= tt.failures {
					return "", tt.err
				}
				return "ok", nil
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Do() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != "ok" {
				t.Errorf("Do() = %q, want ok", got)
			}
			if tt.wantErr && !errors.Is(err, tt.err) {
				t.Errorf("Do() error = %v, want it to wrap %v", err, tt.err)
			}
			if n := attempts.Load(); n != tt.wantAttempts {
				t.Errorf("attempts = %d, want %d", n, tt.wantAttempts)
			}
		})
	}
}

func TestDoContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := retry.Config{MaxRetries: 5, BaseBackoff: time.Hour, MaxBackoff: time.Hour}

	var attempts atomic.Int32
	_, err := retry.Do(ctx, cfg, "op", isTransient, func() (int, error) {
		if attempts.Add(1) == 1 {
			cancel()
		}
		return 0, errTransient
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Do() error = %v, want context.Canceled", err)
	}
	if n := attempts.Load(); n != 1 {
		t.Errorf("attempts = %d, want 1", n)
	}
}

func TestBackoff(t *testing.T) {
	cfg := retry.Config{BaseBackoff: time.Second, MaxBackoff: 10 * time.Second}
	for attempt, want := range []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second, 10 * time.Second, 10 * time.Second} {
		if got := cfg.Backoff(attempt); got != want {
			t.Errorf("Backoff(%d) = %v, want %v", attempt, got, want)
		}
	}
	// Shifting far enough overflows; it must still clamp.
	if got := cfg.Backoff(80); got != 10*time.Second {
		t.Errorf("Backoff(80) = %v, want clamp", got)
	}
}

func TestValidate(t *testing.T) {
	if err := retry.DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
	for _, cfg := range []retry.Config{
		{MaxRetries: -1},
		{BaseBackoff: -1},
		{MaxBackoff: -1},
		{MaxJitter: -1},
	} {
		if err := cfg.Validate(); err == nil {
			t.Errorf("Validate(%+v) = nil, want error", cfg)
		}
	}
}

type statusErr struct{ code int }

func (e statusErr) Error() string { return "status" }

func TestOnStatus(t *testing.T) {
	status := func(err error) (int, bool) {
		var se statusErr
		if errors.As(err, &se) {
			return se.code, true
		}
		return 0, false
	}
	retryable := retry.OnStatus(status, retry.TransientHTTPStatuses...)

	for code, want := range map[int]bool{429: true, 529: true, 503: true, 400: false, 401: false} {
		if got := retryable(statusErr{code}); got != want {
			t.Errorf("retryable(%d) = %v, want %v", code, got, want)
		}
	}
	if retryable(errors.New("no status")) {
		t.Error("retryable(plain error) = true")
	}
}
