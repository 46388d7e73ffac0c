// Package rpcretry wraps a fallible external call (an L1 or L2 RPC)
// with a bounded exponential-backoff retry policy. It is pure with
// respect to the wrapped call: no request rewriting, no idempotency
// enforcement. Callers must only hand it operations that are safe to
// retry.
package rpcretry

import (
	"context"
	"math/rand"
	"time"

	"github.com/go-errors/errors"
)

// ExhaustedError is returned by Do once every attempt has failed. It
// wraps the final underlying error so callers can distinguish "the
// operation itself failed" from other errors Do might surface (e.g.
// outer context cancellation).
type ExhaustedError struct {
	Label string
	Err   error
}

func (e *ExhaustedError) Error() string {
	return "rpcretry: " + e.Label + ": retries exhausted: " + e.Err.Error()
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// IsExhausted reports whether err is an ExhaustedError, i.e. the
// wrapped operation itself failed on every attempt rather than the
// outer context being cancelled.
func IsExhausted(err error) bool {
	_, ok := err.(*ExhaustedError)
	return ok
}

// Config parameterises the retry harness.
type Config struct {
	// Timeout bounds a single attempt.
	Timeout time.Duration

	// MaxRetries is the number of additional attempts after the first.
	MaxRetries int

	// BaseDelay is the backoff floor; delay doubles every attempt.
	BaseDelay time.Duration

	// MaxDelay caps the computed backoff before jitter is added.
	MaxDelay time.Duration

	// JitterMax is the upper bound of the uniform jitter added to
	// every backoff sleep.
	JitterMax time.Duration
}

// DefaultConfig mirrors the defaults used by the original XMR wallet
// RPC client: a six second per-attempt timeout, three retries, and a
// 250ms/5s/250ms backoff envelope.
func DefaultConfig() Config {
	return Config{
		Timeout:    6 * time.Second,
		MaxRetries: 3,
		BaseDelay:  250 * time.Millisecond,
		MaxDelay:   5 * time.Second,
		JitterMax:  250 * time.Millisecond,
	}
}

// Do runs action, racing each attempt against cfg.Timeout. On error or
// timeout it backs off and retries up to cfg.MaxRetries additional
// times before surfacing the last error.
func Do(ctx context.Context, label string, cfg Config, action func(ctx context.Context) error) error {
	attempts := cfg.MaxRetries + 1

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		lastErr = runOnce(ctx, cfg.Timeout, action)
		if lastErr == nil {
			return nil
		}
		if attempt+1 >= attempts {
			return &ExhaustedError{Label: label, Err: lastErr}
		}

		delay := backoffDelay(cfg, attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return errors.Errorf("rpcretry: %s: %v", label, ctx.Err())
		}
	}
	return &ExhaustedError{Label: label, Err: lastErr}
}

func runOnce(ctx context.Context, timeout time.Duration, action func(ctx context.Context) error) error {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- action(attemptCtx)
	}()

	select {
	case err := <-done:
		return err
	case <-attemptCtx.Done():
		return attemptCtx.Err()
	}
}

func backoffDelay(cfg Config, attempt int) time.Duration {
	backoff := cfg.BaseDelay
	for i := 0; i < attempt; i++ {
		backoff *= 2
		if backoff > cfg.MaxDelay {
			backoff = cfg.MaxDelay
			break
		}
	}
	if backoff > cfg.MaxDelay {
		backoff = cfg.MaxDelay
	}

	jitter := time.Duration(0)
	if cfg.JitterMax > 0 {
		jitter = time.Duration(rand.Int63n(int64(cfg.JitterMax) + 1))
	}
	return backoff + jitter
}
