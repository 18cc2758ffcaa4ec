// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"context"
	"errors"
	"time"
)

const defaultMaxAttempts = 3

// Retrier executes an operation with bounded attempts and exponential
// backoff on transient failures. The wait before retry number n is
// 2^(n-1) * BaseDelay: 1 s, 2 s, 4 s, ... with the default base.
type Retrier struct {
	MaxAttempts int
	BaseDelay   time.Duration

	// sleep is swappable so tests can record backoff durations without
	// waiting them out.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRetrier returns a Retrier with at most maxAttempts attempts and a
// one-second backoff base. Non-positive maxAttempts selects the default (3).
func NewRetrier(maxAttempts int) *Retrier {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &Retrier{
		MaxAttempts: maxAttempts,
		BaseDelay:   time.Second,
		sleep:       sleepCtx,
	}
}

// Do runs op until it succeeds, fails non-transiently, or exhausts
// MaxAttempts. Non-transient failures return immediately without
// consuming retry budget or sleeping. When every attempt fails
// transiently, Do returns a *RetriesExhaustedError carrying the attempt
// count and the last cause.
func (r *Retrier) Do(ctx context.Context, op func() error) error {
	var last error
	for attempt := 0; attempt < r.MaxAttempts; attempt++ {
		err := op()
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return err
		}
		// http.Client timeouts match context.DeadlineExceeded just like an
		// expired caller deadline. Only the error produced by ctx itself is
		// final; a transport timeout under a live context retries.
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return err
		}
		last = err
		if attempt == r.MaxAttempts-1 {
			break
		}
		if err := r.sleep(ctx, r.BaseDelay<<attempt); err != nil {
			return err
		}
	}
	return &RetriesExhaustedError{Attempts: r.MaxAttempts, Last: last}
}

// sleepCtx waits for d, returning early if ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
