// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a minimum delay between successive outbound requests.
// It wraps a token bucket with burst 1, so every wait is measured
// against the most recent actual send: calling Wait in a tight retry
// loop cannot drift ahead of schedule. Safe for concurrent use.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer returns a Pacer spacing requests at least delay apart.
// A non-positive delay yields a Pacer that never blocks.
func NewPacer(delay time.Duration) *Pacer {
	if delay <= 0 {
		return &Pacer{}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the configured delay since the previous request has
// elapsed, then records the new send time. It returns early only when
// ctx is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.limiter == nil {
		return ctx.Err()
	}
	return p.limiter.Wait(ctx)
}
