package vmp

import (
	"context"
	"fmt"
	"time"
)

// Clock abstracts the timing of WaitForBatch so tests can drive the poll loop
// without wall-clock sleeps.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time                         { return time.Now() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// WaitForBatchOptions override the client poll defaults for one call.
type WaitForBatchOptions struct {
	// Timeout is the overall poll budget (client default: 30s).
	Timeout time.Duration
	// PollInterval is the delay between proof fetches (client default: 800ms).
	PollInterval time.Duration
}

// WaitForBatch re-fetches the proof for an event until it has been committed
// to a batch, returning the first proof with a non-nil batch id.
//
// The proof endpoint is read-only and idempotent, which is the only reason a
// re-poll is safe here; this is not a general retry policy. Each fetch is
// bounded by the client request timeout, the loop by the poll budget. On
// budget exhaustion the error wraps ErrWaitForBatchTimeout and names the
// event id and budget.
func (c *Client) WaitForBatch(ctx context.Context, eventID string, opts *WaitForBatchOptions) (*ProofResponse, error) {
	if err := validateUUIDLike("event_id", eventID); err != nil {
		return nil, err
	}

	timeout := c.pollTimeout
	interval := c.pollInterval
	if opts != nil {
		if opts.Timeout > 0 {
			timeout = opts.Timeout
		}
		if opts.PollInterval > 0 {
			interval = opts.PollInterval
		}
	}

	deadline := c.clock.Now().Add(timeout)
	for {
		proof, err := c.GetProof(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if proof.Batched() {
			return proof, nil
		}

		if c.clock.Now().After(deadline) {
			return nil, fmt.Errorf("wait for batch of event %s: budget %s exhausted: %w",
				eventID, timeout, ErrWaitForBatchTimeout)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-c.clock.After(interval):
		}
	}
}
