package vmp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitTestEventID = "123e4567-e89b-12d3-a456-426614174000"

// manualClock advances instantly on After so poll-loop tests never sleep on
// wall time.
type manualClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) After(d time.Duration) <-chan time.Time {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

// proofSequenceDoer serves the proof endpoint with batch_id null for the
// first unbatchedPolls requests and a committed batch afterwards.
type proofSequenceDoer struct {
	unbatchedPolls int
	calls          int
}

func (d *proofSequenceDoer) Do(req *http.Request) (*http.Response, error) {
	d.calls++

	batchID := `null`
	if d.calls > d.unbatchedPolls {
		batchID = `"123e4567-e89b-12d3-a456-426614174009"`
	}
	body := fmt.Sprintf(`{
		"event_id":%q,"tenant_id":"t1","scope":"user:1",
		"batch_id":%s,"leaf_index":null,"leaf_hex":null,"root_hex":null,
		"path":[],"sig_base64":null,"pubkey_id":null,"pubkey_base64":null,"pubkey_hex":null,
		"batch_created_at":null
	}`, waitTestEventID, batchID)

	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}, nil
}

func newWaitClient(t *testing.T, doer Doer, clock Clock) *Client {
	t.Helper()

	client, err := NewClient(Config{
		BaseURL:    "http://vmp.invalid",
		APIKey:     "vmp_test_key",
		HTTPClient: doer,
		Clock:      clock,
	})
	require.NoError(t, err)
	return client
}

func TestWaitForBatchReturnsFirstBatchedProof(t *testing.T) {
	t.Parallel()

	clock := newManualClock()
	doer := &proofSequenceDoer{unbatchedPolls: 3}
	client := newWaitClient(t, doer, clock)

	proof, err := client.WaitForBatch(context.Background(), waitTestEventID, &WaitForBatchOptions{
		Timeout:      30 * time.Second,
		PollInterval: 800 * time.Millisecond,
	})
	require.NoError(t, err)

	assert.True(t, proof.Batched())
	assert.Equal(t, 4, doer.calls, "returns on the first poll after batching")
	require.Len(t, clock.sleeps, 3, "sleeps once per unbatched poll")
	for _, d := range clock.sleeps {
		assert.Equal(t, 800*time.Millisecond, d)
	}
}

func TestWaitForBatchTimesOutAfterBudgetNotBefore(t *testing.T) {
	t.Parallel()

	clock := newManualClock()
	doer := &proofSequenceDoer{unbatchedPolls: 1 << 30}
	client := newWaitClient(t, doer, clock)

	start := clock.Now()
	_, err := client.WaitForBatch(context.Background(), waitTestEventID, &WaitForBatchOptions{
		Timeout:      2 * time.Second,
		PollInterval: 800 * time.Millisecond,
	})
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrWaitForBatchTimeout)
	assert.Contains(t, err.Error(), waitTestEventID)
	assert.Contains(t, err.Error(), "2s")
	assert.GreaterOrEqual(t, clock.Now().Sub(start), 2*time.Second, "never fails before the budget elapses")
	assert.Greater(t, doer.calls, 1)
}

func TestWaitForBatchUsesClientDefaults(t *testing.T) {
	t.Parallel()

	clock := newManualClock()
	doer := &proofSequenceDoer{unbatchedPolls: 2}

	client, err := NewClient(Config{
		BaseURL:      "http://vmp.invalid",
		APIKey:       "vmp_test_key",
		HTTPClient:   doer,
		Clock:        clock,
		PollInterval: 100 * time.Millisecond,
		PollTimeout:  5 * time.Second,
	})
	require.NoError(t, err)

	proof, err := client.WaitForBatch(context.Background(), waitTestEventID, nil)
	require.NoError(t, err)
	assert.True(t, proof.Batched())
	require.Len(t, clock.sleeps, 2)
	assert.Equal(t, 100*time.Millisecond, clock.sleeps[0])
}

func TestWaitForBatchHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	// A blocked clock keeps the loop inside the sleep select.
	clock := &blockedClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	doer := &proofSequenceDoer{unbatchedPolls: 1 << 30}
	client := newWaitClient(t, doer, clock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.WaitForBatch(ctx, waitTestEventID, &WaitForBatchOptions{
		Timeout:      time.Minute,
		PollInterval: time.Second,
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWaitForBatchValidatesEventID(t *testing.T) {
	t.Parallel()

	doer := &proofSequenceDoer{}
	client := newWaitClient(t, doer, newManualClock())

	_, err := client.WaitForBatch(context.Background(), "nope", nil)
	require.Error(t, err)
	assert.Zero(t, doer.calls)
}

type blockedClock struct {
	now time.Time
}

func (c *blockedClock) Now() time.Time                         { return c.now }
func (c *blockedClock) After(d time.Duration) <-chan time.Time { return make(chan time.Time) }
