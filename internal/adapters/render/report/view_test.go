package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vemorak/vemorak-go/vmp"
)

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func TestProofRendersPendingEvent(t *testing.T) {
	t.Parallel()

	out, err := Proof(&vmp.ProofResponse{
		EventID:  "11111111-1111-4111-8111-111111111111",
		TenantID: "tenant-a",
		Scope:    "assistant:alice",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Inclusion Proof")
	assert.Contains(t, out, "pending (not batched yet)")
	assert.NotContains(t, out, "root")
}

func TestProofRendersBatchedEventWithPath(t *testing.T) {
	t.Parallel()

	out, err := Proof(&vmp.ProofResponse{
		EventID:   "11111111-1111-4111-8111-111111111111",
		TenantID:  "tenant-a",
		Scope:     "assistant:alice",
		BatchID:   strPtr("22222222-2222-4222-8222-222222222222"),
		LeafIndex: intPtr(3),
		LeafHex:   strPtr("aaaa000000000000000000000000000000000000000000000000000000000000"),
		RootHex:   strPtr("bbbb000000000000000000000000000000000000000000000000000000000000"),
		Path: []vmp.ProofPathItem{
			{SiblingHex: "cccc000000000000000000000000000000000000000000000000000000000000", SiblingIsLeft: true},
			{SiblingHex: "dddd000000000000000000000000000000000000000000000000000000000000"},
		},
		PubkeyID:       strPtr("key-1"),
		BatchCreatedAt: strPtr("2026-08-30T10:00:00Z"),
	})
	require.NoError(t, err)

	assert.Contains(t, out, "batched")
	assert.Contains(t, out, "path: 2 sibling(s)")
	assert.Contains(t, out, "left")
	assert.Contains(t, out, "cccc000000000000")
	assert.NotContains(t, out, "cccc0000000000000")
}

func TestReceiptRendersVerdict(t *testing.T) {
	t.Parallel()

	receipt := &vmp.DeletionReceiptResponse{
		ReceiptID:          "33333333-3333-4333-8333-333333333333",
		TenantID:           "tenant-a",
		Scope:              "assistant:alice",
		DeleteEventID:      "44444444-4444-4444-8444-444444444444",
		DeleteEventHashHex: "eeee000000000000000000000000000000000000000000000000000000000000",
		PubkeyID:           "key-1",
		CreatedAt:          "2026-08-30T10:00:00Z",
	}

	out, err := Receipt(receipt, &vmp.VerifyDeletionResponse{Valid: true})
	require.NoError(t, err)
	assert.Contains(t, out, "signature: valid")

	out, err = Receipt(receipt, &vmp.VerifyDeletionResponse{Valid: false})
	require.NoError(t, err)
	assert.Contains(t, out, "INVALID")

	out, err = Receipt(receipt, nil)
	require.NoError(t, err)
	assert.NotContains(t, out, "signature:")
}

func TestEventsRendersEmptyListing(t *testing.T) {
	t.Parallel()

	out, err := Events(&vmp.AdminListEventsResponse{})
	require.NoError(t, err)

	assert.Contains(t, out, "events: 0")
	assert.Contains(t, out, "No events recorded.")
}

func TestStatsRendersTotals(t *testing.T) {
	t.Parallel()

	out, err := Stats(&vmp.AdminStatsResponse{EventsTotal: 12, BatchesTotal: 3, ReceiptsTotal: 1})
	require.NoError(t, err)

	assert.Contains(t, out, "events: 12")
	assert.Contains(t, out, "batches: 3")
	assert.Contains(t, out, "receipts: 1")
}

func TestVerdictSortsCheckNames(t *testing.T) {
	t.Parallel()

	out, err := Verdict(&vmp.VerifyBundleResponse{
		OK: true,
		Checks: map[string]any{
			"root_matches":   true,
			"event_hash":     true,
			"sig_valid":      true,
			"leaf_recompute": true,
		},
	})
	require.NoError(t, err)

	assert.Contains(t, out, "bundle: verified")
	assert.Less(t, strings.Index(out, "event_hash"), strings.Index(out, "leaf_recompute"))
	assert.Less(t, strings.Index(out, "leaf_recompute"), strings.Index(out, "root_matches"))
	assert.Less(t, strings.Index(out, "root_matches"), strings.Index(out, "sig_valid"))
}

func TestWhoAmIRendersScopes(t *testing.T) {
	t.Parallel()

	out, err := WhoAmI(&vmp.WhoAmIResponse{
		TenantID:      "tenant-a",
		KeyID:         "key-1",
		AllowedScopes: []string{"assistant:alice", "assistant:bob"},
		ScopePrefix:   strPtr("assistant:"),
	})
	require.NoError(t, err)

	assert.Contains(t, out, "tenant-a")
	assert.Contains(t, out, "scope prefix: assistant:")
	assert.Contains(t, out, "assistant:alice, assistant:bob")
}
