// Package vmp is a client for the Verifiable Memory Protocol HTTP API.
//
// The VMP service owns the ledger, Merkle batching and signing; this package
// only shapes requests, validates caller input before the wire, and maps
// responses and failures into typed Go values. Timestamps are relayed as the
// RFC 3339 strings the server produced.
package vmp

// Op is the ledger operation carried by an ingest event.
type Op string

const (
	OpWrite  Op = "write"
	OpDelete Op = "delete"
)

// IngestRequest is the body of POST /v1/ingest.
type IngestRequest struct {
	TenantID string         `json:"tenant_id"`
	Scope    string         `json:"scope"`
	Op       Op             `json:"op"`
	Fields   map[string]any `json:"fields"`
	Meta     map[string]any `json:"meta"`
}

// IngestResponse acknowledges an appended event. PrevHashHex is nil for the
// first event of a tenant chain; the client relays the chain linkage without
// verifying it.
type IngestResponse struct {
	EventID      string  `json:"event_id"`
	EventHashHex string  `json:"event_hash_hex"`
	PrevHashHex  *string `json:"prev_hash_hex"`
	CreatedAt    string  `json:"created_at"`
}

// DeleteRequest is the body of POST /v1/delete.
type DeleteRequest struct {
	TenantID      string         `json:"tenant_id"`
	Scope         string         `json:"scope"`
	TargetEventID string         `json:"target_event_id"`
	Meta          map[string]any `json:"meta"`
}

// DeleteResponse carries the delete event and its signed deletion receipt.
type DeleteResponse struct {
	DeleteEventID      string `json:"delete_event_id"`
	DeleteEventHashHex string `json:"delete_event_hash_hex"`
	ReceiptID          string `json:"receipt_id"`
	ReceiptSigBase64   string `json:"receipt_sig_base64"`
	PubkeyID           string `json:"pubkey_id"`
	PubkeyBase64       string `json:"pubkey_base64"`
	PubkeyHex          string `json:"pubkey_hex"`
	CreatedAt          string `json:"created_at"`
}

// ProofPathItem is one sibling step of a Merkle inclusion path.
type ProofPathItem struct {
	SiblingHex    string `json:"sibling_hex"`
	SiblingIsLeft bool   `json:"sibling_is_left"`
}

// ProofResponse is the inclusion evidence for one event. BatchID is nil
// exactly while the event has not been committed to a batch yet; the leaf,
// root and signature fields are nil in the same window.
type ProofResponse struct {
	EventID        string          `json:"event_id"`
	TenantID       string          `json:"tenant_id"`
	Scope          string          `json:"scope"`
	BatchID        *string         `json:"batch_id"`
	LeafIndex      *int            `json:"leaf_index"`
	LeafHex        *string         `json:"leaf_hex"`
	RootHex        *string         `json:"root_hex"`
	Path           []ProofPathItem `json:"path"`
	SigBase64      *string         `json:"sig_base64"`
	PubkeyID       *string         `json:"pubkey_id"`
	PubkeyBase64   *string         `json:"pubkey_base64"`
	PubkeyHex      *string         `json:"pubkey_hex"`
	BatchCreatedAt *string         `json:"batch_created_at"`
}

// Batched reports whether the event has been committed to a batch.
func (p *ProofResponse) Batched() bool {
	return p.BatchID != nil
}

// DeletionReceiptResponse is a signed claim that a delete event occurred.
type DeletionReceiptResponse struct {
	ReceiptID          string `json:"receipt_id"`
	TenantID           string `json:"tenant_id"`
	Scope              string `json:"scope"`
	DeleteEventID      string `json:"delete_event_id"`
	DeleteEventHashHex string `json:"delete_event_hash_hex"`
	SigBase64          string `json:"sig_base64"`
	PubkeyID           string `json:"pubkey_id"`
	PubkeyBase64       string `json:"pubkey_base64"`
	PubkeyHex          string `json:"pubkey_hex"`
	CreatedAt          string `json:"created_at"`
}

// VerifyDeletionResponse adds the server-side validity verdict to a receipt.
type VerifyDeletionResponse struct {
	ReceiptID          string `json:"receipt_id"`
	Valid              bool   `json:"valid"`
	TenantID           string `json:"tenant_id"`
	Scope              string `json:"scope"`
	DeleteEventID      string `json:"delete_event_id"`
	DeleteEventHashHex string `json:"delete_event_hash_hex"`
	PubkeyID           string `json:"pubkey_id"`
	PubkeyBase64       string `json:"pubkey_base64"`
	PubkeyHex          string `json:"pubkey_hex"`
	CreatedAt          string `json:"created_at"`
}

// WhoAmIResponse describes the tenant and key the client is authenticated as.
type WhoAmIResponse struct {
	TenantID      string   `json:"tenant_id"`
	KeyID         string   `json:"key_id"`
	AllowedScopes []string `json:"allowed_scopes"`
	ScopePrefix   *string  `json:"scope_prefix"`
}

// AdminEventItem is a read-only projection of one ledger event.
type AdminEventItem struct {
	ID        string  `json:"id"`
	TenantID  string  `json:"tenant_id"`
	Scope     string  `json:"scope"`
	Op        Op      `json:"op"`
	CreatedAt string  `json:"created_at"`
	BatchID   *string `json:"batch_id"`
	LeafIndex *int    `json:"leaf_index"`
}

type AdminListEventsResponse struct {
	Items []AdminEventItem `json:"items"`
}

// AdminBatchItem is a read-only projection of one committed batch.
type AdminBatchItem struct {
	ID           string  `json:"id"`
	TenantID     string  `json:"tenant_id"`
	RootHex      string  `json:"root_hex"`
	SigBase64    *string `json:"sig_base64"`
	PubkeyID     *string `json:"pubkey_id"`
	PubkeyBase64 *string `json:"pubkey_base64"`
	PubkeyHex    *string `json:"pubkey_hex"`
	Count        int     `json:"count"`
	CreatedAt    string  `json:"created_at"`
}

type AdminListBatchesResponse struct {
	Items []AdminBatchItem `json:"items"`
}

type AdminListDeletionReceiptsResponse struct {
	Items []DeletionReceiptResponse `json:"items"`
}

// AdminStatsResponse carries ledger totals for a tenant.
type AdminStatsResponse struct {
	EventsTotal   int `json:"events_total"`
	BatchesTotal  int `json:"batches_total"`
	ReceiptsTotal int `json:"receipts_total"`
}

// PubkeyResponse describes one of the service's signing keys.
type PubkeyResponse struct {
	PubkeyID     string `json:"pubkey_id"`
	Alg          string `json:"alg"`
	Status       string `json:"status"`
	PubkeyBase64 string `json:"pubkey_base64"`
	PubkeyHex    string `json:"pubkey_hex"`
}

// EventBundleEvent is the full stored event record inside a bundle, including
// the canonical serializations the server hashed.
type EventBundleEvent struct {
	ID           string         `json:"id"`
	TenantID     string         `json:"tenant_id"`
	Scope        string         `json:"scope"`
	Op           Op             `json:"op"`
	CreatedAt    string         `json:"created_at"`
	Fields       map[string]any `json:"fields"`
	Meta         map[string]any `json:"meta"`
	EventHashHex string         `json:"event_hash_hex"`
	PrevHashHex  *string        `json:"prev_hash_hex"`
	FieldsCanon  string         `json:"fields_canon"`
	MetaCanon    string         `json:"meta_canon"`
	CFieldsHex   string         `json:"c_fields_hex"`
	BatchID      *string        `json:"batch_id"`
	LeafIndex    *int           `json:"leaf_index"`
}

// EventBundleRecompute is the server's own hash recomputation over the bundle.
type EventBundleRecompute struct {
	RecomputedEventHashHex string `json:"recomputed_event_hash_hex"`
	MatchesStored          bool   `json:"matches_stored"`
}

// EventBundleResponse is a self-contained export of one event, its proof and
// the server-side recompute, suitable for offline verification.
type EventBundleResponse struct {
	Kind      string               `json:"kind"`
	Event     EventBundleEvent     `json:"event"`
	Proof     ProofResponse        `json:"proof"`
	Recompute EventBundleRecompute `json:"recompute"`
}

type DeletionReceiptBundleVerification struct {
	ReceiptID string `json:"receipt_id"`
	Valid     bool   `json:"valid"`
}

// DeletionReceiptBundleResponse packages a receipt, its verification verdict
// and the bundle of the underlying delete event.
type DeletionReceiptBundleResponse struct {
	Kind              string                            `json:"kind"`
	Receipt           DeletionReceiptResponse           `json:"receipt"`
	Verification      DeletionReceiptBundleVerification `json:"verification"`
	DeleteEventBundle EventBundleResponse               `json:"delete_event_bundle"`
}

// VerifyBundleResponse is the verdict of the server's offline bundle
// verifier. Checks stays an open map because the server may evolve its check
// keys independently of this client.
type VerifyBundleResponse struct {
	OK     bool           `json:"ok"`
	Checks map[string]any `json:"checks"`
}

// ProvisionCreateKeyRequest is the body of POST /v1/admin/api-keys.
type ProvisionCreateKeyRequest struct {
	TenantID    string   `json:"tenant_id"`
	Label       string   `json:"label"`
	Scopes      []string `json:"scopes,omitempty"`
	ScopePrefix *string  `json:"scope_prefix,omitempty"`
	ExpiresAt   *string  `json:"expires_at,omitempty"`
}

// ProvisionCreateKeyResponse carries the newly minted key. Secret is returned
// exactly once and never retrievable again.
type ProvisionCreateKeyResponse struct {
	ID          string   `json:"id"`
	TenantID    string   `json:"tenant_id"`
	Name        string   `json:"name"`
	Scopes      []string `json:"scopes"`
	ScopePrefix *string  `json:"scope_prefix"`
	CreatedAt   string   `json:"created_at"`
	ExpiresAt   *string  `json:"expires_at"`
	KeyPrefix   string   `json:"key_prefix"`
	Secret      string   `json:"secret"`
}

type ProvisionRevokeKeyResponse struct {
	ID        string   `json:"id"`
	TenantID  string   `json:"tenant_id"`
	Name      string   `json:"name"`
	KeyPrefix string   `json:"key_prefix"`
	Scopes    []string `json:"scopes"`
	CreatedAt string   `json:"created_at"`
	ExpiresAt *string  `json:"expires_at"`
	RevokedAt string   `json:"revoked_at"`
}

type ProvisionListKeyItem struct {
	ID        string   `json:"id"`
	TenantID  string   `json:"tenant_id"`
	Name      string   `json:"name"`
	KeyPrefix string   `json:"key_prefix"`
	Scopes    []string `json:"scopes"`
	CreatedAt string   `json:"created_at"`
	ExpiresAt *string  `json:"expires_at"`
	RevokedAt *string  `json:"revoked_at"`
}

type ProvisionListKeysResponse struct {
	TenantID string                 `json:"tenant_id"`
	Items    []ProvisionListKeyItem `json:"items"`
}
