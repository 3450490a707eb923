package vmp

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultPollInterval = 800 * time.Millisecond
	defaultPollTimeout  = 30 * time.Second
)

// Config configures a Client. BaseURL and APIKey are required; everything
// else has a sensible default.
type Config struct {
	// BaseURL of the VMP service, with or without a trailing slash.
	BaseURL string
	// APIKey is the tenant-scoped bearer key.
	APIKey string

	// TenantID, when set, is a local guardrail: requests naming a different
	// tenant fail before any network call.
	TenantID string
	// ScopePrefix, when set, restricts request scopes to the prefix. It must
	// end with ':' (mirrors the server-side key prefix rule).
	ScopePrefix string
	// DefaultMeta is merged into the meta of every convenience write/delete;
	// caller-supplied values win on key collision.
	DefaultMeta map[string]any

	// Timeout bounds each individual HTTP request. Defaults to 15s.
	Timeout time.Duration
	// PollInterval is the default WaitForBatch re-poll interval (800ms).
	PollInterval time.Duration
	// PollTimeout is the default WaitForBatch budget (30s).
	PollTimeout time.Duration

	// HTTPClient overrides the transport. Defaults to http.DefaultClient.
	HTTPClient Doer
	// Clock drives WaitForBatch timing. Defaults to the system clock.
	Clock Clock
}

// Client calls the VMP HTTP API. It holds only immutable configuration and is
// safe for concurrent use; every method issues at most one request at a time
// and returns the typed response or a typed error.
type Client struct {
	transport    *transport
	tenantID     string
	scopePrefix  string
	defaultMeta  map[string]any
	pollInterval time.Duration
	pollTimeout  time.Duration
	clock        Clock
}

// NewClient validates the configuration and builds a client. No network
// traffic is issued.
func NewClient(cfg Config) (*Client, error) {
	if err := validateNonEmpty("api_key", cfg.APIKey); err != nil {
		return nil, err
	}
	if cfg.ScopePrefix != "" {
		if err := validateScopePrefix(cfg.ScopePrefix); err != nil {
			return nil, err
		}
	}
	if cfg.TenantID != "" {
		if err := validateTenantID(cfg.TenantID); err != nil {
			return nil, err
		}
	}

	t, err := newTransport(cfg.BaseURL, cfg.APIKey, cfg.HTTPClient, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	pollTimeout := cfg.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = defaultPollTimeout
	}
	clock := cfg.Clock
	if clock == nil {
		clock = systemClock{}
	}

	return &Client{
		transport:    t,
		tenantID:     cfg.TenantID,
		scopePrefix:  cfg.ScopePrefix,
		defaultMeta:  cfg.DefaultMeta,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
		clock:        clock,
	}, nil
}

func (c *Client) enforceTenant(tenantID string) error {
	if err := validateTenantID(tenantID); err != nil {
		return err
	}
	if c.tenantID != "" && tenantID != c.tenantID {
		return newValidationError("tenant_id",
			fmt.Sprintf("client is configured for %q but request used %q", c.tenantID, tenantID))
	}
	return nil
}

func (c *Client) enforceScope(scope string) error {
	if err := validateScope(scope); err != nil {
		return err
	}
	if c.scopePrefix != "" {
		return validateScopeWithinPrefix(scope, c.scopePrefix)
	}
	return nil
}

// mergeMeta overlays caller meta on the client default meta. The result is
// never nil: the wire contract always carries a meta object.
func (c *Client) mergeMeta(meta map[string]any) map[string]any {
	merged := make(map[string]any, len(c.defaultMeta)+len(meta))
	for k, v := range c.defaultMeta {
		merged[k] = v
	}
	for k, v := range meta {
		merged[k] = v
	}
	return merged
}

// WhoAmI reports the tenant and key this client authenticates as.
func (c *Client) WhoAmI(ctx context.Context) (*WhoAmIResponse, error) {
	var out WhoAmIResponse
	if err := c.transport.do(ctx, call{method: "GET", path: "/v1/whoami"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// IngestParams are the inputs of one ingest call. Op defaults to OpWrite.
type IngestParams struct {
	TenantID       string
	Scope          string
	Op             Op
	Fields         map[string]any
	Meta           map[string]any
	IdempotencyKey string
}

// Ingest appends one event to the ledger.
func (c *Client) Ingest(ctx context.Context, params IngestParams) (*IngestResponse, error) {
	if err := c.enforceTenant(params.TenantID); err != nil {
		return nil, err
	}
	if err := c.enforceScope(params.Scope); err != nil {
		return nil, err
	}

	op := params.Op
	if op == "" {
		op = OpWrite
	}
	meta := params.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	fields := params.Fields
	if fields == nil {
		fields = map[string]any{}
	}

	body := IngestRequest{
		TenantID: params.TenantID,
		Scope:    params.Scope,
		Op:       op,
		Fields:   fields,
		Meta:     meta,
	}

	var out IngestResponse
	err := c.transport.do(ctx, call{
		method:         "POST",
		path:           "/v1/ingest",
		body:           body,
		idempotencyKey: params.IdempotencyKey,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// WriteMemoryParams are the inputs of the WriteMemory convenience wrapper.
type WriteMemoryParams struct {
	TenantID       string
	Scope          string
	Memory         MemoryObject
	Meta           map[string]any
	IdempotencyKey string
}

// WriteMemory ingests a canonical memory object as a write event, merging the
// client default meta with the caller's (caller wins).
func (c *Client) WriteMemory(ctx context.Context, params WriteMemoryParams) (*IngestResponse, error) {
	if params.Memory == nil {
		return nil, newValidationError("memory", "must not be nil")
	}
	return c.Ingest(ctx, IngestParams{
		TenantID:       params.TenantID,
		Scope:          params.Scope,
		Op:             OpWrite,
		Fields:         params.Memory.Fields(),
		Meta:           c.mergeMeta(params.Meta),
		IdempotencyKey: params.IdempotencyKey,
	})
}

// DeleteParams are the inputs of one delete call.
type DeleteParams struct {
	TenantID      string
	Scope         string
	TargetEventID string
	Meta          map[string]any
}

// Delete appends a delete event targeting a prior event and returns the
// signed deletion receipt.
func (c *Client) Delete(ctx context.Context, params DeleteParams) (*DeleteResponse, error) {
	if err := c.enforceTenant(params.TenantID); err != nil {
		return nil, err
	}
	if err := c.enforceScope(params.Scope); err != nil {
		return nil, err
	}
	if err := validateUUIDLike("target_event_id", params.TargetEventID); err != nil {
		return nil, err
	}

	meta := params.Meta
	if meta == nil {
		meta = map[string]any{}
	}

	body := DeleteRequest{
		TenantID:      params.TenantID,
		Scope:         params.Scope,
		TargetEventID: params.TargetEventID,
		Meta:          meta,
	}

	var out DeleteResponse
	if err := c.transport.do(ctx, call{method: "POST", path: "/v1/delete", body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMemoryEventParams are the inputs of the DeleteMemoryEvent wrapper.
type DeleteMemoryEventParams struct {
	TenantID      string
	Scope         string
	TargetEventID string
	Target        DeleteTarget
	Meta          map[string]any
}

// DeleteMemoryEvent deletes a prior write event, stamping the delete target's
// memory id into the merged meta so the receipt records which logical slot
// was cleared.
func (c *Client) DeleteMemoryEvent(ctx context.Context, params DeleteMemoryEventParams) (*DeleteResponse, error) {
	meta := c.mergeMeta(params.Meta)
	if params.Target.MemoryID != "" {
		meta["memory_id"] = params.Target.MemoryID
	}
	return c.Delete(ctx, DeleteParams{
		TenantID:      params.TenantID,
		Scope:         params.Scope,
		TargetEventID: params.TargetEventID,
		Meta:          meta,
	})
}

// GetProof fetches the Merkle inclusion proof for an event. BatchID is nil
// while the event is still unbatched.
func (c *Client) GetProof(ctx context.Context, eventID string) (*ProofResponse, error) {
	if err := validateUUIDLike("event_id", eventID); err != nil {
		return nil, err
	}
	var out ProofResponse
	if err := c.transport.do(ctx, call{method: "GET", path: "/v1/proof/" + eventID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDeletionReceipt fetches a signed deletion receipt by id.
func (c *Client) GetDeletionReceipt(ctx context.Context, receiptID string) (*DeletionReceiptResponse, error) {
	if err := validateUUIDLike("receipt_id", receiptID); err != nil {
		return nil, err
	}
	var out DeletionReceiptResponse
	if err := c.transport.do(ctx, call{method: "GET", path: "/v1/deletion-receipts/" + receiptID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyDeletion asks the server to check a receipt's signature.
func (c *Client) VerifyDeletion(ctx context.Context, receiptID string) (*VerifyDeletionResponse, error) {
	if err := validateUUIDLike("receipt_id", receiptID); err != nil {
		return nil, err
	}
	var out VerifyDeletionResponse
	if err := c.transport.do(ctx, call{method: "GET", path: "/v1/verify-deletion/" + receiptID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetEventBundle fetches the self-contained export of one event.
func (c *Client) GetEventBundle(ctx context.Context, eventID string) (*EventBundleResponse, error) {
	if err := validateUUIDLike("event_id", eventID); err != nil {
		return nil, err
	}
	var out EventBundleResponse
	if err := c.transport.do(ctx, call{method: "GET", path: "/v1/events/" + eventID + "/bundle"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDeletionReceiptBundle fetches a receipt together with its verification
// verdict and the underlying delete event bundle.
func (c *Client) GetDeletionReceiptBundle(ctx context.Context, receiptID string) (*DeletionReceiptBundleResponse, error) {
	if err := validateUUIDLike("receipt_id", receiptID); err != nil {
		return nil, err
	}
	var out DeletionReceiptBundleResponse
	if err := c.transport.do(ctx, call{method: "GET", path: "/v1/deletion-receipts/" + receiptID + "/bundle"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyEventBundleOffline submits a previously exported event bundle to the
// server's offline verifier. The endpoint is unauthenticated.
func (c *Client) VerifyEventBundleOffline(ctx context.Context, bundle map[string]any) (*VerifyBundleResponse, error) {
	var out VerifyBundleResponse
	if err := c.transport.do(ctx, call{method: "POST", path: "/v1/verify/bundle", body: bundle, noAuth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyDeletionBundleOffline submits a deletion-receipt bundle to the
// server's offline verifier. The endpoint is unauthenticated.
func (c *Client) VerifyDeletionBundleOffline(ctx context.Context, bundle map[string]any) (*VerifyBundleResponse, error) {
	var out VerifyBundleResponse
	if err := c.transport.do(ctx, call{method: "POST", path: "/v1/verify/deletion-bundle", body: bundle, noAuth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminListEventsParams scope the admin events listing. Limit, when set, must
// be within 1..500.
type AdminListEventsParams struct {
	TenantID string
	Scope    string
	Limit    *int
}

// AdminListEvents lists ledger events for a tenant, optionally narrowed to a
// scope.
func (c *Client) AdminListEvents(ctx context.Context, params AdminListEventsParams) (*AdminListEventsResponse, error) {
	if err := c.enforceTenant(params.TenantID); err != nil {
		return nil, err
	}
	if params.Scope != "" {
		if err := c.enforceScope(params.Scope); err != nil {
			return nil, err
		}
	}
	if err := validateEventsLimit(params.Limit); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("tenant_id", params.TenantID)
	if params.Scope != "" {
		query.Set("scope", params.Scope)
	}
	if params.Limit != nil {
		query.Set("limit", strconv.Itoa(*params.Limit))
	}

	var out AdminListEventsResponse
	if err := c.transport.do(ctx, call{method: "GET", path: "/v1/admin/events", query: query}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminListBatchesParams scope the admin batches listing.
type AdminListBatchesParams struct {
	TenantID string
	Limit    *int
}

// AdminListBatches lists committed batches for a tenant.
func (c *Client) AdminListBatches(ctx context.Context, params AdminListBatchesParams) (*AdminListBatchesResponse, error) {
	if err := c.enforceTenant(params.TenantID); err != nil {
		return nil, err
	}
	if err := validatePositiveLimit(params.Limit); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("tenant_id", params.TenantID)
	if params.Limit != nil {
		query.Set("limit", strconv.Itoa(*params.Limit))
	}

	var out AdminListBatchesResponse
	if err := c.transport.do(ctx, call{method: "GET", path: "/v1/admin/batches", query: query}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminListDeletionReceiptsParams scope the admin receipts listing.
type AdminListDeletionReceiptsParams struct {
	TenantID string
	Scope    string
	Limit    *int
}

// AdminListDeletionReceipts lists deletion receipts for a tenant, optionally
// narrowed to a scope.
func (c *Client) AdminListDeletionReceipts(ctx context.Context, params AdminListDeletionReceiptsParams) (*AdminListDeletionReceiptsResponse, error) {
	if err := c.enforceTenant(params.TenantID); err != nil {
		return nil, err
	}
	if params.Scope != "" {
		if err := c.enforceScope(params.Scope); err != nil {
			return nil, err
		}
	}
	if err := validatePositiveLimit(params.Limit); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("tenant_id", params.TenantID)
	if params.Scope != "" {
		query.Set("scope", params.Scope)
	}
	if params.Limit != nil {
		query.Set("limit", strconv.Itoa(*params.Limit))
	}

	var out AdminListDeletionReceiptsResponse
	if err := c.transport.do(ctx, call{method: "GET", path: "/v1/admin/deletion-receipts", query: query}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminStats fetches ledger totals for the authenticated tenant.
func (c *Client) AdminStats(ctx context.Context) (*AdminStatsResponse, error) {
	var out AdminStatsResponse
	if err := c.transport.do(ctx, call{method: "GET", path: "/v1/admin/stats"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPubkey fetches one of the service's signing keys by id.
func (c *Client) GetPubkey(ctx context.Context, pubkeyID string) (*PubkeyResponse, error) {
	if err := validateNonEmpty("pubkey_id", pubkeyID); err != nil {
		return nil, err
	}
	var out PubkeyResponse
	if err := c.transport.do(ctx, call{method: "GET", path: "/v1/pubkeys/" + pubkeyID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
