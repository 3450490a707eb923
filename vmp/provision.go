package vmp

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// ProvisioningConfig configures a ProvisioningClient. The token is the
// console provisioning token, not a tenant API key.
type ProvisioningConfig struct {
	BaseURL        string
	ProvisionToken string
	Timeout        time.Duration
	HTTPClient     Doer
}

// ProvisioningClient manages tenant API keys on behalf of a management
// console. It shares the transport behavior of Client (timeouts, error
// mapping) but authenticates with the provisioning token.
type ProvisioningClient struct {
	transport *transport
}

// NewProvisioningClient validates the configuration and builds a client.
func NewProvisioningClient(cfg ProvisioningConfig) (*ProvisioningClient, error) {
	if err := validateNonEmpty("provision_token", cfg.ProvisionToken); err != nil {
		return nil, err
	}
	t, err := newTransport(cfg.BaseURL, cfg.ProvisionToken, cfg.HTTPClient, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &ProvisioningClient{transport: t}, nil
}

// CreateAPIKey mints a new tenant-scoped API key. The response secret is
// shown exactly once.
func (c *ProvisioningClient) CreateAPIKey(ctx context.Context, req ProvisionCreateKeyRequest) (*ProvisionCreateKeyResponse, error) {
	if err := validateTenantID(req.TenantID); err != nil {
		return nil, err
	}
	if req.ScopePrefix != nil {
		if err := validateScopePrefix(*req.ScopePrefix); err != nil {
			return nil, err
		}
	}

	var out ProvisionCreateKeyResponse
	if err := c.transport.do(ctx, call{method: "POST", path: "/v1/admin/api-keys", body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeAPIKey revokes a key by id.
func (c *ProvisioningClient) RevokeAPIKey(ctx context.Context, keyID string) (*ProvisionRevokeKeyResponse, error) {
	if err := validateUUIDLike("id", keyID); err != nil {
		return nil, err
	}

	body := map[string]string{"id": keyID}
	var out ProvisionRevokeKeyResponse
	if err := c.transport.do(ctx, call{method: "POST", path: "/v1/admin/api-keys/revoke", body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAPIKeys lists a tenant's keys. Limit, when set, only has to be
// positive (matching the server's weakly validated listing contract).
func (c *ProvisioningClient) ListAPIKeys(ctx context.Context, tenantID string, limit *int) (*ProvisionListKeysResponse, error) {
	if err := validateTenantID(tenantID); err != nil {
		return nil, err
	}
	if err := validatePositiveLimit(limit); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("tenant_id", tenantID)
	if limit != nil {
		query.Set("limit", strconv.Itoa(*limit))
	}

	var out ProvisionListKeysResponse
	if err := c.transport.do(ctx, call{method: "GET", path: "/v1/admin/api-keys", query: query}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
