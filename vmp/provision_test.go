package vmp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvisioningClient(t *testing.T, server *httptest.Server) *ProvisioningClient {
	t.Helper()

	client, err := NewProvisioningClient(ProvisioningConfig{
		BaseURL:        server.URL,
		ProvisionToken: "vmp_pk_test_123",
	})
	require.NoError(t, err)
	return client
}

func TestNewProvisioningClientRequiresToken(t *testing.T) {
	t.Parallel()

	_, err := NewProvisioningClient(ProvisioningConfig{BaseURL: "https://vmp.example.com"})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "provision_token", validationErr.Field)
}

func TestCreateAPIKeySendsProvisionToken(t *testing.T) {
	t.Parallel()

	var (
		authHeader string
		body       ProvisionCreateKeyRequest
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/admin/api-keys", r.URL.Path)
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "55555555-5555-4555-8555-555555555555",
			"tenant_id": "tenant-a",
			"name": "ci",
			"scopes": [],
			"scope_prefix": "assistant:",
			"created_at": "2026-08-30T10:00:00Z",
			"expires_at": null,
			"key_prefix": "vmp_sk_a1",
			"secret": "vmp_sk_a1_secret"
		}`))
	}))
	defer server.Close()

	client := newTestProvisioningClient(t, server)

	prefix := "assistant:"
	created, err := client.CreateAPIKey(context.Background(), ProvisionCreateKeyRequest{
		TenantID:    "tenant-a",
		Label:       "ci",
		ScopePrefix: &prefix,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer vmp_pk_test_123", authHeader)
	assert.Equal(t, "tenant-a", body.TenantID)
	assert.Equal(t, "ci", body.Label)
	assert.Equal(t, "vmp_sk_a1_secret", created.Secret)
}

func TestCreateAPIKeyValidatesScopePrefixLocally(t *testing.T) {
	t.Parallel()

	doer := &countingDoer{}
	client, err := NewProvisioningClient(ProvisioningConfig{
		BaseURL:        "https://vmp.example.com",
		ProvisionToken: "vmp_pk_test_123",
		HTTPClient:     doer,
	})
	require.NoError(t, err)

	prefix := "assistant" // missing trailing ':'
	_, err = client.CreateAPIKey(context.Background(), ProvisionCreateKeyRequest{
		TenantID:    "tenant-a",
		ScopePrefix: &prefix,
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "scope_prefix", validationErr.Field)
	assert.Zero(t, doer.calls)
}

func TestRevokeAPIKeyValidatesID(t *testing.T) {
	t.Parallel()

	doer := &countingDoer{}
	client, err := NewProvisioningClient(ProvisioningConfig{
		BaseURL:        "https://vmp.example.com",
		ProvisionToken: "vmp_pk_test_123",
		HTTPClient:     doer,
	})
	require.NoError(t, err)

	_, err = client.RevokeAPIKey(context.Background(), "not-a-key-id")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "id", validationErr.Field)
	assert.Zero(t, doer.calls)
}

func TestListAPIKeysBuildsQuery(t *testing.T) {
	t.Parallel()

	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/admin/api-keys", r.URL.Path)
		query = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tenant_id":"tenant-a","items":[]}`))
	}))
	defer server.Close()

	client := newTestProvisioningClient(t, server)

	limit := 10
	keys, err := client.ListAPIKeys(context.Background(), "tenant-a", &limit)
	require.NoError(t, err)

	assert.Contains(t, query, "tenant_id=tenant-a")
	assert.Contains(t, query, "limit=10")
	assert.Empty(t, keys.Items)
}
