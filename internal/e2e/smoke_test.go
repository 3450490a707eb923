package e2e

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/whoami":
			_, _ = w.Write([]byte(`{"tenant_id":"tenant-a","key_id":"key-1","allowed_scopes":[],"scope_prefix":null}`))
		case "/v1/ingest":
			_, _ = w.Write([]byte(`{"event_id":"11111111-1111-4111-8111-111111111111","event_hash_hex":"ab","prev_hash_hex":null,"created_at":"2026-08-30T10:00:00Z"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	_, stderr, err := runCLI(t, binaryPath, home,
		"profile", "set", "default",
		"--base-url", server.URL,
		"--tenant", "tenant-a",
		"--default-scope", "assistant:alice",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = runCLI(t, binaryPath, home,
		"key", "set", "default", "--value", "vmp_sk_test_123")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runCLI(t, binaryPath, home, "whoami")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "tenant-a")

	stdout, stderr, err = runCLI(t, binaryPath, home,
		"write", "--type", "preference", "--key", "color", "--value", "blue")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "11111111-1111-4111-8111-111111111111")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "vmpctl-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/vmp")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build vmpctl binary: %s", string(output))
	return binaryPath
}

func runCLI(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
