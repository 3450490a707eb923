package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vemorak/vemorak-go/internal/domain"
)

type recordedCall struct {
	input string
	args  []string
}

func stubStore(stdout string, stderr string, err error) (*Store, *[]recordedCall) {
	calls := &[]recordedCall{}
	store := &Store{run: func(_ context.Context, input string, args ...string) (string, string, error) {
		*calls = append(*calls, recordedCall{input: input, args: args})
		return stdout, stderr, err
	}}
	return store, calls
}

func TestStorePutInsertsMultiline(t *testing.T) {
	t.Parallel()

	store, calls := stubStore("", "", nil)

	require.NoError(t, store.Put(context.Background(), "vmp/staging/api_key", "vmp_sk_123"))

	require.Len(t, *calls, 1)
	assert.Equal(t, []string{"insert", "-m", "-f", "vmp/staging/api_key"}, (*calls)[0].args)
	assert.Equal(t, "vmp_sk_123\n", (*calls)[0].input)
}

func TestStoreGetTrimsTrailingNewline(t *testing.T) {
	t.Parallel()

	store, _ := stubStore("vmp_sk_123\n", "", nil)

	value, err := store.Get(context.Background(), "vmp/staging/api_key")
	require.NoError(t, err)
	assert.Equal(t, "vmp_sk_123", value)
}

func TestStoreGetMapsMissingEntryToNotFound(t *testing.T) {
	t.Parallel()

	store, _ := stubStore("", "Error: vmp/staging/api_key is not in the password store.", errors.New("exit status 1"))

	_, err := store.Get(context.Background(), "vmp/staging/api_key")
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetSurfacesStderr(t *testing.T) {
	t.Parallel()

	store, _ := stubStore("", "gpg: decryption failed", errors.New("exit status 2"))

	_, err := store.Get(context.Background(), "vmp/staging/api_key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gpg: decryption failed")
}

func TestStoreHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	store, calls := stubStore("", "", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Put(ctx, "vmp/staging/api_key", "x"), context.Canceled)
	assert.Empty(t, *calls)
}
