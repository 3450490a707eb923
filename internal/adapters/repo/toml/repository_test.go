package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vemorak/vemorak-go/internal/domain"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	profilesPath := filepath.Join(t.TempDir(), "profiles.toml")
	config := viper.New()
	config.Set("profiles.path", profilesPath)

	repo, err := NewRepository(config)
	require.NoError(t, err)

	return repo
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)

	staging := domain.Profile{
		Name:         "staging",
		BaseURL:      "https://vmp.staging.example.com",
		TenantID:     "tenant-a",
		ScopePrefix:  "assistant:",
		DefaultScope: "assistant:alice",
		SecretRef:    "vmp/staging/api_key",
		DefaultMeta:  map[string]string{"app": "vmpctl"},
	}
	prod := domain.Profile{
		Name:     "prod",
		BaseURL:  "https://vmp.example.com",
		TenantID: "tenant-a",
	}

	require.NoError(t, repo.Save(context.Background(), staging))
	require.NoError(t, repo.Save(context.Background(), prod))

	got, err := repo.GetByName(context.Background(), staging.Name)
	require.NoError(t, err)
	assert.Equal(t, staging, got)

	profiles, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.Profile{staging, prod}, profiles)
}

func TestRepositorySaveUpsertsByName(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)

	profile := domain.Profile{Name: "staging", BaseURL: "https://old.example.com", TenantID: "tenant-a"}
	require.NoError(t, repo.Save(context.Background(), profile))

	profile.BaseURL = "https://new.example.com"
	require.NoError(t, repo.Save(context.Background(), profile))

	profiles, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "https://new.example.com", profiles[0].BaseURL)
}

func TestRepositoryGetByNameReturnsNotFound(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)

	_, err := repo.GetByName(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestRepositoryDeleteRemovesProfile(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)

	profile := domain.Profile{Name: "staging", BaseURL: "https://vmp.example.com", TenantID: "tenant-a"}
	require.NoError(t, repo.Save(context.Background(), profile))
	require.NoError(t, repo.Delete(context.Background(), profile.Name))

	_, err := repo.GetByName(context.Background(), profile.Name)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	assert.ErrorIs(t, repo.Delete(context.Background(), profile.Name), domain.ErrProfileNotFound)
}

func TestRepositoryRejectsNewerSchemaVersion(t *testing.T) {
	t.Parallel()

	profilesPath := filepath.Join(t.TempDir(), "profiles.toml")
	require.NoError(t, os.WriteFile(profilesPath, []byte("version = 99\n"), 0o600))

	config := viper.New()
	config.Set("profiles.path", profilesPath)

	repo, err := NewRepository(config)
	require.NoError(t, err)

	_, err = repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported profiles schema version")
}

func TestRepositoryConcurrentSavesKeepEveryProfile(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			profile := domain.Profile{
				Name:     domain.ProfileName("profile-" + strconv.Itoa(i)),
				BaseURL:  "https://vmp.example.com",
				TenantID: "tenant-a",
			}
			errs[i] = repo.Save(context.Background(), profile)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	profiles, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, profiles, workers)
}

func TestRepositoryHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, domain.Profile{Name: "staging"})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRepositoryWritesRestrictivePermissions(t *testing.T) {
	t.Parallel()

	profilesPath := filepath.Join(t.TempDir(), "profiles.toml")
	config := viper.New()
	config.Set("profiles.path", profilesPath)

	repo, err := NewRepository(config)
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), domain.Profile{Name: "staging", TenantID: "tenant-a"}))

	info, err := os.Stat(profilesPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(profilesFileMode), info.Mode().Perm())
}
