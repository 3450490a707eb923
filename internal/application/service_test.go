package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vemorak/vemorak-go/internal/domain"
	"github.com/vemorak/vemorak-go/internal/ports/mocks"
)

func TestSaveProfileRequiresNameAndBaseURL(t *testing.T) {
	t.Parallel()

	service := NewService(&mocks.ProfileRepository{}, &mocks.SecretStore{}, nil)

	err := service.SaveProfile(context.Background(), domain.Profile{BaseURL: "https://vmp.example"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")

	err = service.SaveProfile(context.Background(), domain.Profile{Name: "default"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base url is required")
}

func TestSaveProfilePreservesExistingSecretRef(t *testing.T) {
	t.Parallel()

	repo := &mocks.ProfileRepository{}
	repo.On("GetByName", mock.Anything, domain.ProfileName("default")).
		Return(domain.Profile{Name: "default", SecretRef: "vmp/default/api_key"}, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(p domain.Profile) bool {
		return p.SecretRef == "vmp/default/api_key"
	})).Return(nil)

	service := NewService(repo, &mocks.SecretStore{}, nil)

	err := service.SaveProfile(context.Background(), domain.Profile{
		Name:    "default",
		BaseURL: "https://vmp.example",
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSetAPIKeyStoresSecretThenSavesRef(t *testing.T) {
	t.Parallel()

	repo := &mocks.ProfileRepository{}
	repo.On("GetByName", mock.Anything, domain.ProfileName("default")).
		Return(domain.Profile{Name: "default", BaseURL: "https://vmp.example"}, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(p domain.Profile) bool {
		return p.SecretRef == "vmp/default/api_key"
	})).Return(nil)

	store := &mocks.SecretStore{}
	store.On("Put", mock.Anything, "vmp/default/api_key", "vmp_live_abc").Return(nil)

	service := NewService(repo, store, nil)

	err := service.SetAPIKey(context.Background(), "default", "vmp_live_abc")
	require.NoError(t, err)
	repo.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestSetAPIKeyRollsBackSecretWhenSaveFails(t *testing.T) {
	t.Parallel()

	repo := &mocks.ProfileRepository{}
	repo.On("GetByName", mock.Anything, domain.ProfileName("default")).
		Return(domain.Profile{Name: "default", BaseURL: "https://vmp.example"}, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(assert.AnError)

	store := &mocks.SecretStore{}
	store.On("Put", mock.Anything, "vmp/default/api_key", "vmp_live_abc").Return(nil)
	store.On("Delete", mock.Anything, "vmp/default/api_key").Return(nil)

	service := NewService(repo, store, nil)

	err := service.SetAPIKey(context.Background(), "default", "vmp_live_abc")
	require.Error(t, err)
	store.AssertCalled(t, "Delete", mock.Anything, "vmp/default/api_key")
}

func TestCredentialsRequireStoredKey(t *testing.T) {
	t.Parallel()

	repo := &mocks.ProfileRepository{}
	repo.On("GetByName", mock.Anything, domain.ProfileName("default")).
		Return(domain.Profile{Name: "default", BaseURL: "https://vmp.example"}, nil)

	service := NewService(repo, &mocks.SecretStore{}, nil)

	_, err := service.Credentials(context.Background(), "default")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestCredentialsResolveProfileAndKey(t *testing.T) {
	t.Parallel()

	repo := &mocks.ProfileRepository{}
	repo.On("GetByName", mock.Anything, domain.ProfileName("default")).
		Return(domain.Profile{
			Name:      "default",
			BaseURL:   "https://vmp.example",
			TenantID:  "t1",
			SecretRef: "vmp/default/api_key",
		}, nil)

	store := &mocks.SecretStore{}
	store.On("Get", mock.Anything, "vmp/default/api_key").Return("vmp_live_abc", nil)

	service := NewService(repo, store, nil)

	creds, err := service.Credentials(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, "t1", creds.Profile.TenantID)
	assert.Equal(t, "vmp_live_abc", creds.APIKey)
}

func TestRemoveProfileDeletesStoredKey(t *testing.T) {
	t.Parallel()

	repo := &mocks.ProfileRepository{}
	repo.On("GetByName", mock.Anything, domain.ProfileName("default")).
		Return(domain.Profile{Name: "default", SecretRef: "vmp/default/api_key"}, nil)
	repo.On("Delete", mock.Anything, domain.ProfileName("default")).Return(nil)

	store := &mocks.SecretStore{}
	store.On("Delete", mock.Anything, "vmp/default/api_key").Return(nil)

	service := NewService(repo, store, nil)

	require.NoError(t, service.RemoveProfile(context.Background(), "default"))
	repo.AssertExpectations(t)
	store.AssertExpectations(t)
}
