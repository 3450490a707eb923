// Package mocks provides testify mocks for the ports interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vemorak/vemorak-go/internal/domain"
)

type ProfileRepository struct {
	mock.Mock
}

func (m *ProfileRepository) GetByName(ctx context.Context, name domain.ProfileName) (domain.Profile, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.Profile), args.Error(1)
}

func (m *ProfileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	args := m.Called(ctx)
	if profiles, ok := args.Get(0).([]domain.Profile); ok {
		return profiles, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProfileRepository) Save(ctx context.Context, profile domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *ProfileRepository) Delete(ctx context.Context, name domain.ProfileName) error {
	return m.Called(ctx, name).Error(0)
}

type SecretStore struct {
	mock.Mock
}

func (m *SecretStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *SecretStore) Put(ctx context.Context, key string, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *SecretStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
