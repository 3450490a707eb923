// Package application orchestrates profile and credential management for the
// vmpctl CLI on top of the repository and secret-store ports.
package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vemorak/vemorak-go/internal/domain"
	"github.com/vemorak/vemorak-go/internal/ports"
)

// Credentials pairs a resolved profile with its API key, ready to construct
// a vmp client from.
type Credentials struct {
	Profile domain.Profile
	APIKey  string
}

type Service struct {
	profiles ports.ProfileRepository
	secrets  ports.SecretStore
	clock    ports.Clock
}

func NewService(profiles ports.ProfileRepository, secrets ports.SecretStore, clock ports.Clock) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Service{
		profiles: profiles,
		secrets:  secrets,
		clock:    clock,
	}
}

// SaveProfile validates and stores a connection profile. The secret
// reference is preserved from any existing profile of the same name so that
// re-running `profile set` does not orphan a stored key.
func (s *Service) SaveProfile(ctx context.Context, profile domain.Profile) error {
	if strings.TrimSpace(string(profile.Name)) == "" {
		return errors.New("profile name is required")
	}
	if strings.TrimSpace(profile.BaseURL) == "" {
		return errors.New("profile base url is required")
	}

	existing, err := s.profiles.GetByName(ctx, profile.Name)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return fmt.Errorf("get profile by name: %w", err)
	}
	if err == nil && profile.SecretRef == "" {
		profile.SecretRef = existing.SecretRef
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	return nil
}

func (s *Service) GetProfile(ctx context.Context, name domain.ProfileName) (domain.Profile, error) {
	profile, err := s.profiles.GetByName(ctx, name)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile by name: %w", err)
	}
	return profile, nil
}

func (s *Service) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

// RemoveProfile deletes a profile and, when one is referenced, its stored
// API key. The profile is removed first so a failing secret delete leaves no
// profile pointing at a live key.
func (s *Service) RemoveProfile(ctx context.Context, name domain.ProfileName) error {
	profile, err := s.profiles.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("get profile by name: %w", err)
	}

	if err := s.profiles.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	if profile.SecretRef == "" {
		return nil
	}

	if err := s.secrets.Delete(ctx, profile.SecretRef); err != nil {
		return fmt.Errorf("delete profile api key: %w", err)
	}

	return nil
}

// SetAPIKey stores the API key for a profile and records the secret
// reference on it. A failing profile save rolls the stored secret back so
// the store never holds a key no profile references.
func (s *Service) SetAPIKey(ctx context.Context, name domain.ProfileName, apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return errors.New("api key is required")
	}

	profile, err := s.profiles.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("get profile by name: %w", err)
	}

	secretRef := SecretRefFor(name)
	previousRef := profile.SecretRef

	if err := s.secrets.Put(ctx, secretRef, apiKey); err != nil {
		return fmt.Errorf("store api key: %w", err)
	}

	profile.SecretRef = secretRef
	if err := s.profiles.Save(ctx, profile); err != nil {
		if rollbackErr := s.secrets.Delete(ctx, secretRef); rollbackErr != nil {
			return fmt.Errorf("save profile secret ref and rollback stored key: %w", errors.Join(err, rollbackErr))
		}
		return fmt.Errorf("save profile secret ref: %w", err)
	}

	if previousRef != "" && previousRef != secretRef {
		if err := s.secrets.Delete(ctx, previousRef); err != nil {
			return fmt.Errorf("delete previous api key: %w", err)
		}
	}

	return nil
}

// RemoveAPIKey drops a profile's stored key and clears the reference.
func (s *Service) RemoveAPIKey(ctx context.Context, name domain.ProfileName) error {
	profile, err := s.profiles.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("get profile by name: %w", err)
	}
	if profile.SecretRef == "" {
		return nil
	}

	secretRef := profile.SecretRef
	profile.SecretRef = ""

	if err := s.profiles.Save(ctx, profile); err != nil {
		return fmt.Errorf("clear profile secret ref: %w", err)
	}

	if err := s.secrets.Delete(ctx, secretRef); err != nil {
		return fmt.Errorf("delete api key: %w", err)
	}

	return nil
}

// Credentials resolves a profile together with its API key.
func (s *Service) Credentials(ctx context.Context, name domain.ProfileName) (Credentials, error) {
	profile, err := s.profiles.GetByName(ctx, name)
	if err != nil {
		return Credentials{}, fmt.Errorf("get profile by name: %w", err)
	}
	if !profile.HasAPIKey() {
		return Credentials{}, fmt.Errorf("profile %q has no api key: %w", name, domain.ErrSecretNotFound)
	}

	apiKey, err := s.secrets.Get(ctx, profile.SecretRef)
	if err != nil {
		return Credentials{}, fmt.Errorf("load api key: %w", err)
	}

	return Credentials{Profile: profile, APIKey: apiKey}, nil
}

// SecretRefFor is the canonical secret-store key for a profile's API key.
func SecretRefFor(name domain.ProfileName) string {
	return fmt.Sprintf("vmp/%s/api_key", name)
}
