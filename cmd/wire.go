package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	tomlrepo "github.com/vemorak/vemorak-go/internal/adapters/repo/toml"
	chainstore "github.com/vemorak/vemorak-go/internal/adapters/secrets/chain"
	"github.com/vemorak/vemorak-go/internal/application"
	"github.com/vemorak/vemorak-go/internal/domain"
	"github.com/vemorak/vemorak-go/internal/ports"
	"github.com/vemorak/vemorak-go/vmp"
)

const defaultProfileName = "default"

type app struct {
	service    *application.Service
	httpClient vmp.Doer
	// session tags every demo write/delete so events from one vmpctl run can
	// be correlated in the admin listing.
	session string
}

func wireApp() (*app, error) {
	repo, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire profile repository: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	secretStore, err := chainstore.NewPassFirstWithFileFallback(filepath.Join(homeDir, ".vemorak", "secrets"))
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	now := time.Now()
	entropy := ulid.Monotonic(rand.New(rand.NewSource(now.UnixNano())), 0)

	return &app{
		service:    application.NewService(repo, secretStore, ports.SystemClock{}),
		httpClient: http.DefaultClient,
		session:    ulid.MustNew(ulid.Timestamp(now), entropy).String(),
	}, nil
}

type connection struct {
	client  *vmp.Client
	profile domain.Profile
}

// connect resolves the active profile and environment overrides into a VMP
// client. Environment variables win over the profile file, so a CI job can
// run without any profile at all.
func (a *app) connect(cmd *cobra.Command) (*connection, error) {
	profile, err := a.resolveProfile(cmd)
	if err != nil {
		return nil, err
	}

	baseURL := envOrDefault("VMP_BASE_URL", profile.BaseURL)
	if baseURL == "" {
		return nil, errors.New("no base URL: set VMP_BASE_URL or configure a profile with 'vmpctl profile set'")
	}

	apiKey := os.Getenv("VMP_API_KEY")
	if apiKey == "" && profile.HasAPIKey() {
		creds, err := a.service.Credentials(cmd.Context(), profile.Name)
		if err != nil {
			return nil, err
		}
		apiKey = creds.APIKey
	}
	if apiKey == "" {
		return nil, errors.New("no API key: set VMP_API_KEY or store one with 'vmpctl key set'")
	}

	defaultMeta := make(map[string]any, len(profile.DefaultMeta))
	for k, v := range profile.DefaultMeta {
		defaultMeta[k] = v
	}

	client, err := vmp.NewClient(vmp.Config{
		BaseURL:     baseURL,
		APIKey:      apiKey,
		TenantID:    envOrDefault("VMP_TENANT_ID", profile.TenantID),
		ScopePrefix: profile.ScopePrefix,
		DefaultMeta: defaultMeta,
		HTTPClient:  a.httpClient,
	})
	if err != nil {
		return nil, err
	}

	return &connection{client: client, profile: profile}, nil
}

func (a *app) resolveProfile(cmd *cobra.Command) (domain.Profile, error) {
	name, _ := cmd.Flags().GetString("profile")
	explicit := name != ""
	if !explicit {
		name = os.Getenv("VMP_PROFILE")
		explicit = name != ""
	}
	if name == "" {
		name = defaultProfileName
	}

	profile, err := a.service.GetProfile(cmd.Context(), domain.ProfileName(name))
	if err != nil {
		if !explicit && errors.Is(err, domain.ErrProfileNotFound) {
			return domain.Profile{}, nil
		}
		return domain.Profile{}, err
	}

	return profile, nil
}

// tenant returns the tenant id requests should name.
func (c *connection) tenant() (string, error) {
	tenant := envOrDefault("VMP_TENANT_ID", c.profile.TenantID)
	if tenant == "" {
		return "", errors.New("no tenant: set VMP_TENANT_ID or configure a profile with 'vmpctl profile set'")
	}
	return tenant, nil
}

// scope resolves the scope for a command: flag, then VMP_SCOPE, then the
// profile default.
func (c *connection) scope(cmd *cobra.Command) (string, error) {
	if flag := cmd.Flags().Lookup("scope"); flag != nil && flag.Value.String() != "" {
		return flag.Value.String(), nil
	}
	if scope := os.Getenv("VMP_SCOPE"); scope != "" {
		return scope, nil
	}
	if c.profile.DefaultScope != "" {
		return c.profile.DefaultScope, nil
	}
	return "", errors.New("no scope: pass --scope, set VMP_SCOPE, or configure a profile default scope")
}

func jsonOutput(cmd *cobra.Command) bool {
	enabled, _ := cmd.Flags().GetBool("json")
	return enabled
}

func printJSON(cmd *cobra.Command, v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return err
}

// printRendered writes a lipgloss rendering, or the raw response with --json.
func printRendered(cmd *cobra.Command, v any, renderFn func() (string, error)) error {
	if jsonOutput(cmd) {
		return printJSON(cmd, v)
	}

	out, err := renderFn()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
