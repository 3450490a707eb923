package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Profiles []profileSchema `toml:"profiles"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported profiles schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type profileSchema struct {
	Name         string            `toml:"name"`
	BaseURL      string            `toml:"base_url"`
	TenantID     string            `toml:"tenant_id"`
	ScopePrefix  string            `toml:"scope_prefix,omitempty"`
	DefaultScope string            `toml:"default_scope,omitempty"`
	SecretRef    string            `toml:"secret_ref,omitempty"`
	DefaultMeta  map[string]string `toml:"default_meta,omitempty"`
}
