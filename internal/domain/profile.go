package domain

// ProfileName identifies a named connection profile.
type ProfileName string

// Profile is one saved VMP connection: where to reach the service, which
// tenant and scope the CLI speaks for, and where the API key is stored. The
// key itself never lives in the profile file, only the secret reference.
type Profile struct {
	Name         ProfileName
	BaseURL      string
	TenantID     string
	ScopePrefix  string
	DefaultScope string
	SecretRef    string
	DefaultMeta  map[string]string
}

// HasAPIKey reports whether an API key has been stored for this profile.
func (p Profile) HasAPIKey() bool {
	return p.SecretRef != ""
}
