package vmp

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Permissive by design: rejects obviously wrong strings without claiming full
// UUID format authority. The server remains authoritative.
var uuidLikePattern = regexp.MustCompile(`^[0-9a-fA-F-]{16,}$`)

var memoryKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_.:-]+$`)

func validateNonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return newValidationError(field, "must be a non-empty string")
	}
	return nil
}

func validateTenantID(tenantID string) error {
	if err := validateNonEmpty("tenant_id", tenantID); err != nil {
		return err
	}
	if len(tenantID) > 128 {
		return newValidationError("tenant_id", "must be 1..128 chars")
	}
	for _, r := range tenantID {
		if unicode.IsSpace(r) {
			return newValidationError("tenant_id", "must not contain whitespace")
		}
	}
	return nil
}

func validateScope(scope string) error {
	if err := validateNonEmpty("scope", scope); err != nil {
		return err
	}
	if len(scope) > 128 {
		return newValidationError("scope", "must be 1..128 chars")
	}
	if !strings.Contains(scope, ":") {
		return newValidationError("scope", "must contain ':' for namespacing")
	}
	return nil
}

func validateScopePrefix(scopePrefix string) error {
	if err := validateNonEmpty("scope_prefix", scopePrefix); err != nil {
		return err
	}
	if !strings.HasSuffix(scopePrefix, ":") {
		return newValidationError("scope_prefix", `must end with ':' (example: "user:")`)
	}
	return nil
}

func validateScopeWithinPrefix(scope, scopePrefix string) error {
	if !strings.HasPrefix(scope, scopePrefix) {
		return newValidationError("scope", fmt.Sprintf("outside configured scope prefix %q", scopePrefix))
	}
	return nil
}

func validateUUIDLike(field, value string) error {
	if err := validateNonEmpty(field, value); err != nil {
		return err
	}
	if !uuidLikePattern.MatchString(value) {
		return newValidationError(field, "must look like a UUID")
	}
	return nil
}

// validateEventsLimit enforces the documented 1..500 range for the admin
// events listing.
func validateEventsLimit(limit *int) error {
	if limit == nil {
		return nil
	}
	if *limit < 1 || *limit > 500 {
		return newValidationError("limit", "must be within 1..500")
	}
	return nil
}

// validatePositiveLimit enforces only limit >= 1. The batch and receipt
// listings are weaker than the events listing on purpose: the asymmetry
// matches the deployed server contract and is not harmonized here.
func validatePositiveLimit(limit *int) error {
	if limit == nil {
		return nil
	}
	if *limit < 1 {
		return newValidationError("limit", "must be a positive integer")
	}
	return nil
}

func validateMemoryKey(key string) error {
	if err := validateNonEmpty("key", key); err != nil {
		return err
	}
	if !memoryKeyPattern.MatchString(key) {
		return newValidationError("key", "may only contain letters, digits, '_', '.', ':' and '-'")
	}
	return nil
}
