package vmp

import (
	"errors"
	"fmt"
)

var (
	// ErrRequestTimeout reports that a single HTTP request exceeded the
	// configured request timeout. Distinct from HTTPError so callers can
	// decide whether to retry.
	ErrRequestTimeout = errors.New("vmp request timed out")

	// ErrWaitForBatchTimeout reports that WaitForBatch exhausted its poll
	// budget without the event being included in a batch.
	ErrWaitForBatchTimeout = errors.New("timed out waiting for batch inclusion")
)

// ValidationError reports malformed caller input. It is always raised before
// any network call is issued and is never worth retrying.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// HTTPError reports a non-2xx response from the VMP service.
//
// Message is the server's "error" string when the body parses as JSON,
// otherwise the raw body text. RawBody always carries the body verbatim for
// debugging.
type HTTPError struct {
	Status  int
	Message string
	Details any
	RawBody string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("vmp request failed (%d): %s", e.Status, e.Message)
}
