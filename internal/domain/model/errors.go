package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCredentialMissing is matched by *CredentialError via errors.Is.
var ErrCredentialMissing = errors.New("required credential missing")

// CredentialError reports which startup secrets are absent. It is the only
// fatal error kind: the poll loop is never started while it is returned.
type CredentialError struct {
	Missing []string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Missing, ", "))
}

// Is reports ErrCredentialMissing as the error's identity.
func (e *CredentialError) Is(target error) bool {
	return target == ErrCredentialMissing
}

// UpstreamError is returned when the status API cannot be reached, answers
// with a non-200 status, or returns a body that is not JSON.
type UpstreamError struct {
	StatusCode int // zero when no response was received
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("status API unavailable: status code %d", e.StatusCode)
	}
	return fmt.Sprintf("status API request failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// SchemaError is returned when a response or one of its work items does not
// have the expected shape.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "unexpected API response: " + e.Reason
}

// MissingFieldError is returned when a work item lacks a required key.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("work item is missing key %q", e.Field)
}

// UnexpectedStatusError is returned for a status code outside the verdict table.
type UnexpectedStatusError struct {
	Status string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected homework status %q", e.Status)
}

// DeliveryError is returned when a notification could not be delivered.
type DeliveryError struct {
	Message string
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver message %q: %v", e.Message, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
