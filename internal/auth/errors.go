package auth

import (
	"errors"
	"fmt"
)

// Reason classifies why a credential was rejected.
type Reason string

const (
	ReasonMalformed          Reason = "malformed"
	ReasonBadSignature       Reason = "bad_signature"
	ReasonExpired            Reason = "expired"
	ReasonInvalidCredentials Reason = "invalid_credentials"
)

// RejectionError is returned for every credential the core refuses to trust.
type RejectionError struct {
	Reason Reason
	cause  error
}

// Sentinels for use with errors.Is.
var (
	ErrMalformed          = &RejectionError{Reason: ReasonMalformed}
	ErrBadSignature       = &RejectionError{Reason: ReasonBadSignature}
	ErrExpired            = &RejectionError{Reason: ReasonExpired}
	ErrInvalidCredentials = &RejectionError{Reason: ReasonInvalidCredentials}
)

// ErrMissingSecret is fatal: nothing can be signed or verified without it.
var ErrMissingSecret = errors.New("auth: signing secret is required")

func reject(reason Reason, cause error) error {
	return &RejectionError{Reason: reason, cause: cause}
}

func (e *RejectionError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("auth: credential rejected (%s): %v", e.Reason, e.cause)
	}
	return fmt.Sprintf("auth: credential rejected (%s)", e.Reason)
}

func (e *RejectionError) Unwrap() error {
	return e.cause
}

// Is matches any rejection carrying the same reason.
func (e *RejectionError) Is(target error) bool {
	t, ok := target.(*RejectionError)
	return ok && t.Reason == e.Reason
}

// ReasonOf extracts the rejection reason from err, if any.
func ReasonOf(err error) (Reason, bool) {
	var rejection *RejectionError
	if errors.As(err, &rejection) {
		return rejection.Reason, true
	}
	return "", false
}
