// Package common defines shared constants and sentinel errors used across
// client and server layers of roomsync. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Connectivity. Recovered by switching to local mode.
	ErrNetworkUnavailable = errors.New("network unavailable")

	// Authentication errors, surfaced to the user verbatim.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("wrong password")
	ErrPhoneNotRegistered = errors.New("phone number is not registered")
	ErrDuplicatePhone     = errors.New("phone number is already registered")

	// Expired or invalid token; the caller must force re-authentication.
	ErrUnauthorized = errors.New("unauthorized")

	// Local record missing. A programming-contract violation, not user-facing.
	ErrNotFound = errors.New("not found")

	// Validation errors.
	ErrMissingFields     = errors.New("missing required fields")
	ErrProfileIncomplete = errors.New("profile incomplete")

	// The operation requires an established session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// Sign-up succeeded but the sign-in that follows it did not.
	ErrAccountCreated = errors.New("account created, sign in failed")

	// Remote non-2xx response that has no more specific classification.
	ErrRequestFailed = errors.New("request failed")
)

// RemoteError carries the status and message returned by the remote backend.
// Kind is one of the sentinel errors above and is what errors.Is matches.
type RemoteError struct {
	Status  int
	Message string
	Kind    error
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return ErrRequestFailed.Error()
}

func (e *RemoteError) Unwrap() error {
	return e.Kind
}
