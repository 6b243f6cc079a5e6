// Package common defines shared constants and sentinel errors used across
// the jobport client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Collection-level errors.
	ErrNotFound = errors.New("not found")

	// Auth errors. ErrNotAuthenticated means no session is established;
	// ErrUnauthorized means the backend rejected the bearer token.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrUnauthorized     = errors.New("unauthorized")

	// ErrPermissionDenied marks a client-side role/ownership precheck
	// failure. It is advisory only: the backend remains the authority,
	// and an operation failing with this error has issued no request.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrValidation marks a payload rejected before any network call.
	ErrValidation = errors.New("validation failed")

	// ErrMalformedSession marks unparsable persisted session data. It is
	// recovered locally (the store is wiped) and never shown to the user.
	ErrMalformedSession = errors.New("malformed persisted session")
)
