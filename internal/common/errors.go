// Package common defines shared constants and sentinel errors used across
// client and server layers of newsexplorer. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)

// Client-side failure taxonomy. Transport and API layers wrap these so that
// flows can branch on the kind of failure without inspecting status codes.
var (
	// ErrNetworkFailure: the request could not complete.
	ErrNetworkFailure = errors.New("network failure")
	// ErrAuthFailure: invalid credentials or an invalid/expired token.
	ErrAuthFailure = errors.New("authentication failed")
	// ErrValidation: malformed input, usually surfaced per field.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound: the target of an operation is absent.
	ErrNotFound = errors.New("not found")
	// ErrNoToken: authorization succeeded but returned no credential.
	ErrNoToken = errors.New("no token received")
	// ErrUnauthenticated: the operation requires a signed-in user.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrEmailNotAvailable: registration conflicts with an existing account.
	ErrEmailNotAvailable = errors.New("this email is not available")
	// ErrAlreadySaved: the article url is already in the saved collection.
	ErrAlreadySaved = errors.New("article already saved")
	// ErrServer: the backend answered with an unexpected failure.
	ErrServer = errors.New("server error")
	// ErrSuperseded: a newer call on the same channel, or a logout, made
	// this result stale. Callers must not apply it.
	ErrSuperseded = errors.New("superseded by a newer operation")
)
