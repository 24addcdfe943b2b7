// Package common defines shared constants and sentinel errors used across
// client and server layers of CineScribe. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Transport-level errors (network failure, server failure, non-2xx).
	ErrTransport = errors.New("transport error")

	// Decode errors: a fetched record did not match the expected shape.
	// Listing operations skip the offending record instead of failing.
	ErrDecode = errors.New("decode error")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Session errors: an operation was issued before login/registration.
	ErrNoSession = errors.New("no active session")
)
