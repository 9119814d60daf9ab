package api

import (
	"errors"
	"fmt"
)

// The client normalizes every failure into one of these kinds before it
// reaches presentation logic; callers never inspect raw transport details.
var (
	// ErrInvalidCredentials is a 401 on the login endpoint.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSessionExpired is a 401/403 on any other authenticated call. It is
	// handled globally (forced logout); features never show it per-call.
	ErrSessionExpired = errors.New("session expired")
)

// NetworkError means no response was received at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// ValidationError is a client- or server-reported input problem.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ServerError is any other non-2xx response.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error: HTTP %d", e.StatusCode)
}

// IsAuthFailure reports whether err is the globally-handled session expiry.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}
