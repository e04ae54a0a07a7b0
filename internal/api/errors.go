// Package api provides the client for the Anthropic OAuth usage endpoints.
package api

import (
	"errors"
	"fmt"
)

// ErrNoToken indicates no OAuth token is available from any credential
// source. Returned before any network call is made.
var ErrNoToken = errors.New("no access token available")

// ErrConnection indicates the request never produced an HTTP response
// (DNS failure, refused connection, timeout, or an unreadable body).
var ErrConnection = errors.New("connection failed")

// ErrAuthExpired indicates the API rejected the token (HTTP 401).
// The user has to log in to Claude Code again.
var ErrAuthExpired = errors.New("authorization expired")

// StatusError is a non-401 HTTP error response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

// IsAuthError reports whether err means the stored token is no longer
// accepted by the API.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthExpired)
}
