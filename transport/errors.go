package transport

import (
	"errors"
	"fmt"
)

// ErrMissingToken indicates a 401 on a request that never carried the
// session token header. That is a configuration bug, not an expired
// session, and is never retried.
var ErrMissingToken = errors.New("missing session token")

// StatusError is returned for any response outside the 200-299 range.
type StatusError struct {
	Code int
	URI  string
	Body string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d", e.URI, e.Code)
}

// IsNotFound checks if the error indicates a not found response
func (e *StatusError) IsNotFound() bool {
	return e.Code == 404
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *StatusError) IsUnauthorized() bool {
	return e.Code == 401 || e.Code == 403
}

// ProtocolError indicates the client and server disagree about the
// protocol itself: a foreign-host absolute URI, a 401 without a prior
// token, a handshake response missing the token header.
type ProtocolError struct {
	Reason string
	Err    error
}

// Error implements the error interface
func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol error: %s: %v", e.Reason, e.Err)
	}
	return "protocol error: " + e.Reason
}

// Unwrap returns the underlying error, if any.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}
