package client

import (
	"fmt"
	"strings"
)

// AuthError means the session is missing, expired, or rejected by the
// service. Re-authenticating is the only recovery.
type AuthError struct {
	error
}

func NewErrNotConnected() *AuthError {
	return &AuthError{fmt.Errorf("not connected: run login or call Connect first")}
}

func NewErrSessionExpired() *AuthError {
	return &AuthError{fmt.Errorf("session expired: re-authenticate")}
}

func NewErrUnauthorized(status int) *AuthError {
	return &AuthError{fmt.Errorf("service rejected credentials: status %d", status)}
}

// TransportError covers network failures, non-2xx responses and undecodable
// bodies. Retryable marks failures that a later identical call may survive
// (connection errors, 429, 5xx).
type TransportError struct {
	error
	StatusCode int
	Retryable  bool
}

func NewErrTransport(err error) *TransportError {
	return &TransportError{error: fmt.Errorf("request failed: %w", err), Retryable: true}
}

func NewErrStatus(status int, body string) *TransportError {
	return &TransportError{
		error:      fmt.Errorf("service returned status %d: %s", status, body),
		StatusCode: status,
		Retryable:  status == 429 || status >= 500,
	}
}

func NewErrDecode(err error) *TransportError {
	return &TransportError{error: fmt.Errorf("decoding response: %w", err)}
}

// GraphQLError is one entry of the response-level errors array.
type GraphQLError struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// APIError means the HTTP exchange succeeded but the query itself was
// rejected: unknown fields, bad variables, forbidden objects.
type APIError struct {
	Operation string
	Errors    []GraphQLError
}

func (e *APIError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		msgs = append(msgs, ge.Message)
	}
	return fmt.Sprintf("query %s failed: %s", e.Operation, strings.Join(msgs, "; "))
}
