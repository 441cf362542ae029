package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrClientNotFound = errors.New("client not found")
	ErrUnauthorized   = errors.New("not authorized")
	ErrTokenNotFound  = errors.New("session token not found")
)

// ServerError is a non-2xx response from the remote system. Message
// carries the server's human-readable `message` body field when one
// was present; Body holds the raw response for diagnostics.
type ServerError struct {
	Status  int
	Message string
	Body    string
}

func (e *ServerError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("server: status %d: %s", e.Status, e.Message)
	case e.Body != "":
		return fmt.Sprintf("server: status %d: %s", e.Status, e.Body)
	default:
		return fmt.Sprintf("server: status %d", e.Status)
	}
}

// Unwrap maps auth and missing-resource statuses onto the sentinels so
// callers can branch with errors.Is.
func (e *ServerError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrClientNotFound
	default:
		return nil
	}
}
