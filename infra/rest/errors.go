package rest

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound marks a 404 on a session-scoped endpoint: the persisted
// session no longer exists on the server. The client performs no recovery
// itself; the owning controller decides what to clear.
var ErrSessionNotFound = errors.New("game session not found")

// ErrUnsupported is returned for endpoint groups the connected backend does
// not provide, as advertised by its capability set.
var ErrUnsupported = errors.New("endpoint not supported by backend")

// APIError is a non-2xx response from the game backend.
type APIError struct {
	Status   int
	Endpoint string
	// Detail is the server-provided message, when one was decodable.
	Detail string
	// Err holds a sentinel such as ErrSessionNotFound when applicable.
	Err error
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api %s: status %d: %s", e.Endpoint, e.Status, e.Detail)
	}
	return fmt.Sprintf("api %s: status %d", e.Endpoint, e.Status)
}

func (e *APIError) Unwrap() error { return e.Err }
