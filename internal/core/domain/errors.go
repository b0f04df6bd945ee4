package domain

import (
	"errors"
	"fmt"
)

// ErrMissingEndpoint is returned when planning is attempted before both the
// origin and the destination have been resolved.
var ErrMissingEndpoint = errors.New("origin and destination are required")

// ErrNoRoutes is returned when the upstream provider answered successfully
// but found no route between the endpoints. Callers surface it as a
// "no routes found" message, not a failure.
var ErrNoRoutes = errors.New("no routes found")

// ErrNotFound is returned by repositories when a record does not exist.
var ErrNotFound = errors.New("not found")

// ProviderError wraps a transport or HTTP failure from an upstream routing
// provider. The underlying error never reaches the client; only the mode is
// named in the message.
type ProviderError struct {
	Mode TransportMode
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("routing failed for %s", e.Mode)
}

func (e *ProviderError) Unwrap() error { return e.Err }
