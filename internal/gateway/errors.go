package gateway

import (
	"errors"
	"fmt"
)

// BackendError indicates the backend was reachable but rejected the request.
// Message carries the backend's own wording (error/message/detail field of
// the response body) and is safe to show to the user verbatim.
type BackendError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error (status %d): %s", e.Status, e.Message)
}

// NetworkError indicates the request never produced a response: DNS failure,
// refused connection, timeout. Callers may fall back to demo behavior where
// explicitly coded; it is never treated as a valid classification.
type NetworkError struct {
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is (or wraps) a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// AsBackendError returns the BackendError in err's chain, if any.
func AsBackendError(err error) (*BackendError, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	be, ok := AsBackendError(err)
	return ok && be.Status == 401
}
