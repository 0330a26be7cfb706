package scoring

import (
	"fmt"
	"net/http"
)

// TransportError wraps a failure to reach the scoring service or read its reply.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("scoring request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx response. Message carries the body's "error"
// field when the service sent one.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("scoring service returned %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return fmt.Sprintf("scoring service returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}
