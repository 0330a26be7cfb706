package analysis

import "errors"

// ErrMalformedPayload reports a response body that is not a usable result.
var ErrMalformedPayload = errors.New("malformed analysis payload")

// ServiceError is an error reported by the scoring service in the body.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return "scoring service error: " + e.Message
}
