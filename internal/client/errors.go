package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound matches NotFoundError values through errors.Is.
	ErrNotFound = errors.New("not found")
	// ErrValidation matches ValidationError values through errors.Is.
	ErrValidation = errors.New("validation failed")
	// ErrUnsupported is returned for verbs a collection does not expose.
	ErrUnsupported = errors.New("operation not supported by this collection")
)

// TransportError reports a failed request: either the round trip itself
// failed (Err is set) or the backend answered with a non-2xx status.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError is a TransportError for payloads the backend rejected.
type ValidationError struct {
	*TransportError
}

func (e *ValidationError) Unwrap() error { return e.TransportError }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError is a TransportError for ids that no longer exist.
type NotFoundError struct {
	*TransportError
}

func (e *NotFoundError) Unwrap() error { return e.TransportError }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// classifyStatus wraps a non-2xx response into the matching error type.
func classifyStatus(te *TransportError) error {
	switch te.StatusCode {
	case http.StatusNotFound:
		return &NotFoundError{TransportError: te}
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return &ValidationError{TransportError: te}
	default:
		return te
	}
}

// StatusCode extracts the HTTP status from err, or 0 when the request never
// got a response.
func StatusCode(err error) int {
	var te *TransportError
	if errors.As(err, &te) {
		return te.StatusCode
	}
	return 0
}
