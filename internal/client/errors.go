package client

import (
	"errors"
	"fmt"
)

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s for %s", e.Status, e.URL)
}

// DecodeError is returned when a 2xx response body cannot be decoded into the
// expected shape.
type DecodeError struct {
	URL  string
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ResponseBody returns the body attached to the first StatusError or
// DecodeError found in err's chain.
func ResponseBody(err error) (string, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Body, true
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return decodeErr.Body, true
	}
	return "", false
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == 404
}
