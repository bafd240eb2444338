package httpclient

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedHTTPStatus indicates that a response failed status validation.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrEmptyURL indicates that a request was attempted without a URL.
	ErrEmptyURL = errors.New("request URL cannot be empty")
)

// StatusError is returned by Do for responses failing status validation.
type StatusError struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Method is the request method.
	Method string
	// URL is the request URL.
	URL string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d (method=%s, url=%s)", ErrUnexpectedHTTPStatus, e.StatusCode, e.Method, e.URL)
}

// Unwrap makes StatusError match ErrUnexpectedHTTPStatus.
func (e *StatusError) Unwrap() error {
	return ErrUnexpectedHTTPStatus
}
