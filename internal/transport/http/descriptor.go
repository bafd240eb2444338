package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RequestDescriptor is a read-only snapshot of an outgoing request.
type RequestDescriptor struct {
	// ID correlates the request with its response or error.
	ID string `json:"id"`
	// Method is the HTTP method.
	Method string `json:"method"`
	// URL is the full request URL.
	URL string `json:"url"`
	// Headers is a copy of the request headers.
	Headers http.Header `json:"headers,omitempty"`
	// Body is the captured request body, if any.
	Body any `json:"body,omitempty"`
	// BodyTruncated reports whether Body was cut at the configured length.
	BodyTruncated bool `json:"body_truncated,omitempty"`
	// SentAt is the moment the request was handed to the transport.
	SentAt time.Time `json:"sent_at"`
}

// ResponseDescriptor is a read-only snapshot of an incoming response.
type ResponseDescriptor struct {
	// ID is the transaction identifier shared with the request.
	ID string `json:"id"`
	// Status is the HTTP status code.
	Status int `json:"status"`
	// StatusText is the textual status, e.g. "404 Not Found".
	StatusText string `json:"status_text"`
	// Headers is a copy of the response headers.
	Headers http.Header `json:"headers,omitempty"`
	// Data is the captured response body for text content types.
	Data any `json:"data,omitempty"`
	// DataTruncated reports whether Data was cut at the configured length.
	DataTruncated bool `json:"data_truncated,omitempty"`
	// ContentLength is the length advertised by the server, -1 if unknown.
	ContentLength int64 `json:"content_length"`
	// Duration is the time between sending the request and receiving the headers.
	Duration time.Duration `json:"duration"`
	// Request is the descriptor of the request that produced this response.
	Request *RequestDescriptor `json:"config,omitempty"`
}

// ErrorDescriptor describes a failed transaction.
// Response is nil when no response was received, e.g. on a network failure.
type ErrorDescriptor struct {
	// ID is the transaction identifier shared with the request.
	ID string `json:"id"`
	// Message is the error text.
	Message string `json:"message"`
	// Err is the underlying error.
	Err error `json:"-"`
	// Request is the descriptor of the failed request.
	Request *RequestDescriptor `json:"config,omitempty"`
	// Response is the descriptor of the rejected response, if one arrived.
	Response *ResponseDescriptor `json:"response,omitempty"`
}

// Error implements the error interface.
func (e *ErrorDescriptor) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ErrorDescriptor) Unwrap() error {
	return e.Err
}

// HasResponse reports whether the failed transaction carries a response.
func (e *ErrorDescriptor) HasResponse() bool {
	return e != nil && e.Response != nil
}

// String implements fmt.Stringer.
func (d *RequestDescriptor) String() string {
	return fmt.Sprintf("%s %s", d.Method, d.URL)
}

// String implements fmt.Stringer.
func (d *ResponseDescriptor) String() string {
	if d.Request == nil {
		return fmt.Sprintf("[%d] %s", d.Status, d.Duration)
	}

	return fmt.Sprintf("%s %s [%d] %s", d.Request.Method, d.Request.URL, d.Status, d.Duration)
}

// bodyValue keeps valid JSON payloads structured and everything else as text.
func bodyValue(data []byte, isJSON bool) any {
	if len(data) == 0 {
		return nil
	}

	if isJSON && json.Valid(data) {
		return json.RawMessage(data)
	}

	return string(data)
}
