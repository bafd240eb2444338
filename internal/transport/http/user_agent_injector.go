package http

import (
	"net/http"

	"github.com/oshokin/http-observer/internal/utils"
)

// UserAgentInjector is a custom http.RoundTripper that fills in a missing User-Agent header.
// The caller's request is never modified; a clone carries the injected header.
type UserAgentInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// userAgentProvider provides the User-Agent string to inject.
	userAgentProvider utils.UserAgentProvider
}

// userAgentHeader is the HTTP header name for User-Agent.
const userAgentHeader = "User-Agent"

// NewUserAgentInjector creates and returns a new instance of UserAgentInjector.
func NewUserAgentInjector(next http.RoundTripper, userAgentProvider utils.UserAgentProvider) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return &UserAgentInjector{
		next:              next,
		userAgentProvider: userAgentProvider,
	}
}

// RoundTrip injects a User-Agent header if it is missing and forwards the request.
// It implements the http.RoundTripper interface.
func (t *UserAgentInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if req.Header.Get(userAgentHeader) != "" {
		return t.next.RoundTrip(req)
	}

	userAgent := t.userAgentProvider.GetUserAgent()
	if userAgent == "" {
		return t.next.RoundTrip(req)
	}

	cloned := req.Clone(req.Context())
	if cloned.Header == nil {
		cloned.Header = make(http.Header)
	}

	cloned.Header.Set(userAgentHeader, userAgent)

	return t.next.RoundTrip(cloned)
}
