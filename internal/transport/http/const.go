package http

import "time"

const (
	// DefaultTimeout is the default timeout duration for HTTP requests.
	DefaultTimeout = 60 * time.Second

	// DefaultUserAgent is the default User-Agent string used for HTTP requests.
	DefaultUserAgent = "http-observer/1.0 (+https://github.com/oshokin/http-observer)"

	// DefaultMaxBodyLength is the default number of body bytes captured into a descriptor.
	DefaultMaxBodyLength = 64 * 1024 // 64 KB

	// redactedValue replaces the values of redacted headers in descriptors.
	redactedValue = "[REDACTED]"
)
