// Package utils provides small helpers shared across the application:
// file checks, URL list reading, safe integer conversion, content type detection
// and the User-Agent provider used by the HTTP transport.
package utils
