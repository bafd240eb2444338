// Package http provides custom HTTP transport utilities:
// a hook-aware round tripper that exposes request, response and error
// registration points with read-only descriptors of every transaction,
// and User-Agent header injection.
package http
