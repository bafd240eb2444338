// Package httpclient provides the hook-aware HTTP client the observer attaches to.
// It composes User-Agent injection and the hook transport over the default transport,
// exposes onRequest/onResponse/onError registration points and
// rejects responses failing status validation with a StatusError.
package httpclient
