package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/http-observer/internal/logger"
	"github.com/oshokin/http-observer/internal/utils"
)

// HookTransport is a custom http.RoundTripper that exposes request, response and error hooks.
// It wraps another http.RoundTripper and hands read-only descriptors of each transaction to the
// registered hooks without altering the request that goes on the wire or the response returned.
type HookTransport struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// maxBodyLength is the maximum number of body bytes captured into descriptors.
	maxBodyLength int64
	// validateStatus decides whether a response is a success or an error.
	validateStatus func(statusCode int) bool
	// redactedHeaders holds canonical header names whose values are masked in descriptors.
	redactedHeaders map[string]struct{}

	requestHooks  hookSet[RequestHook]
	responseHooks hookSet[ResponseHook]
	errorHooks    hookSet[ErrorHook]
}

// HookTransportConfig holds the tunables of a HookTransport.
type HookTransportConfig struct {
	// MaxBodyLength limits captured body bytes. Zero or less means DefaultMaxBodyLength.
	MaxBodyLength int64
	// ValidateStatus reports whether a status code is a success. Nil means 2xx.
	ValidateStatus func(statusCode int) bool
	// RedactedHeaders lists headers whose values are masked in descriptors.
	RedactedHeaders []string
}

// Static error definitions for better error handling.
var (
	// ErrNilRequest indicates that the HTTP request is nil.
	ErrNilRequest = errors.New("request is nil")
	// ErrCaptureBody indicates that a body could not be captured for a descriptor.
	ErrCaptureBody = errors.New("failed to capture body")
)

// NewHookTransport creates and returns a new instance of HookTransport.
// A nil next falls back to http.DefaultTransport.
func NewHookTransport(next http.RoundTripper, cfg HookTransportConfig) *HookTransport {
	if next == nil {
		next = http.DefaultTransport
	}

	if cfg.MaxBodyLength <= 0 {
		cfg.MaxBodyLength = DefaultMaxBodyLength
	}

	if cfg.ValidateStatus == nil {
		cfg.ValidateStatus = IsSuccessStatus
	}

	redacted := make(map[string]struct{}, len(cfg.RedactedHeaders))
	for _, name := range cfg.RedactedHeaders {
		redacted[http.CanonicalHeaderKey(strings.TrimSpace(name))] = struct{}{}
	}

	return &HookTransport{
		next:            next,
		maxBodyLength:   cfg.MaxBodyLength,
		validateStatus:  cfg.ValidateStatus,
		redactedHeaders: redacted,
	}
}

// IsSuccessStatus reports whether statusCode is in the 2xx range.
func IsSuccessStatus(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}

// OnRequest registers a hook invoked before each request is sent.
func (t *HookTransport) OnRequest(hook RequestHook) Unregister {
	return t.requestHooks.add(hook)
}

// OnResponse registers a hook invoked for each response passing status validation.
func (t *HookTransport) OnResponse(hook ResponseHook) Unregister {
	return t.responseHooks.add(hook)
}

// OnError registers a hook invoked when a request fails or its response fails status validation.
func (t *HookTransport) OnError(hook ErrorHook) Unregister {
	return t.errorHooks.add(hook)
}

// HookCount returns the number of registered request, response and error hooks.
func (t *HookTransport) HookCount() (requests, responses, errs int) {
	return t.requestHooks.len(), t.responseHooks.len(), t.errorHooks.len()
}

// ValidateStatus reports whether statusCode is a success for this transport.
func (t *HookTransport) ValidateStatus(statusCode int) bool {
	return t.validateStatus(statusCode)
}

// RoundTrip executes a single HTTP transaction and dispatches its descriptors to the hooks.
// It implements the http.RoundTripper interface.
func (t *HookTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	ctx := logger.WithName(req.Context(), "hooks")
	transactionID := uuid.NewString()

	described, requestDescriptor, err := t.describeRequest(req, transactionID)
	if err != nil {
		if req.Body != nil {
			req.Body.Close() //nolint:errcheck,gosec // The capture error is the one reported.
		}

		return nil, err
	}

	req = described

	requestDescriptor = t.runRequestHooks(ctx, requestDescriptor)

	// Record the start time to measure the duration of the request.
	startTime := time.Now()

	// Forward the request to the underlying RoundTripper.
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		logger.Debugf(ctx, "Request failed: %s %s | Error: %v", req.Method, req.URL.String(), err)

		t.runErrorHooks(ctx, &ErrorDescriptor{
			ID:      transactionID,
			Message: err.Error(),
			Err:     err,
			Request: requestDescriptor,
		})

		return nil, err
	}

	responseDescriptor, err := t.describeResponse(resp, requestDescriptor, time.Since(startTime))
	if err != nil {
		resp.Body.Close() //nolint:errcheck,gosec // Error on close is not critical here.

		t.runErrorHooks(ctx, &ErrorDescriptor{
			ID:      transactionID,
			Message: err.Error(),
			Err:     err,
			Request: requestDescriptor,
		})

		return nil, err
	}

	logger.Debugf(ctx, "%s", responseDescriptor)

	// http.Client follows redirect hops itself, so they are not failures of the transaction.
	if !t.validateStatus(resp.StatusCode) && !IsFollowedRedirect(resp) {
		statusErr := fmt.Errorf("request failed with status code %d", resp.StatusCode)

		t.runErrorHooks(ctx, &ErrorDescriptor{
			ID:       transactionID,
			Message:  statusErr.Error(),
			Err:      statusErr,
			Request:  requestDescriptor,
			Response: responseDescriptor,
		})

		return resp, nil
	}

	t.runResponseHooks(ctx, responseDescriptor)

	return resp, nil
}

// IsFollowedRedirect reports whether resp is a redirect hop that http.Client follows on its own:
// a 301, 302, 303, 307 or 308 status carrying a Location header.
func IsFollowedRedirect(resp *http.Response) bool {
	switch resp.StatusCode {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return resp.Header.Get("Location") != ""
	default:
		return false
	}
}

func (t *HookTransport) runRequestHooks(ctx context.Context, descriptor *RequestDescriptor) *RequestDescriptor {
	for _, hook := range t.requestHooks.snapshot() {
		if next := safeCall(ctx, "request", func() *RequestDescriptor { return hook(descriptor) }); next != nil {
			descriptor = next
		}
	}

	return descriptor
}

func (t *HookTransport) runResponseHooks(ctx context.Context, descriptor *ResponseDescriptor) {
	for _, hook := range t.responseHooks.snapshot() {
		if next := safeCall(ctx, "response", func() *ResponseDescriptor { return hook(descriptor) }); next != nil {
			descriptor = next
		}
	}
}

func (t *HookTransport) runErrorHooks(ctx context.Context, descriptor *ErrorDescriptor) {
	for _, hook := range t.errorHooks.snapshot() {
		safeCall(ctx, "error", func() struct{} {
			hook(descriptor)

			return struct{}{}
		})
	}
}

// safeCall runs a hook and converts a panic into a log record so a faulty hook cannot fail the transaction.
func safeCall[T any](ctx context.Context, kind string, call func() T) (result T) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(ctx, "Recovered from panic in %s hook: %v", kind, r)
		}
	}()

	return call()
}

// describeRequest snapshots req. When the body has to be peeked and GetBody is unavailable,
// the returned request is a clone carrying a body that replays the peeked bytes.
func (t *HookTransport) describeRequest(
	req *http.Request,
	transactionID string,
) (*http.Request, *RequestDescriptor, error) {
	descriptor := &RequestDescriptor{
		ID:      transactionID,
		Method:  req.Method,
		URL:     req.URL.String(),
		Headers: t.cloneHeaders(req.Header),
		SentAt:  time.Now(),
	}

	if descriptor.Method == "" {
		descriptor.Method = http.MethodGet
	}

	if req.Body == nil || req.Body == http.NoBody {
		return req, descriptor, nil
	}

	contentType := req.Header.Get("Content-Type")
	if contentType != "" && !utils.IsTextContentType(contentType) {
		return req, descriptor, nil
	}

	var (
		data      []byte
		truncated bool
		err       error
	)

	if req.GetBody != nil {
		data, truncated, err = t.readFromGetBody(req.GetBody)
	} else {
		req = req.Clone(req.Context())
		data, req.Body, truncated, err = peekBody(req.Body, t.maxBodyLength)
	}

	if err != nil {
		return nil, nil, fmt.Errorf("%w: request: %w", ErrCaptureBody, err)
	}

	descriptor.Body = bodyValue(data, utils.IsJSONContentType(contentType))
	descriptor.BodyTruncated = truncated

	return req, descriptor, nil
}

func (t *HookTransport) readFromGetBody(getBody func() (io.ReadCloser, error)) ([]byte, bool, error) {
	body, err := getBody()
	if err != nil {
		return nil, false, err
	}

	defer body.Close() //nolint:errcheck // Error on close is not critical here.

	data, err := io.ReadAll(io.LimitReader(body, t.maxBodyLength+1))
	if err != nil {
		return nil, false, err
	}

	if int64(len(data)) > t.maxBodyLength {
		return data[:t.maxBodyLength], true, nil
	}

	return data, false, nil
}

// describeResponse snapshots resp. Text bodies are peeked and resp.Body is replaced with a reader
// yielding the complete original stream.
func (t *HookTransport) describeResponse(
	resp *http.Response,
	requestDescriptor *RequestDescriptor,
	duration time.Duration,
) (*ResponseDescriptor, error) {
	descriptor := &ResponseDescriptor{
		ID:            requestDescriptor.ID,
		Status:        resp.StatusCode,
		StatusText:    resp.Status,
		Headers:       t.cloneHeaders(resp.Header),
		ContentLength: resp.ContentLength,
		Duration:      duration,
		Request:       requestDescriptor,
	}

	if descriptor.StatusText == "" {
		descriptor.StatusText = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	contentType := resp.Header.Get("Content-Type")
	if resp.Body == nil || resp.Body == http.NoBody || !utils.IsTextContentType(contentType) {
		return descriptor, nil
	}

	data, body, truncated, err := peekBody(resp.Body, t.maxBodyLength)
	if err != nil {
		return nil, fmt.Errorf("%w: response: %w", ErrCaptureBody, err)
	}

	resp.Body = body
	descriptor.Data = bodyValue(data, utils.IsJSONContentType(contentType))
	descriptor.DataTruncated = truncated

	return descriptor, nil
}

func (t *HookTransport) cloneHeaders(header http.Header) http.Header {
	if len(header) == 0 {
		return nil
	}

	cloned := header.Clone()

	for name := range t.redactedHeaders {
		if values, ok := cloned[name]; ok {
			for i := range values {
				values[i] = redactedValue
			}
		}
	}

	return cloned
}

// replayBody yields the peeked bytes followed by the rest of the original body.
type replayBody struct {
	io.Reader
	io.Closer
}

// peekBody reads up to limit bytes from body and returns them together with
// a replacement body that replays the full original stream.
func peekBody(body io.ReadCloser, limit int64) ([]byte, io.ReadCloser, bool, error) {
	peeked, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, body, false, err
	}

	restored := &replayBody{
		Reader: io.MultiReader(bytes.NewReader(peeked), body),
		Closer: body,
	}

	if int64(len(peeked)) > limit {
		return bytes.Clone(peeked[:limit]), restored, true, nil
	}

	return bytes.Clone(peeked), restored, false, nil
}
