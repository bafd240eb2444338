package httpclient

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oshokin/http-observer/internal/config"
	"github.com/oshokin/http-observer/internal/logger"
	http_transport "github.com/oshokin/http-observer/internal/transport/http"
	"github.com/oshokin/http-observer/internal/utils"
)

// Client is a hook-aware HTTP client.
type Client interface {
	// OnRequest registers a hook invoked before each request is sent.
	OnRequest(hook http_transport.RequestHook) http_transport.Unregister
	// OnResponse registers a hook invoked for each successful response.
	OnResponse(hook http_transport.ResponseHook) http_transport.Unregister
	// OnError registers a hook invoked for each failed transaction.
	OnError(hook http_transport.ErrorHook) http_transport.Unregister
	// Do sends a request and reads the complete response body.
	Do(ctx context.Context, request *Request) (*Result, error)
	// Get is a shorthand for a GET request without a body.
	Get(ctx context.Context, rawURL string) (*Result, error)
}

// Request describes a request to send.
type Request struct {
	// Method is the HTTP method; empty means GET.
	Method string
	// URL is absolute, or relative to the configured base URL.
	URL string
	// Header holds additional request headers.
	Header http.Header
	// Body is the request payload; empty means no body.
	Body string
}

// Result is a fully read response.
type Result struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Status is the textual status, e.g. "200 OK".
	Status string
	// Header holds the response headers.
	Header http.Header
	// Body is the complete response body.
	Body []byte
	// Duration is the time from sending the request to reading the body.
	Duration time.Duration
}

// ClientImpl implements the Client interface.
type ClientImpl struct {
	// baseURL resolves relative request URLs; nil when not configured.
	baseURL *url.URL
	// httpClient is the HTTP client for making requests.
	httpClient *http.Client
	// hooks is the hook-aware transport inside httpClient.
	hooks *http_transport.HookTransport
}

// NewClient creates and returns a new instance of ClientImpl configured from cfg.
// The config must have been validated.
func NewClient(cfg *config.Config) (Client, error) {
	var baseURL *url.URL

	if rawBaseURL := strings.TrimSpace(cfg.BaseURL); rawBaseURL != "" {
		parsed, err := url.Parse(rawBaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL: %w", err)
		}

		baseURL = parsed
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = http_transport.DefaultUserAgent
	}

	timeout := cfg.ParsedTimeout
	if timeout <= 0 {
		timeout = http_transport.DefaultTimeout
	}

	hooks := http_transport.NewHookTransport(http.DefaultTransport, http_transport.HookTransportConfig{
		MaxBodyLength:   cfg.ParsedMaxBodyLength,
		RedactedHeaders: cfg.RedactedHeaders,
	})

	// The User-Agent is injected before the hooks so descriptors show the header actually sent.
	httpClient := &http.Client{
		Transport: http_transport.NewUserAgentInjector(
			hooks,
			utils.NewSimpleUserAgentProvider(userAgent)),
		Timeout: timeout,
	}

	return &ClientImpl{
		baseURL:    baseURL,
		httpClient: httpClient,
		hooks:      hooks,
	}, nil
}

// OnRequest registers a hook invoked before each request is sent.
func (c *ClientImpl) OnRequest(hook http_transport.RequestHook) http_transport.Unregister {
	return c.hooks.OnRequest(hook)
}

// OnResponse registers a hook invoked for each successful response.
func (c *ClientImpl) OnResponse(hook http_transport.ResponseHook) http_transport.Unregister {
	return c.hooks.OnResponse(hook)
}

// OnError registers a hook invoked for each failed transaction.
func (c *ClientImpl) OnError(hook http_transport.ErrorHook) http_transport.Unregister {
	return c.hooks.OnError(hook)
}

// Get is a shorthand for a GET request without a body.
func (c *ClientImpl) Get(ctx context.Context, rawURL string) (*Result, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, URL: rawURL})
}

// Do sends a request and reads the complete response body.
// A response failing status validation is returned together with a *StatusError.
func (c *ClientImpl) Do(ctx context.Context, request *Request) (*Result, error) {
	route, err := c.resolveURL(request.URL)
	if err != nil {
		return nil, err
	}

	method := strings.ToUpper(strings.TrimSpace(request.Method))
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader = http.NoBody
	if request.Body != "" {
		body = strings.NewReader(request.Body)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, method, route, body)
	if err != nil {
		return nil, err
	}

	for name, values := range request.Header {
		for _, value := range values {
			httpRequest.Header.Add(name, value)
		}
	}

	startTime := time.Now()

	response, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close() //nolint:errcheck // Error on close is not critical here.

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	result := &Result{
		StatusCode: response.StatusCode,
		Status:     response.Status,
		Header:     response.Header,
		Body:       data,
		Duration:   time.Since(startTime),
	}

	logger.Debugf(ctx, "%s %s [%d] %s", method, route, response.StatusCode, result.Duration)

	if !c.hooks.ValidateStatus(response.StatusCode) {
		return result, &StatusError{
			StatusCode: response.StatusCode,
			Method:     method,
			URL:        route,
		}
	}

	return result, nil
}

func (c *ClientImpl) resolveURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", ErrEmptyURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid request URL: %w", err)
	}

	if parsed.IsAbs() || c.baseURL == nil {
		return parsed.String(), nil
	}

	return c.baseURL.ResolveReference(parsed).String(), nil
}
