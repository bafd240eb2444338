package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/http-observer/internal/client/httpclient"
	"github.com/oshokin/http-observer/internal/config"
	"github.com/oshokin/http-observer/internal/logger"
	"github.com/oshokin/http-observer/internal/service/observer"
	"github.com/oshokin/http-observer/internal/utils"
)

// RequestOptions holds per-invocation request settings from the command line.
type RequestOptions struct {
	// Method is the HTTP method for every request.
	Method string
	// Headers are raw "Name: value" header lines.
	Headers []string
	// Body is the request payload.
	Body string
	// InputFile is an optional file with one URL per line.
	InputFile string
}

// Summary aggregates the outcome of a run.
type Summary struct {
	// Total is the number of requests attempted.
	Total int
	// Succeeded is the number of requests that passed status validation.
	Succeeded int
	// Failed is the number of requests that errored or failed status validation.
	Failed int
	// BytesReceived is the total size of the response bodies read.
	BytesReceived uint64
}

// ErrInvalidHeader indicates that a header line is not in "Name: value" form.
var ErrInvalidHeader = errors.New("invalid header, expected 'Name: value'")

// ExecuteRootCommand is the entry point for the application.
// It builds the client, attaches the observer and sends one request per URL.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, opts RequestOptions, urls []string) {
	urls, err := collectURLs(opts.InputFile, urls)
	if err != nil {
		logger.Fatalf(ctx, "Failed to read URLs: %v", err)
	}

	header, err := ParseHeaders(opts.Headers)
	if err != nil {
		logger.Fatalf(ctx, "Failed to parse headers: %v", err)
	}

	client, err := httpclient.NewClient(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize HTTP client: %v", err)
	}

	sink, err := NewSink(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize sink: %v", err)
	}

	missingResponse, err := observer.ParseMissingResponseMode(cfg.MissingResponse)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize observer: %v", err)
	}

	requests := make([]*httpclient.Request, 0, len(urls))
	for _, rawURL := range urls {
		requests = append(requests, &httpclient.Request{
			Method: opts.Method,
			URL:    rawURL,
			Header: header,
			Body:   opts.Body,
		})
	}

	summary := RunRequests(ctx, client, observer.NewObserver(sink, missingResponse), requests)

	logger.Infof(ctx, "Sent %d request(s): %d succeeded, %d failed, %s received",
		summary.Total, summary.Succeeded, summary.Failed, humanize.Bytes(summary.BytesReceived))
}

// RunRequests attaches obs to client, sends the requests sequentially and detaches it.
// It stops early when ctx is canceled.
func RunRequests(
	ctx context.Context,
	client httpclient.Client,
	obs observer.Observer,
	requests []*httpclient.Request,
) *Summary {
	detach := obs.Attach(ctx, client)
	defer detach()

	summary := new(Summary)

	for _, request := range requests {
		if ctx.Err() != nil {
			logger.Warnf(ctx, "Stopping: %v", ctx.Err())

			break
		}

		summary.Total++

		result, err := client.Do(ctx, request)
		if result != nil {
			summary.BytesReceived += uint64(len(result.Body))
		}

		if err != nil {
			summary.Failed++

			logger.Errorf(ctx, "Request to %s failed: %v", request.URL, err)

			continue
		}

		summary.Succeeded++
	}

	return summary
}

// NewSink builds the sink selected by the configuration.
func NewSink(cfg *config.Config) (observer.Sink, error) {
	kind, err := observer.ParseSinkKind(cfg.Sink)
	if err != nil {
		return nil, err
	}

	switch kind {
	case observer.SinkKindConsole:
		return observer.NewWriterSink(os.Stdout), nil
	default:
		return observer.NewLoggerSink(cfg.ParsedSinkLevel), nil
	}
}

// ParseHeaders converts "Name: value" lines into an http.Header.
func ParseHeaders(lines []string) (http.Header, error) {
	header := make(http.Header, len(lines))

	for _, line := range lines {
		name, value, found := strings.Cut(line, ":")
		name = strings.TrimSpace(name)

		if !found || name == "" {
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidHeader, line)
		}

		header.Add(name, strings.TrimSpace(value))
	}

	return header, nil
}

func collectURLs(inputFile string, urls []string) ([]string, error) {
	if inputFile == "" {
		return urls, nil
	}

	fileURLs, err := utils.ReadUniqueLinesFromFile(inputFile)
	if err != nil {
		return nil, err
	}

	return append(urls, fileURLs...), nil
}
