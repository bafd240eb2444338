package observer

//go:generate $MOCKGEN -source=observer.go -destination=mocks/observer_mock.go

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/oshokin/http-observer/internal/logger"
	http_transport "github.com/oshokin/http-observer/internal/transport/http"
)

// Client is a hook-aware HTTP client exposing three registration points.
// Each hook is invoked synchronously at the corresponding lifecycle point.
type Client interface {
	// OnRequest registers a hook invoked before each request is sent.
	OnRequest(hook http_transport.RequestHook) http_transport.Unregister
	// OnResponse registers a hook invoked for each successful response.
	OnResponse(hook http_transport.ResponseHook) http_transport.Unregister
	// OnError registers a hook invoked for each failed transaction.
	OnError(hook http_transport.ErrorHook) http_transport.Unregister
}

// Sink receives observed entries.
type Sink interface {
	// Write records a single entry. It must be safe for concurrent use.
	Write(ctx context.Context, entry Entry)
}

// Event identifies the lifecycle point an entry was observed at.
type Event string

const (
	// EventRequest marks an outgoing request descriptor.
	EventRequest Event = "request"
	// EventResponse marks an incoming response descriptor.
	EventResponse Event = "response"
	// EventErrorResponse marks the response descriptor nested in a failed transaction.
	EventErrorResponse Event = "error_response"
	// EventNoResponse marks a failed transaction that carries no response.
	EventNoResponse Event = "no_response"
)

// Entry is a single observation handed to a Sink.
type Entry struct {
	// Event is the lifecycle point.
	Event Event `json:"event"`
	// Payload is the observed descriptor.
	Payload any `json:"payload"`
}

// MissingResponseMode controls what the error hook writes when a failed
// transaction has no nested response.
type MissingResponseMode string

const (
	// MissingResponseSkip writes nothing.
	MissingResponseSkip MissingResponseMode = "skip"
	// MissingResponseMarker writes one EventNoResponse entry carrying the error descriptor.
	MissingResponseMarker MissingResponseMode = "marker"
)

// ErrUnknownMissingResponseMode indicates that the missing response mode is not recognized.
var ErrUnknownMissingResponseMode = errors.New("unknown missing response mode")

// ParseMissingResponseMode converts text into a MissingResponseMode. Empty text means skip.
func ParseMissingResponseMode(text string) (MissingResponseMode, error) {
	switch mode := MissingResponseMode(strings.ToLower(strings.TrimSpace(text))); mode {
	case "", MissingResponseSkip:
		return MissingResponseSkip, nil
	case MissingResponseMarker:
		return MissingResponseMarker, nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrUnknownMissingResponseMode, text)
	}
}

// Detach removes the hooks installed by Attach. Calling it more than once is a no-op.
type Detach func()

// Observer installs logging hooks on a Client.
type Observer interface {
	// Attach registers one request, one response and one error hook on client.
	Attach(ctx context.Context, client Client) Detach
}

// ObserverImpl implements Observer. It holds only immutable settings,
// so its hooks are safe to run concurrently.
type ObserverImpl struct {
	// sink receives every observed entry.
	sink Sink
	// missingResponse controls the error hook for failures without a response.
	missingResponse MissingResponseMode
}

// NewObserver creates an observer writing to sink.
func NewObserver(sink Sink, missingResponse MissingResponseMode) Observer {
	if missingResponse == "" {
		missingResponse = MissingResponseSkip
	}

	return &ObserverImpl{
		sink:            sink,
		missingResponse: missingResponse,
	}
}

// Attach is a shorthand for NewObserver(sink, missingResponse).Attach(ctx, client).
func Attach(
	ctx context.Context,
	client Client,
	sink Sink,
	missingResponse MissingResponseMode,
) Detach {
	return NewObserver(sink, missingResponse).Attach(ctx, client)
}

// Attach registers one request, one response and one error hook on client.
func (o *ObserverImpl) Attach(ctx context.Context, client Client) Detach {
	ctx = logger.WithName(ctx, "observer")

	unregisterRequest := client.OnRequest(func(d *http_transport.RequestDescriptor) *http_transport.RequestDescriptor {
		return o.observeRequest(ctx, d)
	})
	unregisterResponse := client.OnResponse(func(d *http_transport.ResponseDescriptor) *http_transport.ResponseDescriptor {
		return o.observeResponse(ctx, d)
	})
	unregisterError := client.OnError(func(d *http_transport.ErrorDescriptor) {
		o.observeError(ctx, d)
	})

	logger.Debug(ctx, "Observer attached")

	var once sync.Once

	return func() {
		once.Do(func() {
			unregisterRequest()
			unregisterResponse()
			unregisterError()

			logger.Debug(ctx, "Observer detached")
		})
	}
}

func (o *ObserverImpl) observeRequest(
	ctx context.Context,
	descriptor *http_transport.RequestDescriptor,
) *http_transport.RequestDescriptor {
	o.sink.Write(ctx, Entry{Event: EventRequest, Payload: descriptor})

	return descriptor
}

func (o *ObserverImpl) observeResponse(
	ctx context.Context,
	descriptor *http_transport.ResponseDescriptor,
) *http_transport.ResponseDescriptor {
	o.sink.Write(ctx, Entry{Event: EventResponse, Payload: descriptor})

	return descriptor
}

func (o *ObserverImpl) observeError(ctx context.Context, descriptor *http_transport.ErrorDescriptor) {
	if descriptor.HasResponse() {
		o.sink.Write(ctx, Entry{Event: EventErrorResponse, Payload: descriptor.Response})

		return
	}

	if o.missingResponse == MissingResponseMarker && descriptor != nil {
		o.sink.Write(ctx, Entry{Event: EventNoResponse, Payload: descriptor})
	}
}
