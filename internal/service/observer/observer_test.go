package observer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/http-observer/internal/service/observer"
	mock_observer "github.com/oshokin/http-observer/internal/service/observer/mocks"
	http_transport "github.com/oshokin/http-observer/internal/transport/http"
)

// capturedHooks holds the hooks an observer registered on a mock client.
type capturedHooks struct {
	request  http_transport.RequestHook
	response http_transport.ResponseHook
	err      http_transport.ErrorHook

	unregistered atomic.Int32
}

func expectRegistrations(client *mock_observer.MockClient, hooks *capturedHooks) {
	unregister := func() { hooks.unregistered.Add(1) }

	client.EXPECT().OnRequest(gomock.Any()).DoAndReturn(
		func(hook http_transport.RequestHook) http_transport.Unregister {
			hooks.request = hook

			return unregister
		}).Times(1)
	client.EXPECT().OnResponse(gomock.Any()).DoAndReturn(
		func(hook http_transport.ResponseHook) http_transport.Unregister {
			hooks.response = hook

			return unregister
		}).Times(1)
	client.EXPECT().OnError(gomock.Any()).DoAndReturn(
		func(hook http_transport.ErrorHook) http_transport.Unregister {
			hooks.err = hook

			return unregister
		}).Times(1)
}

// TestAttach_RegistersOneHookPerPoint tests that Attach registers exactly three hooks and Detach removes them once.
func TestAttach_RegistersOneHookPerPoint(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)

	client := mock_observer.NewMockClient(ctrl)
	sink := mock_observer.NewMockSink(ctrl)

	var hooks capturedHooks

	expectRegistrations(client, &hooks)

	detach := observer.Attach(context.Background(), client, sink, observer.MissingResponseSkip)

	require.NotNil(t, hooks.request)
	require.NotNil(t, hooks.response)
	require.NotNil(t, hooks.err)

	detach()
	detach()

	assert.Equal(t, int32(3), hooks.unregistered.Load())
}

// TestObserver_RequestHook tests that the request hook writes the descriptor once and returns it unchanged.
func TestObserver_RequestHook(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)

	client := mock_observer.NewMockClient(ctrl)
	sink := mock_observer.NewMockSink(ctrl)

	var hooks capturedHooks

	expectRegistrations(client, &hooks)

	descriptor := &http_transport.RequestDescriptor{
		ID:     "tx-1",
		Method: http.MethodGet,
		URL:    "/users/1",
	}

	sink.EXPECT().
		Write(gomock.Any(), observer.Entry{Event: observer.EventRequest, Payload: descriptor}).
		Times(1)

	observer.Attach(context.Background(), client, sink, observer.MissingResponseSkip)

	result := hooks.request(descriptor)

	assert.Same(t, descriptor, result)
	assert.Equal(t, "/users/1", result.URL)
	assert.Equal(t, http.MethodGet, result.Method)
}

// TestObserver_ResponseHook tests that the response hook writes the descriptor once and returns it unchanged.
func TestObserver_ResponseHook(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)

	client := mock_observer.NewMockClient(ctrl)
	sink := mock_observer.NewMockSink(ctrl)

	var hooks capturedHooks

	expectRegistrations(client, &hooks)

	descriptor := &http_transport.ResponseDescriptor{
		ID:     "tx-1",
		Status: http.StatusOK,
		Data:   json.RawMessage(`{"id":1}`),
	}

	sink.EXPECT().
		Write(gomock.Any(), observer.Entry{Event: observer.EventResponse, Payload: descriptor}).
		Times(1)

	observer.Attach(context.Background(), client, sink, observer.MissingResponseSkip)

	assert.Same(t, descriptor, hooks.response(descriptor))
}

// TestObserver_ErrorHook tests the error hook with and without a nested response in both modes.
func TestObserver_ErrorHook(t *testing.T) {
	t.Parallel()

	nested := &http_transport.ResponseDescriptor{
		ID:     "tx-1",
		Status: http.StatusNotFound,
		Data:   json.RawMessage(`{"error":"not found"}`),
	}

	withResponse := &http_transport.ErrorDescriptor{
		ID:       "tx-1",
		Message:  "request failed with status code 404",
		Response: nested,
	}

	withoutResponse := &http_transport.ErrorDescriptor{
		ID:      "tx-2",
		Message: "dial tcp: connection refused",
		Err:     errors.New("dial tcp: connection refused"),
	}

	tests := []struct {
		name       string
		mode       observer.MissingResponseMode
		descriptor *http_transport.ErrorDescriptor
		expected   []observer.Entry
	}{
		{
			name:       "nested response is written",
			mode:       observer.MissingResponseSkip,
			descriptor: withResponse,
			expected:   []observer.Entry{{Event: observer.EventErrorResponse, Payload: nested}},
		},
		{
			name:       "nested response is written in marker mode",
			mode:       observer.MissingResponseMarker,
			descriptor: withResponse,
			expected:   []observer.Entry{{Event: observer.EventErrorResponse, Payload: nested}},
		},
		{
			name:       "missing response writes nothing in skip mode",
			mode:       observer.MissingResponseSkip,
			descriptor: withoutResponse,
			expected:   nil,
		},
		{
			name:       "missing response writes a marker in marker mode",
			mode:       observer.MissingResponseMarker,
			descriptor: withoutResponse,
			expected:   []observer.Entry{{Event: observer.EventNoResponse, Payload: withoutResponse}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)

			client := mock_observer.NewMockClient(ctrl)
			sink := mock_observer.NewMockSink(ctrl)

			var hooks capturedHooks

			expectRegistrations(client, &hooks)

			for _, entry := range tt.expected {
				sink.EXPECT().Write(gomock.Any(), entry).Times(1)
			}

			observer.Attach(context.Background(), client, sink, tt.mode)

			hooks.err(tt.descriptor)
		})
	}
}

// recordingSink collects entries for end-to-end assertions.
type recordingSink struct {
	entries chan observer.Entry
}

func newRecordingSink() *recordingSink {
	return &recordingSink{entries: make(chan observer.Entry, 16)}
}

func (s *recordingSink) Write(_ context.Context, entry observer.Entry) {
	s.entries <- entry
}

func (s *recordingSink) drain() []observer.Entry {
	var result []observer.Entry

	for {
		select {
		case entry := <-s.entries:
			result = append(result, entry)
		default:
			return result
		}
	}
}

// TestObserver_EndToEnd tests the documented scenarios against a real hook transport.
func TestObserver_EndToEnd(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)

		switch r.URL.Path {
		case "/old":
			http.Redirect(w, r, "/users/1", http.StatusFound)

			return
		}

		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/users/1":
			_, _ = io.WriteString(w, `{"id":1}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"not found"}`)
		}
	}))
	defer server.Close()

	transport := http_transport.NewHookTransport(http.DefaultTransport, http_transport.HookTransportConfig{})
	sink := newRecordingSink()

	detach := observer.Attach(context.Background(), transport, sink, observer.MissingResponseSkip)
	defer detach()

	client := &http.Client{Transport: transport}

	t.Run("successful request", func(t *testing.T) {
		resp, err := client.Get(server.URL + "/users/1") //nolint:noctx // Test code.
		require.NoError(t, err)
		resp.Body.Close() //nolint:errcheck,gosec // Test cleanup, error is not critical.

		entries := sink.drain()
		require.Len(t, entries, 2)

		assert.Equal(t, observer.EventRequest, entries[0].Event)
		request, ok := entries[0].Payload.(*http_transport.RequestDescriptor)
		require.True(t, ok)
		assert.Equal(t, http.MethodGet, request.Method)
		assert.Equal(t, server.URL+"/users/1", request.URL)

		assert.Equal(t, observer.EventResponse, entries[1].Event)
		response, ok := entries[1].Payload.(*http_transport.ResponseDescriptor)
		require.True(t, ok)
		assert.Equal(t, http.StatusOK, response.Status)
		assert.Equal(t, json.RawMessage(`{"id":1}`), response.Data)
	})

	t.Run("missing resource", func(t *testing.T) {
		resp, err := client.Get(server.URL + "/missing") //nolint:noctx // Test code.
		require.NoError(t, err)
		resp.Body.Close() //nolint:errcheck,gosec // Test cleanup, error is not critical.

		entries := sink.drain()
		require.Len(t, entries, 2)

		assert.Equal(t, observer.EventRequest, entries[0].Event)
		assert.Equal(t, observer.EventErrorResponse, entries[1].Event)

		response, ok := entries[1].Payload.(*http_transport.ResponseDescriptor)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, response.Status)
		assert.Equal(t, json.RawMessage(`{"error":"not found"}`), response.Data)
	})

	t.Run("followed redirect", func(t *testing.T) {
		resp, err := client.Get(server.URL + "/old") //nolint:noctx // Test code.
		require.NoError(t, err)
		resp.Body.Close() //nolint:errcheck,gosec // Test cleanup, error is not critical.

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		entries := sink.drain()

		events := make([]observer.Event, 0, len(entries))
		for _, entry := range entries {
			events = append(events, entry.Event)
		}

		assert.Equal(t, []observer.Event{
			observer.EventRequest,
			observer.EventResponse,
			observer.EventRequest,
			observer.EventResponse,
		}, events)

		final, ok := entries[len(entries)-1].Payload.(*http_transport.ResponseDescriptor)
		require.True(t, ok)
		assert.Equal(t, http.StatusOK, final.Status)
	})

	t.Run("unreachable host", func(t *testing.T) {
		unreachable := httptest.NewServer(http.NotFoundHandler())
		unreachableURL := unreachable.URL
		unreachable.Close()

		_, err := client.Get(unreachableURL) //nolint:noctx,bodyclose // Test code, no body on error.
		require.Error(t, err)

		entries := sink.drain()
		require.Len(t, entries, 1)
		assert.Equal(t, observer.EventRequest, entries[0].Event)
	})

	assert.Equal(t, int64(4), hits.Load())
}

// TestObserver_IsAdditive tests that attaching the observer does not change the requests reaching the server.
func TestObserver_IsAdditive(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		paths []string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.Method+" "+r.URL.Path)
		mu.Unlock()

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	run := func(attach bool) []string {
		mu.Lock()
		paths = nil
		mu.Unlock()

		transport := http_transport.NewHookTransport(http.DefaultTransport, http_transport.HookTransportConfig{})
		if attach {
			observer.Attach(context.Background(), transport, newRecordingSink(), observer.MissingResponseMarker)
		}

		client := &http.Client{Transport: transport}

		for _, path := range []string{"/a", "/b", "/c"} {
			resp, err := client.Get(server.URL + path) //nolint:noctx // Test code.
			require.NoError(t, err)
			resp.Body.Close() //nolint:errcheck,gosec // Test cleanup, error is not critical.
		}

		mu.Lock()
		defer mu.Unlock()

		return append([]string(nil), paths...)
	}

	assert.Equal(t, run(false), run(true))
}

// TestParseMissingResponseMode tests the ParseMissingResponseMode function.
func TestParseMissingResponseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected observer.MissingResponseMode
		valid    bool
	}{
		{input: "", expected: observer.MissingResponseSkip, valid: true},
		{input: "skip", expected: observer.MissingResponseSkip, valid: true},
		{input: " Marker ", expected: observer.MissingResponseMarker, valid: true},
		{input: "log-everything", expected: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			mode, err := observer.ParseMissingResponseMode(tt.input)
			if !tt.valid {
				require.ErrorIs(t, err, observer.ErrUnknownMissingResponseMode)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}
}

// TestWriterSink tests that entries are written as JSON documents.
func TestWriterSink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	sink := observer.NewWriterSink(&buf)
	sink.Write(context.Background(), observer.Entry{
		Event: observer.EventResponse,
		Payload: &http_transport.ResponseDescriptor{
			ID:     "tx-1",
			Status: http.StatusOK,
			Data:   json.RawMessage(`{"id":1}`),
		},
	})

	var decoded struct {
		Event   string `json:"event"`
		Payload struct {
			Status int             `json:"status"`
			Data   json.RawMessage `json:"data"`
		} `json:"payload"`
	}

	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "response", decoded.Event)
	assert.Equal(t, http.StatusOK, decoded.Payload.Status)
	assert.JSONEq(t, `{"id":1}`, string(decoded.Payload.Data))
}

// TestLoggerSink tests that the logger sink accepts every event kind.
func TestLoggerSink(t *testing.T) {
	t.Parallel()

	sink := observer.NewLoggerSink(zapcore.DebugLevel)

	for _, event := range []observer.Event{
		observer.EventRequest,
		observer.EventResponse,
		observer.EventErrorResponse,
		observer.EventNoResponse,
	} {
		assert.NotPanics(t, func() {
			sink.Write(context.Background(), observer.Entry{Event: event, Payload: map[string]int{"status": 200}})
		})
	}
}

// TestParseSinkKind tests the ParseSinkKind function.
func TestParseSinkKind(t *testing.T) {
	t.Parallel()

	kind, err := observer.ParseSinkKind("")
	require.NoError(t, err)
	assert.Equal(t, observer.SinkKindLogger, kind)

	kind, err = observer.ParseSinkKind("CONSOLE")
	require.NoError(t, err)
	assert.Equal(t, observer.SinkKindConsole, kind)

	_, err = observer.ParseSinkKind("syslog")
	require.ErrorIs(t, err, observer.ErrUnknownSinkKind)
}
