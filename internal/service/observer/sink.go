package observer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"

	"github.com/oshokin/http-observer/internal/logger"
)

// SinkKind names a built-in sink.
type SinkKind string

const (
	// SinkKindLogger writes entries through the application logger.
	SinkKindLogger SinkKind = "logger"
	// SinkKindConsole writes indented JSON entries to a writer, typically stdout.
	SinkKindConsole SinkKind = "console"
)

// ErrUnknownSinkKind indicates that the sink kind is not recognized.
var ErrUnknownSinkKind = errors.New("unknown sink kind")

// ParseSinkKind converts text into a SinkKind. Empty text means logger.
func ParseSinkKind(text string) (SinkKind, error) {
	switch kind := SinkKind(strings.ToLower(strings.TrimSpace(text))); kind {
	case "", SinkKindLogger:
		return SinkKindLogger, nil
	case SinkKindConsole:
		return SinkKindConsole, nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrUnknownSinkKind, text)
	}
}

// LoggerSink writes entries through the zap-backed application logger.
type LoggerSink struct {
	// level is the level entries are logged at.
	level zapcore.Level
}

// NewLoggerSink creates a sink logging entries at level.
func NewLoggerSink(level zapcore.Level) *LoggerSink {
	return &LoggerSink{level: level}
}

// Write logs the entry with its payload as a structured field.
func (s *LoggerSink) Write(ctx context.Context, entry Entry) {
	logger.LogKV(ctx, s.level, entryMessage(entry.Event), "event", entry.Event, "payload", entry.Payload)
}

// WriterSink writes each entry as indented JSON to an io.Writer.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Write encodes the entry. Encoding failures are logged and otherwise ignored.
func (s *WriterSink) Write(ctx context.Context, entry Entry) {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		logger.Warnf(ctx, "Failed to encode %s entry: %v", entry.Event, err)

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err = fmt.Fprintf(s.w, "%s\n", data); err != nil {
		logger.Warnf(ctx, "Failed to write %s entry: %v", entry.Event, err)
	}
}

func entryMessage(event Event) string {
	switch event {
	case EventRequest:
		return "HTTP request"
	case EventResponse:
		return "HTTP response"
	case EventErrorResponse:
		return "HTTP error response"
	case EventNoResponse:
		return "HTTP error without response"
	default:
		return "HTTP " + string(event)
	}
}
