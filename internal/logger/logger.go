package logger

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey struct{}

var (
	//nolint:gochecknoglobals // Shared atomic level, adjusted once configuration is loaded.
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	//nolint:gochecknoglobals // Process-wide default logger used when the context carries none.
	global *zap.SugaredLogger
)

//nolint:gochecknoinits // The default logger must exist before any command runs.
func init() {
	SetLogger(New(level))
}

// New creates a console-encoded sugared logger writing to stderr.
// A nil level falls back to the package-wide atomic level.
func New(lvl zapcore.LevelEnabler, options ...zap.Option) *zap.SugaredLogger {
	if lvl == nil {
		lvl = level
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(os.Stderr)),
		lvl,
	)

	return zap.New(core, options...).Sugar()
}

// ParseLogLevel converts a textual level into a zapcore.Level.
// The second value reports whether the text was recognized; InfoLevel is returned otherwise.
func ParseLogLevel(text string) (zapcore.Level, bool) {
	var lvl zapcore.Level

	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(text)))); err != nil {
		return zapcore.InfoLevel, false
	}

	// zapcore treats an empty string as info, callers must set it explicitly.
	if strings.TrimSpace(text) == "" {
		return zapcore.InfoLevel, false
	}

	return lvl, true
}

// Level returns the current global log level.
func Level() zapcore.Level {
	return level.Level()
}

// SetLevel changes the global log level.
func SetLevel(lvl zapcore.Level) {
	level.SetLevel(lvl)
}

// IsDebugLevel reports whether debug messages are currently emitted.
func IsDebugLevel() bool {
	return level.Enabled(zapcore.DebugLevel)
}

// Enabled reports whether messages at lvl are currently emitted.
func Enabled(lvl zapcore.Level) bool {
	return level.Enabled(lvl)
}

// Logger returns the global logger.
func Logger() *zap.SugaredLogger {
	return global
}

// SetLogger replaces the global logger.
func SetLogger(l *zap.SugaredLogger) {
	global = l
}

// ToContext returns a copy of ctx carrying l.
func ToContext(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the logger stored in ctx, or the global one.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if l, ok := ctx.Value(contextKey{}).(*zap.SugaredLogger); ok && l != nil {
			return l
		}
	}

	return global
}

// WithName returns a context whose logger is named name.
func WithName(ctx context.Context, name string) context.Context {
	return ToContext(ctx, FromContext(ctx).Named(name))
}

// WithKV returns a context whose logger carries the key-value pair.
func WithKV(ctx context.Context, key string, value any) context.Context {
	return ToContext(ctx, FromContext(ctx).With(key, value))
}

// Debug logs a message at debug level.
func Debug(ctx context.Context, args ...any) { FromContext(ctx).Debug(args...) }

// Debugf logs a formatted message at debug level.
func Debugf(ctx context.Context, format string, args ...any) { FromContext(ctx).Debugf(format, args...) }

// DebugKV logs a message with key-value pairs at debug level.
func DebugKV(ctx context.Context, message string, kvs ...any) { FromContext(ctx).Debugw(message, kvs...) }

// Info logs a message at info level.
func Info(ctx context.Context, args ...any) { FromContext(ctx).Info(args...) }

// Infof logs a formatted message at info level.
func Infof(ctx context.Context, format string, args ...any) { FromContext(ctx).Infof(format, args...) }

// InfoKV logs a message with key-value pairs at info level.
func InfoKV(ctx context.Context, message string, kvs ...any) { FromContext(ctx).Infow(message, kvs...) }

// Warn logs a message at warn level.
func Warn(ctx context.Context, args ...any) { FromContext(ctx).Warn(args...) }

// Warnf logs a formatted message at warn level.
func Warnf(ctx context.Context, format string, args ...any) { FromContext(ctx).Warnf(format, args...) }

// WarnKV logs a message with key-value pairs at warn level.
func WarnKV(ctx context.Context, message string, kvs ...any) { FromContext(ctx).Warnw(message, kvs...) }

// Error logs a message at error level.
func Error(ctx context.Context, args ...any) { FromContext(ctx).Error(args...) }

// Errorf logs a formatted message at error level.
func Errorf(ctx context.Context, format string, args ...any) { FromContext(ctx).Errorf(format, args...) }

// ErrorKV logs a message with key-value pairs at error level.
func ErrorKV(ctx context.Context, message string, kvs ...any) { FromContext(ctx).Errorw(message, kvs...) }

// Fatal logs a message at fatal level and exits.
func Fatal(ctx context.Context, args ...any) { FromContext(ctx).Fatal(args...) }

// Fatalf logs a formatted message at fatal level and exits.
func Fatalf(ctx context.Context, format string, args ...any) { FromContext(ctx).Fatalf(format, args...) }

// LogKV logs a message with key-value pairs at an arbitrary level.
func LogKV(ctx context.Context, lvl zapcore.Level, message string, kvs ...any) {
	l := FromContext(ctx)

	switch lvl {
	case zapcore.DebugLevel:
		l.Debugw(message, kvs...)
	case zapcore.InfoLevel:
		l.Infow(message, kvs...)
	case zapcore.WarnLevel:
		l.Warnw(message, kvs...)
	case zapcore.ErrorLevel:
		l.Errorw(message, kvs...)
	case zapcore.DPanicLevel:
		l.DPanicw(message, kvs...)
	case zapcore.PanicLevel:
		l.Panicw(message, kvs...)
	case zapcore.FatalLevel:
		l.Fatalw(message, kvs...)
	default:
		l.Infow(message, kvs...)
	}
}
