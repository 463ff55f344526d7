package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// ContextKey is the type for context keys used by the logger
type ContextKey string

const LoggerKey ContextKey = "logger"

// Logger wraps zerolog.Logger and carries the component name it was built for.
// Info/Warn/Error/Debug take a message followed by key/value pairs.
type Logger struct {
	zl        zerolog.Logger
	component string
}

type Config struct {
	Level     string // debug|info|warn|error
	Format    string // text|json
	Component string
	Output    io.Writer
}

func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if !strings.EqualFold(cfg.Format, "json") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: cfg.Output != nil}
	}

	component := cfg.Component
	if component == "" {
		component = ComponentApp
	}
	zl := zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().Timestamp().Str(FieldComponent, component).
		Logger()
	return &Logger{zl: zl, component: component}
}

// Discard is used by tests and by code paths that were not given a logger.
func Discard() *Logger {
	return &Logger{zl: zerolog.Nop(), component: ComponentApp}
}

func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *Logger) Debug(msg string, kv ...any) { l.emit(l.zl.Debug(), msg, kv) }
func (l *Logger) Info(msg string, kv ...any)  { l.emit(l.zl.Info(), msg, kv) }
func (l *Logger) Warn(msg string, kv ...any)  { l.emit(l.zl.Warn(), msg, kv) }
func (l *Logger) Error(msg string, kv ...any) { l.emit(l.zl.Error(), msg, kv) }

func (l *Logger) emit(e *zerolog.Event, msg string, kv []any) {
	if e == nil {
		return
	}
	if len(kv) > 0 {
		e = e.Fields(kv)
	}
	e.Msg(msg)
}

func (l *Logger) With(kv ...any) *Logger {
	return &Logger{zl: l.zl.With().Fields(kv).Logger(), component: l.component}
}

// WithFields adds structured fields from a map.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	return &Logger{zl: l.zl.With().Fields(fields).Logger(), component: l.component}
}

// WithComponent returns a child logger tagged with another component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{zl: l.zl.With().Str(FieldComponent, component).Logger(), component: component}
}

func (l *Logger) Component() string {
	return l.component
}

// SetDefault makes l the global zerolog logger.
func SetDefault(l *Logger) {
	zlog.Logger = l.zl
}

// WithContext stores the logger in ctx.
func WithContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, l)
}

// FromContext returns the logger stored in ctx, or fallback when there is none.
func FromContext(ctx context.Context, fallback *Logger) *Logger {
	if l, ok := ctx.Value(LoggerKey).(*Logger); ok && l != nil {
		return l
	}
	if fallback != nil {
		return fallback
	}
	return Discard()
}
