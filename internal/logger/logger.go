// Package logger provides structured logging for planbrowser using zap.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dbsmedya/planbrowser/internal/config"
	"github.com/dbsmedya/planbrowser/internal/filter"
)

// Logger wraps zap.SugaredLogger with context methods.
type Logger struct {
	*zap.SugaredLogger
	base *zap.Logger
}

// New creates a new Logger from configuration.
func New(cfg *config.LoggingConfig) (*Logger, error) {
	level := parseLevel(cfg.Level)
	encoder := buildEncoder(cfg.Format)
	writers := buildWriters(cfg.Output)

	core := zapcore.NewCore(encoder, writers, level)
	return FromZap(zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))), nil
}

// NewDefault creates a Logger with default settings (warn level, text format, stderr).
func NewDefault() *Logger {
	cfg := &config.LoggingConfig{
		Level:  "warn",
		Format: "text",
		Output: "stderr",
	}
	logger, _ := New(cfg)
	return logger
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	return FromZap(zap.NewNop())
}

// FromZap wraps an existing zap logger, for example one built on an
// observer core in tests.
func FromZap(base *zap.Logger) *Logger {
	return &Logger{
		SugaredLogger: base.Sugar(),
		base:          base,
	}
}

// parseLevel converts string level to zapcore.Level.
func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info", "":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// buildEncoder creates the appropriate encoder based on format.
func buildEncoder(format string) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if format == "json" {
		return zapcore.NewJSONEncoder(encoderConfig)
	}

	// Text format with colored output
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}

// buildWriters creates the output writer based on configuration.
// Tables go to stdout, so a file destination is written on its own.
func buildWriters(output string) zapcore.WriteSyncer {
	switch output {
	case "stderr", "":
		return zapcore.AddSync(os.Stderr)
	case "stdout":
		return zapcore.AddSync(os.Stdout)
	default:
		file, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			// Fall back to stderr
			return zapcore.AddSync(os.Stderr)
		}
		return zapcore.AddSync(file)
	}
}

// WithBackend returns a Logger tagged with the storage backend name.
func (l *Logger) WithBackend(backend string) *Logger {
	return l.with(zap.String("backend", backend))
}

// WithOperation returns a Logger tagged with a store or catalog operation.
func (l *Logger) WithOperation(op string) *Logger {
	return l.with(zap.String("op", op))
}

// WithPlan returns a Logger tagged with a plan id.
func (l *Logger) WithPlan(id string) *Logger {
	return l.with(zap.String("plan", id))
}

// WithCriteria returns a Logger carrying the active filter as a nested
// "filter" object. Selectors left at All and an empty search are omitted,
// so an unfiltered listing logs an empty object.
func (l *Logger) WithCriteria(c filter.Criteria, search string) *Logger {
	fields := make([]zap.Field, 0, 4)
	for _, sel := range []struct{ key, value string }{
		{"carrier", c.Carrier},
		{"type", c.Type},
		{"feature", c.Feature},
	} {
		if sel.value != "" && sel.value != filter.All {
			fields = append(fields, zap.String(sel.key, sel.value))
		}
	}
	if search = strings.TrimSpace(search); search != "" {
		fields = append(fields, zap.String("search", search))
	}
	return l.with(zap.Dict("filter", fields...))
}

// WithFields returns a Logger with additional fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	zf := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	return l.with(zf...)
}

// with derives a child whose typed fields are shared by the sugared and
// the base logger.
func (l *Logger) with(fields ...zap.Field) *Logger {
	return FromZap(l.base.With(fields...))
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.base.Sync()
}
