// Package logger provides structured logging for linescan.
//
// One process-wide zap logger is built lazily or by Init. Runs attach their
// identity to a context with NewContext; FromContext turns that identity
// into fields on any base logger, so every line a run emits carries its
// run_id, puzzle and file.
package logger

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ajitpratap0/linescan/pkg/config"
)

var (
	globalLogger *zap.Logger
	mu           sync.Mutex
)

type contextKey string

const (
	// RunIDKey is the context key for the batch run ID
	RunIDKey contextKey = "run_id"
	// PuzzleKey is the context key for the puzzle part, as "name/part"
	PuzzleKey contextKey = "puzzle"
	// FileKey is the context key for the input file path
	FileKey contextKey = "file"
)

var contextKeys = []contextKey{RunIDKey, PuzzleKey, FileKey}

// Config represents logger configuration
type Config struct {
	Level       string
	Development bool
	Encoding    string // json or console
	OutputPaths []string
}

// FromConfig returns the logger settings of the observability section
func FromConfig(obs config.ObservabilityConfig) Config {
	return Config{Level: obs.LogLevel, Encoding: obs.LogFormat}
}

// Init replaces the global logger with one built from cfg
func Init(cfg Config) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	globalLogger = l
	return nil
}

// New builds a logger from cfg without touching the global one. Output goes
// to stderr unless OutputPaths says otherwise, keeping stdout for results.
func New(cfg Config) (*zap.Logger, error) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Encoding == "" {
		cfg.Encoding = "json"
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.MessageKey = "message"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeDuration = zapcore.StringDurationEncoder
	if cfg.Development {
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.Development = cfg.Development
	zcfg.Encoding = cfg.Encoding
	zcfg.EncoderConfig = enc
	zcfg.Sampling = nil
	zcfg.OutputPaths = []string{"stderr"}
	if len(cfg.OutputPaths) > 0 {
		zcfg.OutputPaths = cfg.OutputPaths
	}

	opts := []zap.Option{}
	if cfg.Development {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	l, err := zcfg.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l, nil
}

// Get returns the global logger, building an info-level JSON logger on
// first use
func Get() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()

	if globalLogger == nil {
		l, err := New(Config{})
		if err != nil {
			l = zap.NewNop()
		}
		globalLogger = l
	}
	return globalLogger
}

// With creates a child of the global logger with additional fields
func With(fields ...zap.Field) *zap.Logger {
	return Get().With(fields...)
}

// NewContext returns ctx carrying a run's identity. Empty values are skipped.
func NewContext(ctx context.Context, runID, puzzle, file string) context.Context {
	for i, v := range []string{runID, puzzle, file} {
		if v != "" {
			ctx = context.WithValue(ctx, contextKeys[i], v)
		}
	}
	return ctx
}

// FromContext decorates base with the run identity carried by ctx
func FromContext(ctx context.Context, base *zap.Logger) *zap.Logger {
	fields := make([]zap.Field, 0, len(contextKeys))
	for _, key := range contextKeys {
		if v, ok := ctx.Value(key).(string); ok {
			fields = append(fields, zap.String(string(key), v))
		}
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

// Sync flushes the global logger, if one was built
func Sync() error {
	mu.Lock()
	defer mu.Unlock()

	if globalLogger != nil {
		return globalLogger.Sync()
	}
	return nil
}
