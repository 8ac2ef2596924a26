// Package logger holds the process-wide structured logger used by the
// allocator. Output is discarded until Init or FromEnv enables it.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// L is the global logger instance. It's initialized to discard all output by default.
var L *slog.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

const (
	// EnvLogAlloc enables allocator logging when set to any non-empty value.
	EnvLogAlloc = "ZONEMALLOC_LOG_ALLOC"
	// EnvLogLevel selects the minimum level: debug, info, warn or error.
	EnvLogLevel = "ZONEMALLOC_LOG_LEVEL"
	// EnvLogFormat selects the handler: "json" or anything else for text.
	EnvLogFormat = "ZONEMALLOC_LOG_FORMAT"
)

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	Output  io.Writer  // Destination. Default: os.Stderr
	Level   slog.Level // Minimum log level. Default: LevelInfo when enabled
	JSON    bool       // Use the JSON handler instead of the text handler
}

// Init configures logging. If opts.Enabled is false, all log output is discarded.
func Init(opts Options) {
	L = New(opts)
}

// New builds a logger from opts without touching L.
func New(opts Options) *slog.Logger {
	if !opts.Enabled {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	level := opts.Level
	if level == 0 {
		level = slog.LevelInfo
	}
	hopts := &slog.HandlerOptions{Level: level}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(out, hopts))
	}
	return slog.New(slog.NewTextHandler(out, hopts))
}

// OptionsFromEnv reads the ZONEMALLOC_LOG_* variables.
func OptionsFromEnv() Options {
	return Options{
		Enabled: os.Getenv(EnvLogAlloc) != "",
		Level:   parseLevel(os.Getenv(EnvLogLevel)),
		JSON:    strings.EqualFold(os.Getenv(EnvLogFormat), "json"),
	}
}

// FromEnv initializes L from the environment.
func FromEnv() {
	Init(OptionsFromEnv())
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
