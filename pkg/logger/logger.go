package logger

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

const (
	// EnvVarLogLevel is the environment variable name for setting the log level.
	EnvVarLogLevel = "DOCNAV_LOG_LEVEL"

	// EnvVarLogLevelFallback is consulted when EnvVarLogLevel is not set.
	EnvVarLogLevelFallback = "LOG_LEVEL"

	// FormatJSON selects the JSON handler.
	FormatJSON = "json"

	// FormatText selects the key=value text handler.
	FormatText = "text"
)

// NewLogger creates a new structured logger with the specified log level,
// writing to w in the given format ("json" or "text", anything else is JSON).
// Defined module name and version are included in the logger's context.
// AddSource is enabled for debug level logging only.
// Parameters:
//   - w: Destination of the log records.
//   - module: The name of the module/application using the logger.
//   - version: The version of the module/application (e.g., "v1.0.0").
//   - level: The log level as a string (e.g., "debug", "info", "warn", "error").
//   - format: The handler format, "json" or "text".
//
// Returns:
//   - *slog.Logger: A pointer to the configured slog.Logger instance.
func NewLogger(w io.Writer, module, version, level, format string) *slog.Logger {
	lev := ParseLogLevel(level)

	opts := &slog.HandlerOptions{
		Level:     lev,
		AddSource: lev <= slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(format), FormatText) {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler).With("module", module, "version", version)
}

// NewLogLogger creates a new standard library log.Logger that writes logs
// using the slog package with the specified log level.
// Parameters:
//   - level: The log level as a slog.Level.
//
// Returns:
//   - *log.Logger: A pointer to the configured log.Logger instance.
func NewLogLogger(level slog.Level, withSource bool) *log.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: withSource,
	})

	return slog.NewLogLogger(handler, level)
}

// SetDefaultLoggerWithFormat initializes the structured logger writing to
// stderr and sets it as the default logger.
func SetDefaultLoggerWithFormat(module, version, level, format string) {
	slog.SetDefault(NewLogger(os.Stderr, module, version, level, format))
}

// LevelFromEnv returns the level configured in the environment, or "".
func LevelFromEnv() string {
	if v := os.Getenv(EnvVarLogLevel); v != "" {
		return v
	}
	return os.Getenv(EnvVarLogLevelFallback)
}

// ParseLogLevel converts a string representation of a log level into a slog.Level.
// Parameters:
//   - level: The log level as a string (e.g., "debug", "info", "warn", "error").
//
// Returns:
//   - slog.Level corresponding to the input string. Defaults to slog.LevelInfo for unrecognized strings.
func ParseLogLevel(level string) slog.Level {
	var lev slog.Level

	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lev = slog.LevelDebug
	case "warn", "warning":
		lev = slog.LevelWarn
	case "error":
		lev = slog.LevelError
	default:
		lev = slog.LevelInfo
	}

	return lev
}
