package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" DEBUG ": slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLogLevel(in), in)
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "docnav", "v1.2.3", "info", FormatJSON)

	log.Debug("hidden")
	log.Info("shown", "group", "docs")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "docnav", entry["module"])
	assert.Equal(t, "v1.2.3", entry["version"])
	assert.Equal(t, "docs", entry["group"])
	assert.NotContains(t, entry, "source")
}

func TestNewLogger_TextWithSourceAtDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "docnav", "dev", "debug", "TEXT")

	log.Debug("details")

	out := buf.String()
	assert.Contains(t, out, "msg=details")
	assert.Contains(t, out, "module=docnav")
	assert.Contains(t, out, "source=")
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv(EnvVarLogLevel, "")
	t.Setenv(EnvVarLogLevelFallback, "warn")
	assert.Equal(t, "warn", LevelFromEnv())

	t.Setenv(EnvVarLogLevel, "debug")
	assert.Equal(t, "debug", LevelFromEnv())
}
