package observability

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{name: "debug level", input: "debug", expected: slog.LevelDebug},
		{name: "info level", input: "info", expected: slog.LevelInfo},
		{name: "warn level", input: "warn", expected: slog.LevelWarn},
		{name: "warning level", input: "warning", expected: slog.LevelWarn},
		{name: "error level", input: "error", expected: slog.LevelError},
		{name: "uppercase ERROR", input: "ERROR", expected: slog.LevelError},
		{name: "empty string defaults to info", input: "", expected: slog.LevelInfo},
		{name: "unknown level defaults to info", input: "xyzzy", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestInitLoggerJSON(t *testing.T) {
	logger := InitLogger(LogConfig{Level: "debug", Format: "json"})
	assert.NotNil(t, logger)

	// Verify the logger is functional (should not panic).
	logger.Info("test message", "key", "value")
}

func TestInitLoggerDefaultsToText(t *testing.T) {
	logger := InitLogger(LogConfig{Level: "warn", Format: ""})
	assert.NotNil(t, logger)

	logger.Warn("warning message")
}

func TestInitLoggerSetsDefault(t *testing.T) {
	logger := InitLogger(LogConfig{Level: "info", Format: "json"})

	assert.Equal(t, logger.Handler(), slog.Default().Handler())
}

func TestInitLoggerWithService(t *testing.T) {
	logger := InitLogger(LogConfig{Level: "info", Format: "json", Service: "leadscore"})
	assert.NotNil(t, logger)

	logger.Info("tagged message")
}
