package logger

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/molweight-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restoreDefault resets the default logger after a test that calls setup.
func restoreDefault(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name      string
		wantLevel slog.Level
		wantOK    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			level, ok := ParseLevel(tc.name)
			assert.Equal(t, tc.wantLevel, level)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestSetup_FiltersBelowLevel(t *testing.T) {
	restoreDefault(t)

	buf := &TestLogBuffer{}
	logger := setup(config.ServerConfig{LogLevel: "warn"}, buf)

	logger.Info("hidden message")
	logger.Warn("visible message", "formula", "H2O")

	assert.NotContains(t, buf.String(), "hidden message")
	AssertLogField(t, buf, "msg", "visible message")
	AssertLogField(t, buf, "formula", "H2O")
	assert.Same(t, logger, slog.Default(), "setup should install the logger as default")
}

func TestSetup_InvalidLevelWarns(t *testing.T) {
	restoreDefault(t)

	buf := &TestLogBuffer{}
	logger := setup(config.ServerConfig{LogLevel: "loud"}, buf)
	require.NotNil(t, logger)

	AssertLogField(t, buf, "configured_level", "loud")
	AssertLogField(t, buf, "level", "WARN")

	logger.Debug("debug is below the info fallback")
	assert.False(t, strings.Contains(buf.String(), "debug is below"))
}

func TestSetup_ReturnsLogger(t *testing.T) {
	restoreDefault(t)

	logger, err := Setup(config.ServerConfig{LogLevel: "info"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestContextLogger(t *testing.T) {
	logger, buf := NewTestLogger(t)
	fallback := slog.New(slog.NewJSONHandler(&TestLogBuffer{}, nil))

	ctx := WithLogger(context.Background(), logger.With("trace_id", "abc123"))

	FromContext(ctx).Info("from context")
	AssertLogField(t, buf, "trace_id", "abc123")

	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, slog.Default(), FromContext(context.Background()))
	//nolint:staticcheck // a nil context must not panic
	assert.Same(t, fallback, FromContextOrDefault(nil, fallback))
}
