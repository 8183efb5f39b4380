package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := logger.ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, level)
		})
	}
}

func TestSetup(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	l, err := logger.Setup(config.ServerConfig{LogLevel: "debug"})
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Same(t, l, slog.Default())
	assert.True(t, l.Enabled(context.Background(), slog.LevelDebug))

	_, err = logger.Setup(config.ServerConfig{LogLevel: "loud"})
	assert.Error(t, err)
}

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	l, buf := logger.NewTestLogger()
	ctx := logger.WithLogger(context.Background(), l)
	ctx = logger.WithRequestID(ctx, "req-123")

	assert.Same(t, l, logger.FromContext(ctx))
	assert.Equal(t, "req-123", logger.RequestIDFromContext(ctx))

	fallback := slog.Default()
	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.Empty(t, logger.RequestIDFromContext(context.Background()))

	logger.FromContext(ctx).Info("hello", "key", "value")
	entries, err := buf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0]["msg"])
	assert.Equal(t, "value", entries[0]["key"])
}
