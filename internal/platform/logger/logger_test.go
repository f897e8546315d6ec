package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/userdir-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name         string
		level        string
		debugEnabled bool
	}{
		{"debug_level", "debug", true},
		{"info_level", "info", false},
		{"uppercase_accepted", "WARN", false},
		{"invalid_falls_back_to_info", "verbose", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := Setup(config.ServerConfig{LogLevel: tc.level})
			require.NoError(t, err)
			require.NotNil(t, logger)

			assert.Equal(t, tc.debugEnabled, logger.Enabled(context.Background(), slog.LevelDebug))
		})
	}
}

func TestFromContextOrDefault(t *testing.T) {
	fallback := slog.Default()

	t.Run("missing_logger_returns_fallback", func(t *testing.T) {
		assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	})

	t.Run("stored_logger_is_returned", func(t *testing.T) {
		stored := slog.Default().With("trace_id", "abc")
		ctx := WithLogger(context.Background(), stored)
		assert.Same(t, stored, FromContextOrDefault(ctx, fallback))
	})

	t.Run("nil_fallback_uses_default", func(t *testing.T) {
		assert.NotNil(t, FromContextOrDefault(context.Background(), nil))
	})
}
