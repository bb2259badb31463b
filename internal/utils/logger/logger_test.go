package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"applytrack/internal/app/server/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		debugOn     bool
	}{
		{name: "local environment", env: config.EnvLocal, debugOn: true},
		{name: "dev environment", env: config.EnvDev, debugOn: true},
		{name: "prod environment", env: config.EnvProd, debugOn: false},
		{name: "unknown environment defaults to prod", env: "staging", debugOn: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.env)
			require.NotNil(t, logger)

			ctx := context.Background()
			assert.Equal(t, tt.debugOn, logger.Enabled(ctx, slog.LevelDebug))
			assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
		})
	}
}

func TestSetupPrettySlog(t *testing.T) {
	logger := setupPrettySlog()
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestPrettyHandler_WithAttrsKeepsLevel(t *testing.T) {
	h := newPrettyHandler(nil, slog.LevelInfo)
	child := h.WithAttrs([]slog.Attr{slog.String("component", "test")})

	ctx := context.Background()
	assert.False(t, child.Enabled(ctx, slog.LevelDebug))
	assert.True(t, child.Enabled(ctx, slog.LevelWarn))
}
