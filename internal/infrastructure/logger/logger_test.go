package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		cfg    *Config
		expect zapcore.Level
	}{
		{"debug console", &Config{Level: "debug", Format: "console", Output: "stdout", TimeFormat: "15:04:05"}, zapcore.DebugLevel},
		{"info json", &Config{Level: "info", Format: "json", Output: "stderr", TimeFormat: "15:04:05"}, zapcore.InfoLevel},
		{"unknown level defaults to info", &Config{Level: "chatty", Format: "json", Output: "stdout", TimeFormat: "15:04:05"}, zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.expect))
			if tt.expect != zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
			}
		})
	}
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	l, err := New(&Config{Level: "info", Format: "json", Output: path, TimeFormat: "15:04:05"})
	require.NoError(t, err)

	l.Info("settlement completed")
	require.NoError(t, Sync(l))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "settlement completed")
}

func TestNewUnwritableFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "app.log")

	_, err := New(&Config{Level: "info", Format: "json", Output: path, TimeFormat: "15:04:05"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log output")
}

func TestContextRoundTrip(t *testing.T) {
	base := zap.NewNop()
	ctx := context.Background()

	ctx, enriched := WithRequestID(ctx, base, "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))
	assert.Same(t, enriched, FromContext(ctx))
}

func TestFromContextMissingLogger(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
	// must be safe to use
	l.Info("noop")
}
