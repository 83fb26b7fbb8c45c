package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignhub/internal/config/configs"
)

func TestNewJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, configs.Logger{Level: "warn", Format: "json"})

	l.Info("dropped")
	l.Warn("kept", slog.String("k", "v"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "v", rec["k"])
}

func TestInitializeWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "api.log")

	l, err := Initialize(configs.Logger{Level: "info", Format: "text", OutputPath: path, MaxSize: 1})
	require.NoError(t, err)
	t.Cleanup(func() { defaultLogger = nil })

	assert.Same(t, l, Get())
	l.Info("started")
	assert.FileExists(t, path)
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestIDFromContext(ctx))
	assert.NotNil(t, FromContext(ctx))

	id := NewRequestID()
	ctx = WithRequestID(ctx, id)
	assert.Equal(t, id, RequestIDFromContext(ctx))
	assert.NotSame(t, Get(), FromContext(ctx))
}
