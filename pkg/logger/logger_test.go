package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudRunHandlerRedactsSensitiveKeys(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCloudRunHandlerTo(&buf, slog.LevelInfo)).With("session_id", "s1")

	log.Warn("gateway step failed", "pin", "1234", "number", "01711111111", "error", errors.New("boom"))

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "WARNING", event["severity"])
	assert.Equal(t, "gateway step failed", event["message"])

	data := event["data"].(map[string]any)
	assert.Equal(t, redacted, data["pin"])
	assert.Equal(t, redacted, data["number"])
	assert.Equal(t, "boom", data["error"])
	assert.Equal(t, "s1", data["session_id"])
}

func TestCloudRunHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCloudRunHandlerTo(&buf, slog.LevelWarn))

	log.Info("hidden")
	assert.Zero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	log := slog.New(NewTestHandler(slog.LevelInfo))
	ctx := ToContext(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))
}

func TestDetachKeepsLoggerAfterCancel(t *testing.T) {
	log := slog.New(NewTestHandler(slog.LevelInfo))
	ctx, cancel := context.WithCancel(ToContext(context.Background(), log))
	cancel()

	detached := Detach(ctx)
	assert.NoError(t, detached.Err())
	assert.Same(t, log, FromContext(detached))
}
