package logging

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

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewStructuredLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, slog.LevelInfo)

	logger.Info("hello", slog.String("k", "v"))

	entry := decodeLogLine(t, &buf)
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "v", entry["k"])
}

func TestLogErrorIncludesErrorField(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, slog.LevelInfo)

	LogError(logger, "sync failed", errors.New("boom"), slog.String("table", "teams"))

	entry := decodeLogLine(t, &buf)
	assert.Equal(t, "sync failed", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "teams", entry["table"])
}

func TestLogErrorNilLoggerIsNoOp(t *testing.T) {
	assert.NotPanics(t, func() {
		LogError(nil, "ignored", errors.New("boom"))
	})
}

func TestLogHTTPRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, slog.LevelInfo)

	LogHTTPRequest(logger, "GET", "/api/v1/teams/recA1", 200, 12.5)

	entry := decodeLogLine(t, &buf)
	assert.Equal(t, "http_request", entry["msg"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/api/v1/teams/recA1", entry["path"])
	assert.EqualValues(t, 200, entry["status"])
}

func TestContextRoundTrip(t *testing.T) {
	logger := NewStructuredLogger(&bytes.Buffer{}, slog.LevelInfo)
	ctx := WithLogger(context.Background(), logger)

	assert.Same(t, logger, FromContext(ctx))
	assert.NotNil(t, FromContext(context.Background()))
}
