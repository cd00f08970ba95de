package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlog(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewSlog(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	require.NotNil(t, logger)
	require.NotNil(t, logger.logger)

	logger.Debug("walk started", "sets", 3)

	output := buf.String()
	assert.Contains(t, output, "walk started")
	assert.Contains(t, output, "sets=3")
	assert.Contains(t, output, "level=DEBUG")
}

func TestNewSlog_NilFallsBackToDefault(t *testing.T) {
	logger := NewSlog(nil)

	require.NotNil(t, logger.logger)
}

func TestNew_Formats(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := New(buf, "info", "text")

		logger.Info("enumeration finished", "emitted", 2)

		assert.Contains(t, buf.String(), "emitted=2")
	})

	t.Run("json", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := New(buf, "info", "JSON")

		logger.Warn("budget low", "remaining", 5)

		assert.Contains(t, buf.String(), `"remaining":5`)
		assert.Contains(t, buf.String(), `"level":"WARN"`)
	})
}

func TestNew_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(buf, "warn", "text")

	logger.Debug("debug message")
	logger.Info("info message")
	assert.Empty(t, buf.String())

	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLevel(" error "))
	require.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	r.Info("worker done", "worker", "worker-1", "emitted", 4)
	r.Warn("dangling", "key")

	entries := r.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, "worker=worker-1 emitted=4", entries[0].Fields)
	require.Equal(t, "key=<missing>", entries[1].Fields)
	require.True(t, r.Has("WARN", "dangl"))
	require.False(t, r.Has("ERROR", "dangl"))
}

func TestNopLogger(t *testing.T) {
	n := NewNop()

	require.NotPanics(t, func() {
		n.Debug("x")
		n.Info("x", "k", "v")
		n.Warn("x")
		n.Error("x")
		n.Fatal("x")
	})
}
