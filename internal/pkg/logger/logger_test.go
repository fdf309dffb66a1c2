package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	log := New(&buf, Config{App: "checkin-bot", Version: "test", Env: "development", Level: "warn"})

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown", "external_id", "U1")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "U1")
	assert.Contains(t, buf.String(), "checkin-bot")
}
