package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(newHandler(&buf, "json", slog.LevelInfo))

	l.Debug("hidden")
	l.Info("feed built", "mode", "feed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"mode":"feed"`)
}

func TestConsoleHandlerFormatsErrors(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(newHandler(&buf, "console", slog.LevelInfo))

	l.Error("save failed", "error", errors.New("disk full"))

	assert.Contains(t, buf.String(), "disk full")
}
