package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("info drops debug and time", func(t *testing.T) {
		var buf bytes.Buffer
		log := newLogger(&buf, false, "")
		log.Debug("hidden")
		log.Info("shown", "listing", "7")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "listing=7")
		assert.NotContains(t, out, "time=")
	})

	t.Run("debug flag wins over env", func(t *testing.T) {
		var buf bytes.Buffer
		log := newLogger(&buf, true, "error")
		log.Debug("visible")
		assert.Contains(t, buf.String(), "visible")
		assert.Contains(t, buf.String(), "source=")
	})
}

func TestShortPath(t *testing.T) {
	assert.Equal(t, "internal/usecase/sync_listing.go", shortPath("/home/dev/listingctl/internal/usecase/sync_listing.go"))
	assert.Equal(t, "pkg/file.go", shortPath("/go/pkg/mod/x/pkg/file.go"))
}
