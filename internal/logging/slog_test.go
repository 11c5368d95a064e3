package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.input), "level %q", tt.input)
	}
}

func TestSlogManager_SetupWritesToFile(t *testing.T) {
	var file bytes.Buffer
	m := NewSlogManager()
	m.Setup(&file, "info", nil)

	m.Logger().Info("processed parking line", "line", 3)

	assert.Contains(t, file.String(), "processed parking line")
	assert.Contains(t, file.String(), "line=3")
}

func TestSlogManager_LevelFiltersFileOutput(t *testing.T) {
	var file bytes.Buffer
	m := NewSlogManager()
	m.Setup(&file, "warn", nil)

	m.Logger().Info("quiet")
	m.Logger().Warn("loud")

	assert.NotContains(t, file.String(), "quiet")
	assert.Contains(t, file.String(), "loud")
}

func TestSlogManager_LoggerBeforeSetup(t *testing.T) {
	m := NewSlogManager()
	assert.NotNil(t, m.Logger())
}

func TestSlogManager_FlushWithProvider(t *testing.T) {
	var file bytes.Buffer
	m := NewSlogManager()

	provider := sdklog.NewLoggerProvider() // no exporter, just validates non-nil path
	m.Setup(&file, "info", provider)

	m.Logger().Info("bridged entry")
	require.NoError(t, m.Flush(context.Background()))
}

func TestSlogManager_FlushWithoutProvider(t *testing.T) {
	m := NewSlogManager()
	require.NoError(t, m.Flush(context.Background()))
}
