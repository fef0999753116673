package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "cisolate", configBaseName)
	assert.Equal(t, "cisolate.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "out-root", outRootFlagName)
	assert.Equal(t, "verbose", verboseFlagName)
	assert.Equal(t, "output.root", outRootConfigKey)
	assert.Equal(t, "log.verbose", verboseConfigKey)
	assert.Equal(t, "CISOLATE", envPrefix)
	assert.Equal(t, ".cisolate.log", defaultLogFilename)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  slog.Level
	}{
		{"empty uses default", "", slog.LevelWarn},
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"warning alias", "warning", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"mixed case", "DeBuG", slog.LevelDebug},
		{"numeric", "-4", slog.LevelDebug},
		{"garbage uses default", "loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelWarn))
		})
	}
}

func TestConfigureLogger_WritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	configureLogger(logPath, true)
	require.NotNil(t, globalLogger)

	slog.Debug("logger probe")

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "logger probe")
}
