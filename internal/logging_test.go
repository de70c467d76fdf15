package internal

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/theoremus-urban-solutions/gtfs-csv/config"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(config.LoggingConfig{Level: "warn", Format: "json"}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("malformed line", zap.String("file", "stops.txt"), zap.Int("line", 12))
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "malformed line", entry["msg"])
	assert.Equal(t, "stops.txt", entry["file"])
	assert.EqualValues(t, 12, entry["line"])
	assert.NotContains(t, buf.String(), "dropped")
}

func TestNewLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(config.LoggingConfig{}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("scan finished")
	assert.Contains(t, buf.String(), "INFO")
	assert.Contains(t, buf.String(), "scan finished")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gtfscsv.log")
	logger, err := NewLogger(config.LoggingConfig{File: path, MaxSizeMB: 1})
	require.NoError(t, err)
	logger.Info("to file")
	assert.FileExists(t, path)
}
