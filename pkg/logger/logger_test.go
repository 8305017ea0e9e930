package logger

import (
	"path/filepath"
	"testing"

	"github.com/stratocost/stratocost/internal/common/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Defaults(t *testing.T) {
	cfg := &config.LoggerConfig{}
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
	assert.Equal(t, 100, cfg.MaxSize)
}

func TestNewLogger_FileOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.LoggerConfig{
		Output:   "file",
		FilePath: filepath.Join(dir, "logs", "tcoserver.log"),
		Format:   "console",
		Level:    "debug",
	}
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	logger.Info("hello")
	require.NoError(t, logger.Sync())
}

func TestGetLogLevel(t *testing.T) {
	assert.Equal(t, "debug", getLogLevel("debug").String())
	assert.Equal(t, "warn", getLogLevel("warn").String())
	assert.Equal(t, "info", getLogLevel("unknown").String())
}
