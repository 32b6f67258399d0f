package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LksLvnt/studymate/internal/config"
)

func TestInitUsesConfiguredDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "app-logs")
	cfg := config.LoggingConfig{
		Directory:  dir,
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	}

	log, err := Init(cfg)
	require.NoError(t, err)
	defer log.Sync()

	log.Info("logger initialized")
	_ = log.Sync()

	// The file cores create the directory on init and write dated per-level
	// files into it.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestConsoleLoggerNeedsNoConfig(t *testing.T) {
	log := Console()
	require.NotNil(t, log)
	log.Info("bootstrap message")
}
