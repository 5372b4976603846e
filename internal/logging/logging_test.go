package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NoFile(t *testing.T) {
	logger, err := New("", "info")
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Info("discarded")
}

func TestNew_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "records.log")

	logger, err := New(path, "INFO")
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("student added")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"student added"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "records.log"), "loud")
	assert.Error(t, err)
}
