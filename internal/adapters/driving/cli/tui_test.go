package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/geofind/internal/logger"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
}

func TestTUICmd_Short(t *testing.T) {
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
}

func TestTUICmd_LongDescribesControls(t *testing.T) {
	assert.Contains(t, tuiCmd.Long, "Ctrl+T")
	assert.Contains(t, tuiCmd.Long, "Tab")
	assert.Contains(t, tuiCmd.Long, "Zoom")
}

func TestTUICmd_RequiresTerminal(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	prev := isTerminal
	isTerminal = func() bool { return false }
	defer func() { isTerminal = prev }()

	_, err := execute(t, "tui")

	assert.ErrorIs(t, err, ErrNotTerminal)
}

func TestTUICmd_RequiresServices(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	appServices.NewViewSync = nil

	_, err := execute(t, "tui")

	assert.ErrorIs(t, err, ErrServicesNotConfigured)
}

func TestRedirectLogs_WritesDebugLog(t *testing.T) {
	dir := t.TempDir()
	previous := logger.Output()
	prevVerbose := logger.IsVerbose()
	logger.SetVerbose(true)
	defer logger.SetVerbose(prevVerbose)

	restore := redirectLogs(dir)
	logger.Info("hello from the tui")
	restore()

	assert.Equal(t, previous, logger.Output())
	data, err := os.ReadFile(filepath.Join(dir, DebugLogFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the tui")
}

func TestRedirectLogs_NoDirDiscards(t *testing.T) {
	previous := logger.Output()

	restore := redirectLogs("")
	assert.NotEqual(t, previous, logger.Output())
	restore()

	assert.Equal(t, previous, logger.Output())
}
