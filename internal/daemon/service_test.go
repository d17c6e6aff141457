package daemon

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func TestService_ReloadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, testConfig)

	ws := newFakeSystem(win(1, "kitty"), win(2, "firefox"))
	m := startManager(t, ws, mustConfig(t, testConfig))
	waitVisible(t, m, 1)
	waitVisible(t, m, 2)

	level := new(slog.LevelVar)
	svc := NewService(ServiceConfig{Manager: m, ConfigPath: path, Level: level})

	writeConfig(t, path, testConfig+`
  - match: class
    pattern: kitty
    enabled: false
log_level: debug
`)
	res, err := svc.Reload()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Kept)
	assert.Equal(t, 1, res.Destroyed)
	assert.Equal(t, slog.LevelDebug, level.Level())
	waitGone(t, m, 1)

	st := svc.Status()
	assert.Equal(t, path, st.ConfigPath)
	assert.Equal(t, 2, st.Rules)
	assert.Equal(t, "debug", st.LogLevel)
}

func TestService_ReloadKeepsConfigOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, testConfig)

	ws := newFakeSystem(win(1, "kitty"))
	ws.active = 1
	m := startManager(t, ws, mustConfig(t, testConfig))
	waitVisible(t, m, 1)

	svc := NewService(ServiceConfig{Manager: m, ConfigPath: path})
	writeConfig(t, path, "global:\n  border_width: -3\n")

	_, err := svc.Reload()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "border_width")

	b, ok := m.Registry().Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "solid #ff0000", b.Snapshot().Paint)
	assert.Len(t, m.Config().Rules, 1)
}

func TestService_ToggleAndQuitOnce(t *testing.T) {
	ws := newFakeSystem(win(1, "kitty"))
	m := startManager(t, ws, mustConfig(t, testConfig))
	waitVisible(t, m, 1)

	quits := 0
	svc := NewService(ServiceConfig{Manager: m, ConfigPath: "/tmp/none.yaml", Quit: func() { quits++ }})

	enabled, err := svc.Toggle()
	require.NoError(t, err)
	assert.False(t, enabled)
	waitGone(t, m, 1)

	svc.ToggleQuietly()
	waitVisible(t, m, 1)

	svc.Quit()
	svc.Quit()
	assert.Equal(t, 1, quits)
	assert.Equal(t, "/tmp/none.yaml", svc.ConfigPath())
}
