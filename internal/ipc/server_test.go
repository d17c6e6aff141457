package ipc

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/winborder/internal/border"
)

type fakeController struct {
	mu        sync.Mutex
	enabled   bool
	reloadErr error
	reloads   int
	quit      chan struct{}
	snaps     []border.Snapshot
}

func newFakeController() *fakeController {
	return &fakeController{enabled: true, quit: make(chan struct{})}
}

func (f *fakeController) Reload() (ReloadData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reloadErr != nil {
		return ReloadData{}, f.reloadErr
	}
	f.reloads++
	return ReloadData{Kept: 2, Created: 1, Destroyed: 1}, nil
}

func (f *fakeController) Status() StatusData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return StatusData{Enabled: f.enabled, Borders: len(f.snaps), Rules: 3, LogLevel: "info"}
}

func (f *fakeController) Borders() []border.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snaps
}

func (f *fakeController) Toggle() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled = !f.enabled
	return f.enabled, nil
}

func (f *fakeController) ConfigPath() string { return "/home/user/.config/winborder/config.yaml" }
func (f *fakeController) Quit()              { close(f.quit) }

func startServer(t *testing.T, ctrl Controller) *Client {
	t.Helper()

	// Unix socket paths are length-limited, so keep the directory short.
	dir, err := os.MkdirTemp("", "wb")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	socket := filepath.Join(dir, "winborder.sock")
	srv := NewServerAt(socket, ctrl, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, srv.Start())
	t.Cleanup(srv.Stop)

	info, err := os.Stat(socket)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	return NewClientAt(socket)
}

func TestServer_Status(t *testing.T) {
	client := startServer(t, newFakeController())

	status, err := client.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Enabled)
	assert.True(t, status.DaemonRunning)
	assert.Equal(t, 3, status.Rules)
	assert.Equal(t, "info", status.LogLevel)
	assert.NoError(t, client.Ping())
}

func TestServer_ListBorders(t *testing.T) {
	ctrl := newFakeController()
	ctrl.snaps = []border.Snapshot{
		{ID: 0x1a00003, State: border.StateVisible, Active: true, Opacity: 1, Paint: "solid #ff0000"},
		{ID: 0x1c00007, State: border.StateHidden, Minimized: true},
	}
	client := startServer(t, ctrl)

	snaps, err := client.ListBorders()
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, border.WindowID(0x1a00003), snaps[0].ID)
	assert.Equal(t, border.StateVisible, snaps[0].State)
	assert.Equal(t, "solid #ff0000", snaps[0].Paint)
	assert.Equal(t, border.StateHidden, snaps[1].State)
	assert.True(t, snaps[1].Minimized)
}

func TestServer_ListBordersEmpty(t *testing.T) {
	client := startServer(t, newFakeController())

	snaps, err := client.ListBorders()
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestServer_Reload(t *testing.T) {
	ctrl := newFakeController()
	client := startServer(t, ctrl)

	res, err := client.Reload()
	require.NoError(t, err)
	assert.Equal(t, ReloadData{Kept: 2, Created: 1, Destroyed: 1}, *res)
	assert.Equal(t, 1, ctrl.reloads)
}

func TestServer_ReloadError(t *testing.T) {
	ctrl := newFakeController()
	ctrl.reloadErr = errors.New("global.border_width: must not be negative")
	client := startServer(t, ctrl)

	_, err := client.Reload()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daemon error")
	assert.Contains(t, err.Error(), "border_width")
}

func TestServer_ToggleAndConfigPath(t *testing.T) {
	client := startServer(t, newFakeController())

	enabled, err := client.Toggle()
	require.NoError(t, err)
	assert.False(t, enabled)

	enabled, err = client.Toggle()
	require.NoError(t, err)
	assert.True(t, enabled)

	path, err := client.ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.config/winborder/config.yaml", path)
}

func TestServer_QuitRespondsBeforeStopping(t *testing.T) {
	ctrl := newFakeController()
	client := startServer(t, ctrl)

	require.NoError(t, client.Quit())

	select {
	case <-ctrl.quit:
	case <-time.After(2 * time.Second):
		t.Fatal("Quit was not forwarded to the controller")
	}
}

func TestServer_UnknownCommand(t *testing.T) {
	client := startServer(t, newFakeController())

	_, err := client.sendRequest(&Request{Command: "SPIN"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown command: SPIN")
}

func TestClient_NoDaemon(t *testing.T) {
	client := NewClientAt(filepath.Join(t.TempDir(), "missing.sock"))

	err := client.Ping()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is the daemon running?")
}

func TestServer_StopRemovesSocket(t *testing.T) {
	dir, err := os.MkdirTemp("", "wb")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	socket := filepath.Join(dir, "winborder.sock")
	srv := NewServerAt(socket, newFakeController(), nil)
	require.NoError(t, srv.Start())

	srv.Stop()
	srv.Stop()

	_, err = os.Stat(socket)
	assert.True(t, os.IsNotExist(err))
}
