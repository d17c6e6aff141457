package config

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: info\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	w := NewWatcher([]string{path}, 100*time.Millisecond, nil)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func() { calls.Add(1) }) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	for i := range 5 {
		data := []byte("log_level: debug\n# " + string(rune('a'+i)) + "\n")
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "winborder")
	path := filepath.Join(dir, "config.yaml")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	w := NewWatcher([]string{path}, 50*time.Millisecond, nil)
	go func() { _ = w.Run(ctx, func() { calls.Add(1) }) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat(dir)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}
