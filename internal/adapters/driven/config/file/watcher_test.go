package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_HandleEvent(t *testing.T) {
	store := newTestStore(t)
	w := NewWatcher(store, nil)
	other := filepath.Join(filepath.Dir(store.Path()), "debug.log")

	tests := []struct {
		name     string
		event    fsnotify.Event
		expected bool
	}{
		{"write config", fsnotify.Event{Name: store.Path(), Op: fsnotify.Write}, true},
		{"create config", fsnotify.Event{Name: store.Path(), Op: fsnotify.Create}, true},
		{"rename config", fsnotify.Event{Name: store.Path(), Op: fsnotify.Rename}, true},
		{"remove config", fsnotify.Event{Name: store.Path(), Op: fsnotify.Remove}, true},
		{"write and chmod", fsnotify.Event{Name: store.Path(), Op: fsnotify.Write | fsnotify.Chmod}, true},
		{"chmod only", fsnotify.Event{Name: store.Path(), Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: other, Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, w.handleEvent(tt.event))
		})
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("map.zoom", 6))

	reloaded := make(chan error, 4)
	w := NewWatcher(store, func(err error) { reloaded <- err })
	w.debounce = 10 * time.Millisecond

	require.NoError(t, w.Start(context.Background()))
	defer w.Close()

	require.NoError(t, os.WriteFile(store.Path(), []byte("[map]\nzoom = 11\n"), 0600))

	select {
	case err := <-reloaded:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	assert.Equal(t, 11, store.GetInt("map.zoom"))
}

func TestWatcher_ReportsInvalidFile(t *testing.T) {
	store := newTestStore(t)

	reloaded := make(chan error, 4)
	w := NewWatcher(store, func(err error) { reloaded <- err })
	w.debounce = 10 * time.Millisecond
	require.NoError(t, w.Start(context.Background()))
	defer w.Close()

	require.NoError(t, os.WriteFile(store.Path(), []byte("broken ]["), 0600))

	select {
	case err := <-reloaded:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcher_StartTwice(t *testing.T) {
	w := NewWatcher(newTestStore(t), nil)
	require.NoError(t, w.Start(context.Background()))
	defer w.Close()

	assert.Error(t, w.Start(context.Background()))
}

func TestWatcher_CloseWithoutStart(t *testing.T) {
	w := NewWatcher(newTestStore(t), nil)

	assert.NoError(t, w.Close())
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	w := NewWatcher(newTestStore(t), nil)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))

	cancel()

	select {
	case <-w.done:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	_ = w.Close()
}
