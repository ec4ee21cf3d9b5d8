package file

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/geofind/internal/logger"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reloads a ConfigStore when its file changes on disk.
//
// The config directory is watched rather than the file itself so that
// editors which save by rename-and-replace keep triggering reloads.
type Watcher struct {
	store    *ConfigStore
	onReload func(error)
	debounce time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewWatcher creates a watcher for store. onReload is called after every
// reload attempt with the Load error, if any. It runs on the watcher goroutine.
func NewWatcher(store *ConfigStore, onReload func(error)) *Watcher {
	return &Watcher{
		store:    store,
		onReload: onReload,
		debounce: DefaultDebounce,
	}
}

// Start begins watching. It returns once the watch is registered; events are
// handled until ctx is cancelled or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher != nil {
		return fmt.Errorf("watcher already started")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(w.store.Path())
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	w.watcher = fsw
	w.done = make(chan struct{})
	logger.Debug("Watching %s for config changes", w.store.Path())

	go w.run(ctx, fsw, w.done)
	return nil
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	fsw, done := w.watcher, w.done
	w.watcher = nil
	w.mu.Unlock()

	if fsw == nil {
		return nil
	}
	err := fsw.Close()
	<-done
	return err
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, done chan struct{}) {
	defer close(done)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			_ = fsw.Close()
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !w.handleEvent(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Config watcher error: %v", err)

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

// handleEvent reports whether event should trigger a reload.
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(w.store.Path()) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}

func (w *Watcher) reload() {
	err := w.store.Load()
	if err != nil {
		logger.Warn("Reload %s: %v", w.store.Path(), err)
	} else {
		logger.Info("Reloaded %s", w.store.Path())
	}
	if w.onReload != nil {
		w.onReload(err)
	}
}
