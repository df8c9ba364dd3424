package sync

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/MikeBiancalana/rangepick/internal/config"
	"github.com/MikeBiancalana/rangepick/internal/logger"
	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 100 * time.Millisecond

// ConfigChangeEvent carries a freshly reloaded picker config. When Err is
// set the file could not be loaded and Config should be ignored.
type ConfigChangeEvent struct {
	Path   string
	Config config.PickerConfig
	Err    error
}

// Watcher watches the picker config file and reloads it on change
type Watcher struct {
	watcher       *fsnotify.Watcher
	path          string
	changes       chan ConfigChangeEvent
	done          chan struct{}
	mu            sync.Mutex
	debounceTimer *time.Timer
	stopOnce      sync.Once
}

// NewWatcher creates a watcher for the config file at path
func NewWatcher(path string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &Watcher{
		watcher: fsWatcher,
		path:    filepath.Clean(path),
		changes: make(chan ConfigChangeEvent, 10),
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching. The parent directory is watched so that editors
// which replace the file on save are still picked up.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	go w.watch()
	return nil
}

// Stop stops the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
		}
		w.mu.Unlock()
		w.watcher.Close()
	})
}

// Changes returns the channel for config reload notifications
func (w *Watcher) Changes() <-chan ConfigChangeEvent {
	return w.changes
}

// watch is the main event loop
func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			w.mu.Lock()
			if w.debounceTimer != nil {
				w.debounceTimer.Stop()
			}
			w.debounceTimer = time.AfterFunc(debounceDelay, w.reload)
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher error", "error", err)
		}
	}
}

// reload parses the config file and publishes it. A broken file is
// published as an error so listeners can keep their current config.
func (w *Watcher) reload() {
	event := ConfigChangeEvent{Path: w.path}
	cfg, err := config.LoadFile(w.path)
	if err != nil {
		logger.Warn("config reload failed", "path", w.path, "error", err)
		event.Err = err
	} else {
		logger.Debug("config reloaded", "path", w.path)
		event.Config = cfg
	}

	select {
	case <-w.done:
	case w.changes <- event:
	}
}
