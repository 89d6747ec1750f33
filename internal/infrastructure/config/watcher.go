package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the configuration when the config file changes on
// disk, so the TUI can pick up style and poll-interval edits without a
// restart. Editors often replace the file (write to temp + rename), so
// the watch is on the directory, filtered to the config file name.
type Watcher struct {
	loader  *Loader
	watcher *fsnotify.Watcher
	changes chan *Config
	done    chan struct{}
}

// NewWatcher starts watching the loader's config file
func NewWatcher(loader *Loader) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := fsw.Add(filepath.Dir(loader.GetConfigPath())); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	w := &Watcher{
		loader:  loader,
		watcher: fsw,
		changes: make(chan *Config, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Changes delivers the reloaded configuration after each file change.
// Unparsable intermediate states are skipped.
func (w *Watcher) Changes() <-chan *Config {
	return w.changes
}

// Close stops the watcher
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) run() {
	target := filepath.Base(w.loader.GetConfigPath())
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			cfg, err := w.loader.Load()
			if err != nil {
				continue
			}
			// Keep only the latest snapshot if nobody is reading.
			select {
			case w.changes <- cfg:
			default:
				select {
				case <-w.changes:
				default:
				}
				w.changes <- cfg
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
