package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Watcher holds a hot-reloadable Config snapshot, swapped atomically
// whenever the underlying file changes on disk.
type Watcher struct {
	path    string
	current atomic.Pointer[Config]
	fw      *fsnotify.Watcher
}

// NewWatcher loads path once and arms an fsnotify watch on its
// containing directory — watching the directory rather than the file
// directly survives editors that replace a file via rename instead of
// writing in place.
func NewWatcher(path string) (*Watcher, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{path: path, fw: fw}
	w.current.Store(cfg)
	return w, nil
}

// Current returns the most recently loaded Config snapshot.
func (w *Watcher) Current() *Config {
	return w.current.Load()
}

// Run watches for changes until ctx is canceled, reloading and swapping
// the snapshot on every write or create event targeting the config file.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fw.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				slog.Error("config: reload failed", "path", w.path, "error", err)
				continue
			}
			w.current.Store(cfg)
			slog.Info("config: reloaded", "path", w.path)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			slog.Error("config: watch error", "error", err)
		}
	}
}
