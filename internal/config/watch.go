package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Reload is the outcome of re-reading the config file after it changed.
type Reload struct {
	Config *Config
	Err    error
}

// Watcher reloads the config file whenever it is written.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	changes chan Reload
	stopCh  chan struct{}
}

// Watch starts watching path. The parent directory is watched so the file
// may be created, replaced or renamed into place by editors.
func Watch(path string) (*Watcher, error) {
	if path == "" {
		path = DefaultPath()
	}
	path = filepath.Clean(path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}

	cw := &Watcher{
		path:    path,
		watcher: w,
		changes: make(chan Reload, 1),
		stopCh:  make(chan struct{}),
	}
	go cw.watchLoop()
	return cw, nil
}

// Changes delivers reloads; only the newest pending reload is kept.
func (w *Watcher) Changes() <-chan Reload { return w.changes }

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.stopCh:
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
			cfg, err := Load(w.path)
			w.publish(Reload{Config: cfg, Err: err})

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) publish(r Reload) {
	for {
		select {
		case w.changes <- r:
			return
		default:
		}
		// Drop the stale reload nobody picked up yet.
		select {
		case <-w.changes:
		default:
		}
	}
}
