package document

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// debounceWindow coalesces the burst of events an editor's save-and-rename
// produces into one reload.
const debounceWindow = 250 * time.Millisecond

// Watcher reloads the view when the opened document changes on disk.
// It watches the containing directory because most editors replace the
// file by rename rather than writing in place.
type Watcher struct {
	fsw    *fsnotify.Watcher
	logger *logrus.Logger
	done   chan struct{}
}

// Watch starts watching path and invokes onChange (debounced) after each
// write, create or rename touching it. onChange is called from the
// watcher's goroutine; the caller is responsible for hopping back onto the
// UI thread.
func Watch(logger *logrus.Logger, path string, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{fsw: fsw, logger: logger, done: make(chan struct{})}
	go w.loop(path, onChange)

	logger.WithField("path", path).Debug("Watching document for changes")
	return w, nil
}

func (w *Watcher) loop(path string, onChange func()) {
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.WithFields(logrus.Fields{
				"path": path,
				"op":   event.Op.String(),
			}).Debug("Document changed on disk")

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceWindow, onChange)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("File watcher error")
		}
	}
}

// Close stops the watcher. Safe to call once.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
