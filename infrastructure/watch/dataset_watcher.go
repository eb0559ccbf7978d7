// Package watch reloads the startup dataset when its file changes on disk.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounce absorbs the bursts of write events editors and atomic saves emit.
const debounce = 500 * time.Millisecond

// DatasetWatcher watches one CSV file and invokes the reload callback after
// each settled change. A new dataset fully replaces the prior graph, so the
// callback is simply a full re-ingestion.
type DatasetWatcher struct {
	path     string
	reload   func()
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewDatasetWatcher starts watching the dataset at path. Stop releases the
// underlying watcher.
func NewDatasetWatcher(path string, reload func(), logger *zap.Logger) (*DatasetWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: editors replace files by rename, which would
	// silently detach a watch on the file itself.
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	w := &DatasetWatcher{
		path:    path,
		reload:  reload,
		logger:  logger,
		watcher: fsWatcher,
		stopCh:  make(chan struct{}),
	}
	go w.watchLoop()

	logger.Info("dataset hot reload enabled", zap.String("path", path))
	return w, nil
}

// Stop ends the watch loop. Calling Stop more than once is harmless.
func (w *DatasetWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.watcher.Close()
	})
}

func (w *DatasetWatcher) watchLoop() {
	var timer *time.Timer
	target := filepath.Clean(w.path)

	for {
		select {
		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				w.logger.Info("dataset changed, rebuilding graph", zap.String("path", w.path))
				w.reload()
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("dataset watcher error", zap.Error(err))
		}
	}
}
