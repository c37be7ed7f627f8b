package runstore

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeCallback is called with the ids of runs whose files changed
type ChangeCallback func(runIDs []string)

// Watcher monitors the runs directory for run files created or modified
// outside the current process, so the UI can refresh its run list.
type Watcher struct {
	watcher  *fsnotify.Watcher
	callback ChangeCallback
	debounce time.Duration

	// Debounce state
	pending map[string]struct{}
	timer   *time.Timer
	mu      sync.Mutex

	done chan struct{}
}

// NewWatcher creates a watcher over the store's directory. The callback
// fires after a short debounce window so rapid write bursts coalesce.
func NewWatcher(store *Store, callback ChangeCallback) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(store.Dir()); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		callback: callback,
		debounce: 500 * time.Millisecond,
		pending:  make(map[string]struct{}),
		done:     make(chan struct{}),
	}

	go w.loop()
	return w, nil
}

// Close stops the watcher
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Base(event.Name)
			if !strings.HasSuffix(name, ".json") {
				continue
			}
			w.record(strings.TrimSuffix(name, ".json"))
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) record(runID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[runID] = struct{}{}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	ids := make([]string, 0, len(w.pending))
	for id := range w.pending {
		ids = append(ids, id)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if len(ids) > 0 {
		w.callback(ids)
	}
}
