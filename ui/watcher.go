package ui

import (
	"os"
	"sync"
	"time"

	"github.com/Homlet/argand/diagram"
)

// Watcher polls a diagram file and reloads it when it changes on disk.
type Watcher struct {
	path         string
	reload       func(*diagram.Diagram)
	stopCh       chan struct{}
	stopOnce     sync.Once
	pollInterval time.Duration

	mu      sync.Mutex
	modTime time.Time
}

func NewWatcher(path string, reload func(*diagram.Diagram)) *Watcher {
	w := &Watcher{
		path:         path,
		reload:       reload,
		stopCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
	}
	w.Sync()
	return w
}

func (w *Watcher) Start() {
	go w.run()
}

func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// Sync records the file's current modification time, so a write made by
// the server itself is not reloaded.
func (w *Watcher) Sync() {
	info, err := os.Stat(w.path)
	if err != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.modTime = info.ModTime()
}

func (w *Watcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Poll()
		}
	}
}

// Poll reloads the file if it was modified since the last poll or Sync,
// and reports whether it did.
func (w *Watcher) Poll() bool {
	info, err := os.Stat(w.path)
	if err != nil {
		return false
	}

	w.mu.Lock()
	changed := info.ModTime().After(w.modTime)
	if changed {
		w.modTime = info.ModTime()
	}
	w.mu.Unlock()
	if !changed {
		return false
	}

	d, err := diagram.Load(w.path)
	if d == nil {
		log.Errorf("reload %s: %s", w.path, err)
		return false
	}
	for _, e := range unjoin(err) {
		log.Warningf("reload %s: %s", w.path, e)
	}
	w.reload(d)
	return true
}

func unjoin(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
