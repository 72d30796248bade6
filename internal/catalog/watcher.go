package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hammamikhairi/gitakids/internal/logger"
)

const minPoll = 5 * time.Millisecond

// ReloadFunc receives a freshly loaded index after the catalog file changed.
type ReloadFunc func(*Index)

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the file must stay quiet before it is reloaded.
// Zero reloads on the next poll.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// Watcher reloads a catalog file whenever it changes on disk. Each reload
// builds a new Index; an edit that fails to parse or validate is logged and
// the previous index stays in use.
type Watcher struct {
	path     string
	log      *logger.Logger
	onReload ReloadFunc
	debounce time.Duration
	fs       *fsnotify.Watcher

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewWatcher creates a watcher for the catalog at path.
func NewWatcher(path string, log *logger.Logger, onReload ReloadFunc, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving catalog path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	w := &Watcher{
		path:     abs,
		log:      log,
		onReload: onReload,
		debounce: 150 * time.Millisecond,
		fs:       fw,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching. Non-blocking. The directory is watched rather than
// the file so editors that replace the file on save are still seen.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		w.log.Warn("catalog watcher already running")
		return nil
	}
	if err := w.fs.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}

	childCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	w.running = true

	go w.loop(childCtx)

	w.log.Info("watching catalog %s", w.path)
	return nil
}

// Stop shuts the watcher down and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.cancel()
	w.running = false
	done := w.done
	w.mu.Unlock()

	<-done
	w.fs.Close()
}

// Close stops the watcher if it is running and releases the underlying file
// watch. It is safe to call on a watcher that was never started.
func (w *Watcher) Close() error {
	w.Stop()
	return w.fs.Close()
}

// pollInterval is how often pending changes are checked against the
// debounce window.
func (w *Watcher) pollInterval() time.Duration {
	return max(w.debounce/2, minPoll)
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(w.pollInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if pending.IsZero() || time.Since(pending) < w.debounce {
				continue
			}
			pending = time.Time{}
			w.reload()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("catalog watcher: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	idx, err := LoadFile(w.path, w.log)
	if err != nil {
		w.log.Error("catalog reload rejected, keeping previous catalog: %v", err)
		return
	}
	w.log.Info("catalog reloaded (%d chapters)", idx.Len())
	if w.onReload != nil {
		w.onReload(idx)
	}
}
