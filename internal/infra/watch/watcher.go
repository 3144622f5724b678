// Package watch notifies when another process changes the data directory.
package watch

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/runoshun/present-tense/internal/domain"
)

const (
	logCategory     = "watch"
	defaultDebounce = 200 * time.Millisecond
	tickInterval    = 50 * time.Millisecond
)

// Change reports that the blob for Key was written or removed.
// Key is empty when the backend cannot tell which blob changed.
type Change struct {
	Key string
}

// MatchFunc maps a changed path to a blob key. ok=false ignores the path.
type MatchFunc func(path string) (key string, ok bool)

// Watcher watches one directory and emits debounced Changes.
// Fields are ordered to minimize memory padding.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   domain.Logger
	match    MatchFunc
	pending  map[string]time.Time
	changes  chan Change
	stopCh   chan struct{}
	doneCh   chan struct{}
	dir      string
	debounce time.Duration
	mu       sync.Mutex
	running  bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long a path must stay quiet before its Change is emitted.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// New creates a Watcher for dir. It does not start watching until Start.
func New(dir string, match MatchFunc, logger domain.Logger, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	w := &Watcher{
		watcher:  fw,
		logger:   logger,
		match:    match,
		pending:  make(map[string]time.Time),
		changes:  make(chan Change, 16),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		dir:      dir,
		debounce: defaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Changes returns the channel Changes are delivered on.
// It is closed once the watcher stops.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start begins watching. It is non-blocking and idempotent.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	if err := os.MkdirAll(w.dir, 0o750); err != nil {
		return fmt.Errorf("create watch directory: %w", err)
	}
	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.running = true
	w.logger.Debug(logCategory, "watching "+w.dir)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
// Stop is safe to call on a watcher that never started.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		w.logger.Warn(logCategory, "close watcher: "+err.Error())
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer close(w.changes)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error(logCategory, "watcher error: "+err.Error())
		case now := <-ticker.C:
			if !w.flush(ctx, now) {
				return
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	key, ok := w.match(event.Name)
	if !ok {
		return
	}
	w.pending[key] = time.Now()
}

// flush emits Changes whose paths have been quiet for the debounce period.
// It returns false when the watcher is stopping.
func (w *Watcher) flush(ctx context.Context, now time.Time) bool {
	for key, last := range w.pending {
		if now.Sub(last) < w.debounce {
			continue
		}
		delete(w.pending, key)
		select {
		case w.changes <- Change{Key: key}:
		case <-ctx.Done():
			return false
		case <-w.stopCh:
			return false
		}
	}
	return true
}

// AnyFile matches every path and reports an unknown key.
func AnyFile(string) (string, bool) {
	return "", true
}
