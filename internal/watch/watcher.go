// Package watch provides directory monitoring for continuous ingestion.
// New or rewritten image files are read and handed to the session after a
// debounce delay, so a burst of file writes turns into one ingest batch.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/animforge/animforge/internal/ports"
	"github.com/animforge/animforge/pkg/sprite"
)

// imageExts are the filename extensions considered ingestable.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// Config holds configuration options for the directory watcher.
type Config struct {
	// Dir is the directory to monitor.
	Dir string

	// DebounceDelay is how long to wait after a file event before
	// ingesting the accumulated batch.
	// Default: 200 milliseconds
	DebounceDelay time.Duration
}

// Watcher monitors a directory and ingests image files into a session.
type Watcher struct {
	session *sprite.Session
	logger  ports.Logger

	dir      string
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]struct{}
	seen    map[string]struct{}
	timer   *time.Timer
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a watcher feeding the given session.
func New(session *sprite.Session, cfg Config, logger ports.Logger) *Watcher {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 200 * time.Millisecond
	}
	return &Watcher{
		session:  session,
		logger:   logger,
		dir:      cfg.Dir,
		debounce: cfg.DebounceDelay,
		pending:  make(map[string]struct{}),
		seen:     make(map[string]struct{}),
	}
}

// Start begins watching in the background. Files already present in the
// directory are ingested as the initial batch.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(w.dir); err != nil {
		watcher.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	if err := w.ingestExisting(watchCtx); err != nil {
		w.logger.Warn("initial ingest failed", ports.Err(err))
	}

	w.wg.Add(1)
	go w.watchLoop(watchCtx, watcher)
	return nil
}

// Stop shuts the watcher down and waits for the loop and any in-flight
// debounce flush to finish. No ingest runs after Stop returns.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}

	w.mu.Lock()
	if w.timer != nil {
		if w.timer.Stop() {
			w.wg.Done()
		}
		w.timer = nil
	}
	w.mu.Unlock()

	w.wg.Wait()
}

// watchLoop consumes file events until the context is canceled.
func (w *Watcher) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer w.wg.Done()
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !imageExts[strings.ToLower(filepath.Ext(event.Name))] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.enqueue(ctx, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", ports.Err(err))
		}
	}
}

// enqueue records a changed path and (re)arms the debounce timer.
// Each path is ingested at most once; later rewrites of the same file
// are ignored rather than duplicated in the registry.
func (w *Watcher) enqueue(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.seen[path]; ok {
		return
	}
	w.pending[path] = struct{}{}
	if w.timer != nil && w.timer.Stop() {
		w.wg.Done()
	}
	// The flush is tracked in the WaitGroup so Stop waits for a timer
	// that has already fired.
	w.wg.Add(1)
	w.timer = time.AfterFunc(w.debounce, func() {
		defer w.wg.Done()
		w.flush(ctx)
	})
}

// flush ingests the accumulated batch.
func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
		w.seen[p] = struct{}{}
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if len(paths) == 0 || ctx.Err() != nil {
		return
	}
	if err := w.ingestPaths(ctx, paths); err != nil {
		w.logger.Error("ingest watched files", ports.Err(err))
	}
}

// ingestExisting ingests image files already present in the directory.
func (w *Watcher) ingestExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return err
	}

	var paths []string
	w.mu.Lock()
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		path := filepath.Join(w.dir, e.Name())
		paths = append(paths, path)
		w.seen[path] = struct{}{}
	}
	w.mu.Unlock()
	return w.ingestPaths(ctx, paths)
}

// ingestPaths reads the files and hands them to the session as one batch.
// Unreadable files are skipped with a warning rather than failing the
// whole batch.
func (w *Watcher) ingestPaths(ctx context.Context, paths []string) error {
	files := make([]sprite.File, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			w.logger.Warn("read watched file", ports.String("path", p), ports.Err(err))
			continue
		}
		files = append(files, sprite.File{Name: filepath.Base(p), Content: content})
	}

	if err := w.session.Ingest(ctx, files); err != nil {
		return err
	}

	if len(files) > 0 {
		w.logger.Info("ingested watched files",
			ports.Int("batch", len(files)),
			ports.Int("total", w.session.Len()),
		)
	}
	return nil
}
