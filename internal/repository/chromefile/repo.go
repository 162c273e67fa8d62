package chromefile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/kailas-cloud/marksearch/internal/domain"
	dombm "github.com/kailas-cloud/marksearch/internal/domain/bookmark"
)

// DefaultDebounce coalesces the burst of events Chrome produces when it rewrites the file.
const DefaultDebounce = 500 * time.Millisecond

// Repo serves bookmarks from a Chrome Bookmarks file. It is read-only.
type Repo struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger

	mu        sync.RWMutex
	bookmarks []dombm.Bookmark
	byID      map[string]int
	loaded    bool
}

// New creates a file-backed repository. Nothing is read until Load or the first List.
func New(path string, debounce time.Duration, logger *zap.Logger) *Repo {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{path: filepath.Clean(path), debounce: debounce, logger: logger}
}

// Load reads and parses the file, then swaps the snapshot.
// On failure the previous snapshot stays in place.
func (r *Repo) Load(_ context.Context) error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", domain.ErrSourceUnavailable, r.path, err)
	}
	bookmarks, err := Parse(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrSourceUnavailable, r.path, err)
	}

	byID := make(map[string]int, len(bookmarks))
	for i, b := range bookmarks {
		if _, dup := byID[b.ID()]; !dup {
			byID[b.ID()] = i
		}
	}

	r.mu.Lock()
	r.bookmarks = bookmarks
	r.byID = byID
	r.loaded = true
	r.mu.Unlock()

	r.logger.Debug("bookmarks loaded", zap.String("path", r.path), zap.Int("count", len(bookmarks)))
	return nil
}

// List returns the current snapshot in file order.
func (r *Repo) List(ctx context.Context) ([]dombm.Bookmark, error) {
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]dombm.Bookmark, len(r.bookmarks))
	copy(out, r.bookmarks)
	return out, nil
}

// Get returns a bookmark by its Chrome node ID.
func (r *Repo) Get(ctx context.Context, id string) (dombm.Bookmark, error) {
	if err := r.ensureLoaded(ctx); err != nil {
		return dombm.Bookmark{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	if !ok {
		return dombm.Bookmark{}, domain.ErrBookmarkNotFound
	}
	return r.bookmarks[i], nil
}

// Save always fails: the file belongs to the browser.
func (r *Repo) Save(_ context.Context, _ dombm.Bookmark) (bool, error) {
	return false, domain.ErrReadOnlySource
}

// Delete always fails: the file belongs to the browser.
func (r *Repo) Delete(_ context.Context, _ string) error {
	return domain.ErrReadOnlySource
}

// Ping reports whether the file is readable.
func (r *Repo) Ping(_ context.Context) error {
	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}
	return f.Close()
}

// Watch reloads the snapshot whenever the file changes, until ctx is done.
// The parent directory is watched because Chrome replaces the file by rename.
func (r *Repo) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(filepath.Dir(r.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(r.path), err)
	}

	timer := time.NewTimer(r.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !r.isRelevant(event) {
				continue
			}
			timer.Reset(r.debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("bookmarks watcher error", zap.Error(err))
		case <-timer.C:
			if err := r.Load(ctx); err != nil {
				r.logger.Warn("bookmarks reload failed, keeping previous snapshot",
					zap.String("path", r.path), zap.Error(err))
				continue
			}
			r.logger.Info("bookmarks reloaded", zap.String("path", r.path))
		}
	}
}

func (r *Repo) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == r.path
}

func (r *Repo) ensureLoaded(ctx context.Context) error {
	r.mu.RLock()
	loaded := r.loaded
	r.mu.RUnlock()
	if loaded {
		return nil
	}
	return r.Load(ctx)
}
