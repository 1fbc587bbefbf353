// Package watch reloads a sidebar document when its file changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mchmarny/docnav/pkg/sidebar"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// DocumentChecker validates a raw sidebar document before it is decoded.
type DocumentChecker = sidebar.DocumentChecker

// Watcher swaps the sidebar held by a store whenever the watched file changes.
type Watcher struct {
	path     string
	store    *sidebar.Store
	debounce time.Duration
	checker  DocumentChecker
	onReload func(*sidebar.Sidebar)
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithChecker validates every new document with c before decoding it.
func WithChecker(c DocumentChecker) Option {
	return func(w *Watcher) { w.checker = c }
}

// WithOnReload registers a callback invoked with each sidebar that was swapped in.
func WithOnReload(fn func(*sidebar.Sidebar)) Option {
	return func(w *Watcher) { w.onReload = fn }
}

// New creates a watcher for the sidebar document at path.
func New(path string, store *sidebar.Store, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	w := &Watcher{
		path:     abs,
		store:    store,
		debounce: DefaultDebounce,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Reload reads the document, validates it and swaps it into the store.
// On error the store keeps its current sidebar.
func (w *Watcher) Reload() error {
	var opts []sidebar.LoadOption
	if w.checker != nil {
		opts = append(opts, sidebar.WithDocumentChecker(w.checker))
	}

	next, err := sidebar.Load(w.path, opts...)
	if err != nil {
		return err
	}

	if _, err := w.store.Swap(next); err != nil {
		return err
	}

	if w.onReload != nil {
		w.onReload(w.store.Current())
	}

	return nil
}

// Run watches the document's directory and blocks until ctx is done.
// The directory is watched rather than the file so editors that replace the
// file by rename are still noticed.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}

	slog.Info("watching sidebar", "path", w.path)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != w.path {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil

			if err := w.Reload(); err != nil {
				slog.Error("sidebar reload rejected", "path", w.path, "error", err)
				continue
			}

			slog.Info("sidebar reloaded", "path", w.path,
				"nodes", w.store.Current().Count().Total())

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		}
	}
}
