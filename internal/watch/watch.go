// Package watch re-runs work when input files change on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must be quiet before it is reported.
// Exporters often write a model in several chunks.
const DefaultDebounce = 300 * time.Millisecond

// Watcher reports writes to a set of files, or to matching files inside a
// set of directories.
type Watcher struct {
	Debounce time.Duration

	// Match filters files found in watched directories. Nil accepts all.
	Match func(path string) bool

	fs    *fsnotify.Watcher
	files map[string]bool
	dirs  map[string]bool
}

// New starts watching paths. Files are watched through their parent
// directory so that editors replacing a file by rename are seen.
func New(paths []string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	w := &Watcher{
		Debounce: DefaultDebounce,
		fs:       fsw,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
	}

	added := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch: %s: %w", p, err)
		}
		dir := filepath.Dir(abs)
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			dir = abs
			w.dirs[abs] = true
		} else {
			w.files[abs] = true
		}
		if added[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch: add %s: %w", dir, err)
		}
		added[dir] = true
	}
	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run calls fn with the absolute path of every changed file once it has
// settled, until ctx is cancelled. fn runs on the calling goroutine, one
// call at a time.
func (w *Watcher) Run(ctx context.Context, fn func(path string)) error {
	fire := make(chan string)
	pending := make(map[string]*time.Timer)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			path := filepath.Clean(ev.Name)
			if !w.wanted(path) {
				continue
			}
			if t, ok := pending[path]; ok {
				t.Reset(w.Debounce)
				continue
			}
			pending[path] = time.AfterFunc(w.Debounce, func() {
				select {
				case fire <- path:
				case <-ctx.Done():
				}
			})

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch: error", "err", err)

		case path := <-fire:
			delete(pending, path)
			slog.Debug("watch: changed", "path", path)
			fn(path)
		}
	}
}

func (w *Watcher) wanted(path string) bool {
	if w.files[path] {
		return true
	}
	if !w.dirs[filepath.Dir(path)] {
		return false
	}
	return w.Match == nil || w.Match(path)
}

// Watch watches paths with default settings until ctx is cancelled.
func Watch(ctx context.Context, paths []string, fn func(path string)) error {
	w, err := New(paths)
	if err != nil {
		return err
	}
	defer w.Close()
	return w.Run(ctx, fn)
}
