// Package watch reruns cache freshness checks when watched source files change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"linecache/internal/trace"
)

// DefaultDebounce is used when Config.Debounce is zero.
const DefaultDebounce = 200 * time.Millisecond

// Checker is the part of the cache the watcher drives.
type Checker interface {
	CheckCache(name string) ([]string, bool)
}

// Config tunes a Watcher.
type Config struct {
	Debounce time.Duration
	Tracer   trace.Tracer
	// OnReload receives the keys reloaded by one debounced check.
	OnReload func(keys []string)
}

// Watcher watches the directories of added files and calls CheckCache for
// the files that changed once events settle.
type Watcher struct {
	fsw     *fsnotify.Watcher
	checker Checker
	cfg     Config
	tracer  trace.Tracer

	mu    sync.Mutex
	files map[string]struct{}
	dirs  map[string]struct{}
}

// New creates a watcher. Call Close when done.
func New(checker Checker, cfg Config) (*Watcher, error) {
	if checker == nil {
		return nil, errors.New("watch: nil checker")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	return &Watcher{
		fsw:     fsw,
		checker: checker,
		cfg:     cfg,
		tracer:  tracer,
		files:   make(map[string]struct{}),
		dirs:    make(map[string]struct{}),
	}, nil
}

// Add starts watching path. Its directory is watched so that editors which
// replace files by rename are noticed too.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.dirs[dir]; !ok {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.dirs[dir] = struct{}{}
	}
	w.files[abs] = struct{}{}
	return nil
}

// Files returns the watched files in sorted order.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func (w *Watcher) tracked(name string) (string, bool) {
	clean := filepath.Clean(name)
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[clean]
	return clean, ok
}

// Run processes events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			name, ok := w.tracked(ev.Name)
			if !ok {
				continue
			}
			trace.Point(w.tracer, trace.ScopeFile, "watch.event", name, map[string]string{"op": ev.Op.String()})
			pending[name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.cfg.Debounce)
			} else {
				timer.Reset(w.cfg.Debounce)
			}
			fire = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			trace.Fail(w.tracer, trace.ScopeCache, "watch", err)
		case <-fire:
			fire = nil
			w.flush(pending)
			clear(pending)
		}
	}
}

func (w *Watcher) flush(pending map[string]struct{}) {
	names := make([]string, 0, len(pending))
	for n := range pending {
		names = append(names, n)
	}
	sort.Strings(names)

	var reloaded []string
	for _, n := range names {
		keys, ok := w.checker.CheckCache(n)
		if !ok {
			continue
		}
		reloaded = append(reloaded, keys...)
	}
	if len(reloaded) == 0 {
		return
	}
	trace.Point(w.tracer, trace.ScopeCache, "watch.reload", strings.Join(reloaded, ","), nil)
	if w.cfg.OnReload != nil {
		w.cfg.OnReload(reloaded)
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
