package filecache

import (
	"errors"
	"sort"
	"strconv"
	"sync"

	"linecache/internal/highlight"
	"linecache/internal/trace"
)

// ErrNotFound is returned when no load strategy produced the file.
var ErrNotFound = errors.New("filecache: file not found")

// AliasTable is the part of the remap tables the cache needs: it consults
// aliases for alternate paths and records the path a key was read from.
type AliasTable interface {
	Alias(name string) (string, bool)
	AddAlias(canonical, alias string)
}

// ModuleSource supplies the text of a live-loaded module when the file
// system cannot.
type ModuleSource interface {
	Source(name string) (string, error)
}

// ModuleSourceFunc adapts a function to ModuleSource.
type ModuleSourceFunc func(name string) (string, error)

// Source calls f.
func (f ModuleSourceFunc) Source(name string) (string, error) { return f(name) }

// Options tune a single Get.
type Options struct {
	// ReloadOnChange runs a freshness check on a cached entry first.
	ReloadOnChange bool
	// Module is consulted when the disk read fails.
	Module ModuleSource
	// PreferModule tries Module before the disk.
	PreferModule bool
}

// Config configures a Cache.
type Config struct {
	// Highlighter renders variants; nil renders everything plain.
	Highlighter *highlight.Highlighter
	// EagerFormat is rendered as soon as a file loads. Plain disables it.
	EagerFormat highlight.Format
	// SearchPath is consulted, in order, for relative names.
	SearchPath []string
	Aliases    AliasTable
	Tracer     trace.Tracer
	// Workers bounds Prefetch concurrency; 0 means 8.
	Workers int
}

// Cache is the file cache.
type Cache struct {
	cfg     Config
	tracer  trace.Tracer
	mu      sync.Mutex
	entries map[string]*Entry
	side    map[string]*derived
	scripts map[string]string
}

// New creates an empty cache.
func New(cfg Config) *Cache {
	if cfg.Highlighter == nil {
		cfg.Highlighter = highlight.New(nil)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	cfg.SearchPath = append([]string(nil), cfg.SearchPath...)
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Cache{
		cfg:     cfg,
		tracer:  tracer,
		entries: make(map[string]*Entry),
		side:    make(map[string]*derived),
		scripts: make(map[string]string),
	}
}

// SearchPath returns the configured search directories.
func (c *Cache) SearchPath() []string {
	return append([]string(nil), c.cfg.SearchPath...)
}

// Get returns the entry for key, loading it on first use.
func (c *Cache) Get(key string, opts Options) (*Entry, bool) {
	if key == "" {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		if opts.ReloadOnChange {
			c.refreshLocked(e)
			e = c.entries[key]
		}
		return e, true
	}
	e, err := c.load(key, opts)
	if err != nil {
		trace.Fail(c.tracer, trace.ScopeFile, "load", err)
		return nil, false
	}
	c.installLocked(e)
	return e, true
}

// Peek returns the cached entry for key without loading or checking it.
func (c *Cache) Peek(key string) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e, ok
}

// Has reports whether key is cached.
func (c *Cache) Has(key string) bool {
	_, ok := c.Peek(key)
	return ok
}

// Clear evicts key and reports whether it was cached.
func (c *Cache) Clear(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	delete(c.side, key)
	trace.Point(c.tracer, trace.ScopeFile, "evict", key, nil)
	return true
}

// ClearAll evicts every file. Scripts are kept.
func (c *Cache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[string]*Entry)
	c.side = make(map[string]*derived)
	c.cfg.Highlighter.Reset()
	trace.Point(c.tracer, trace.ScopeCache, "clear", "", map[string]string{"files": strconv.Itoa(n)})
}

// Keys returns the cached keys in sorted order.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// installLocked replaces the entry for e.Key, drops its side table and
// renders the eager variant.
func (c *Cache) installLocked(e *Entry) {
	_, reload := c.entries[e.Key]
	c.entries[e.Key] = e
	d := &derived{variants: map[highlight.Format][]string{highlight.Plain: e.Lines}}
	c.side[e.Key] = d

	if f := c.cfg.EagerFormat; !f.IsPlain() {
		d.variants[f] = c.cfg.Highlighter.Lines(e.Path, e.Lines, f)
	}
	c.recordPathLocked(e)

	name := "load"
	if reload {
		name = "reload"
	}
	trace.Point(c.tracer, trace.ScopeFile, name, e.Key, map[string]string{
		"origin": e.Origin.String(),
		"lines":  strconv.Itoa(len(e.Lines)),
	})
}

// recordPathLocked lets the path that was read resolve back to the key.
func (c *Cache) recordPathLocked(e *Entry) {
	if c.cfg.Aliases == nil || e.Origin == OriginModule {
		return
	}
	abs := absPath(e.Path)
	if abs == e.Key {
		return
	}
	c.cfg.Aliases.AddAlias(e.Key, abs)
}
