package linecache

import (
	"context"
	"strings"

	"linecache/internal/codeunit"
	"linecache/internal/filecache"
	"linecache/internal/highlight"
	"linecache/internal/lineindex"
	"linecache/internal/remap"
	"linecache/internal/resolve"
	"linecache/internal/source"
	"linecache/internal/trace"
)

// Config configures a Cache. The zero value is usable.
type Config struct {
	SearchPath  []string
	SourceExts  []string
	ArtifactTag string
	// EagerFormat is rendered as soon as a file loads; the zero value means
	// TerminalLight. NoEager turns eager rendering off.
	EagerFormat highlight.Format
	NoEager     bool
	Colorizer   highlight.Colorizer
	Loader      codeunit.Loader
	Locator     resolve.Locator
	Tracer      trace.Tracer
	Workers     int
}

// Options tune a single query. The zero value returns plain lines without
// trailing newlines and skips the freshness check.
type Options struct {
	ReloadOnChange bool
	KeepNewline    bool
	Format         highlight.Format
	Module         filecache.ModuleSource
	PreferModule   bool
}

func (o Options) files() filecache.Options {
	return filecache.Options{
		ReloadOnChange: o.ReloadOnChange,
		Module:         o.Module,
		PreferModule:   o.PreferModule,
	}
}

// Cache is a long-lived line cache, typically one per debugger session.
type Cache struct {
	tables     *remap.Tables
	resolver   *resolve.Resolver
	files      *filecache.Cache
	correlator *lineindex.Correlator
	tracer     trace.Tracer
}

// New creates a Cache.
func New(cfg Config) *Cache {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	locator := cfg.Locator
	if locator == nil && len(cfg.SearchPath) > 0 {
		locator = resolve.DirLocator{Dirs: cfg.SearchPath, Exts: cfg.SourceExts, PackageFile: "__init__"}
	}
	resolver := resolve.New(cfg.SourceExts, cfg.ArtifactTag, locator)

	colorizer := cfg.Colorizer
	if colorizer == nil {
		colorizer = highlight.NewChroma("", "")
	}
	eager := cfg.EagerFormat
	switch {
	case cfg.NoEager:
		eager = highlight.Plain
	case eager.IsPlain():
		eager = highlight.TerminalLight
	}

	tables := remap.New()
	return &Cache{
		tables:   tables,
		resolver: resolver,
		files: filecache.New(filecache.Config{
			Highlighter: highlight.New(colorizer),
			EagerFormat: eager,
			SearchPath:  cfg.SearchPath,
			Aliases:     tables,
			Tracer:      tracer,
			Workers:     cfg.Workers,
		}),
		correlator: lineindex.NewCorrelator(cfg.Loader, resolver),
		tracer:     tracer,
	}
}

// Remap returns the remap tables of the cache.
func (c *Cache) Remap() *remap.Tables { return c.tables }

// Resolver returns the path resolver of the cache.
func (c *Cache) Resolver() *resolve.Resolver { return c.resolver }

// canonical turns a query name into a cache key.
func (c *Cache) canonical(name string) string {
	return c.resolver.Resolve(c.tables.Unmap(name))
}

// entry loads or returns the cache entry for name.
func (c *Cache) entry(name string, opts Options) (*filecache.Entry, bool) {
	if name == "" {
		return nil, false
	}
	return c.files.Get(c.canonical(name), opts.files())
}

// GetLine returns the 1-based line of name. When a line map is registered
// for name the line is translated into the from-file first, and lines past
// the mapped maximum are rejected.
func (c *Cache) GetLine(name string, line int, opts Options) (string, bool) {
	if name == "" || line < 1 {
		return "", false
	}
	key := c.canonical(name)
	fromKey, fromLine, ok := c.translate(key, line, opts)
	if !ok {
		trace.Point(c.tracer, trace.ScopeLine, "getline", name, map[string]string{"result": "out-of-range"})
		return "", false
	}
	if _, ok := c.files.Get(fromKey, opts.files()); !ok {
		return "", false
	}
	lines, ok := c.files.Variant(fromKey, opts.Format)
	if !ok || fromLine < 1 || fromLine > len(lines) {
		return "", false
	}
	return finish(lines[fromLine-1], opts.KeepNewline), true
}

// GetLines returns every line of name in the requested format.
func (c *Cache) GetLines(name string, opts Options) ([]string, bool) {
	e, ok := c.entry(name, opts)
	if !ok {
		return nil, false
	}
	lines, ok := c.files.Variant(e.Key, opts.Format)
	if !ok {
		return nil, false
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = finish(l, opts.KeepNewline)
	}
	return out, true
}

// translate maps (key, line) through the line map of key, if any.
func (c *Cache) translate(key string, line int, opts Options) (string, int, bool) {
	from, mapped := c.tables.FromPath(key)
	if !mapped {
		return key, line, true
	}
	fromMax := 0
	if e, ok := c.files.Get(from, opts.files()); ok {
		fromMax = e.Size()
	}
	return c.tables.Translate(key, line, fromMax)
}

// Size returns the number of physical lines of name.
func (c *Cache) Size(name string) (int, bool) {
	e, ok := c.entry(name, Options{})
	if !ok {
		return 0, false
	}
	return e.Size(), true
}

// MaxLine returns the largest valid line number of name, taking its line map
// into account.
func (c *Cache) MaxLine(name string) (int, bool) {
	key := c.canonical(name)
	if from, mapped := c.tables.FromPath(key); mapped {
		fromMax, _ := c.Size(from)
		if n, ok := c.tables.MaxLine(key, fromMax); ok {
			return n, true
		}
	}
	return c.Size(name)
}

// Stat returns the size and modification time recorded when name was read.
// Module-sourced entries have none.
func (c *Cache) Stat(name string) (source.Meta, bool) {
	e, ok := c.entry(name, Options{})
	if !ok || e.Meta == nil {
		return source.Meta{}, false
	}
	return *e.Meta, true
}

// SHA1 returns the hex SHA-1 of the plain content of name.
func (c *Cache) SHA1(name string) (string, bool) {
	e, ok := c.entry(name, Options{})
	if !ok {
		return "", false
	}
	return c.files.Digest(e.Key)
}

// Path returns the path name was read from. It does not load name.
func (c *Cache) Path(name string) (string, bool) {
	e, ok := c.files.Peek(c.canonical(name))
	if !ok {
		return "", false
	}
	return e.Path, true
}

// CheckCache runs a freshness check on name, or on every cached file when
// name is empty, and returns the keys that were reloaded. ok is false when a
// named file is not cached.
func (c *Cache) CheckCache(name string) ([]string, bool) {
	if name == "" {
		return c.files.Check("")
	}
	return c.files.Check(c.canonical(name))
}

// CacheFile makes sure name is cached and returns the path it was read from.
// With reload set an already cached file gets a freshness check.
func (c *Cache) CacheFile(name string, reload bool) (string, bool) {
	e, ok := c.entry(name, Options{ReloadOnChange: reload})
	if !ok {
		return "", false
	}
	return e.Path, true
}

// UpdateCache drops name and loads it again.
func (c *Cache) UpdateCache(name string, opts Options) bool {
	key := c.canonical(name)
	if key == "" {
		return false
	}
	c.files.Clear(key)
	_, ok := c.files.Get(key, opts.files())
	return ok
}

// IsCached reports whether name is in the file cache.
func (c *Cache) IsCached(name string) bool {
	return c.files.Has(c.canonical(name))
}

// CachedFiles returns the cached keys in sorted order.
func (c *Cache) CachedFiles() []string {
	return c.files.Keys()
}

// Clear evicts name from the file cache.
func (c *Cache) Clear(name string) bool {
	return c.files.Clear(c.canonical(name))
}

// ClearAll evicts every file and drops aliases and line maps. Rewrite
// patterns and scripts are kept.
func (c *Cache) ClearAll() {
	c.files.ClearAll()
	c.tables.Reset()
}

// Reset returns the cache to its initial state, patterns and scripts included.
func (c *Cache) Reset() {
	c.ClearAll()
	c.tables.ClearPatterns()
	c.files.ClearScripts()
}

// ClearFormats drops every highlighted variant, for example after a theme change.
func (c *Cache) ClearFormats() {
	c.files.ClearFormats()
}

// Warm loads names concurrently; see filecache.Cache.Prefetch.
func (c *Cache) Warm(ctx context.Context, names []string, sink filecache.Sink) error {
	keys := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			keys = append(keys, c.canonical(n))
		}
	}
	return c.files.Prefetch(ctx, keys, filecache.Options{}, sink)
}

func finish(line string, keepNewline bool) string {
	if keepNewline {
		return line
	}
	return strings.TrimSuffix(line, "\n")
}
