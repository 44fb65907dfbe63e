package filecache

import (
	"errors"
	"fmt"
	"path/filepath"

	"linecache/internal/source"
)

// errSkip means a strategy does not apply to the key.
var errSkip = errors.New("skip")

type strategy struct {
	name string
	load func(key string, opts Options) (*Entry, error)
}

func (c *Cache) strategies(opts Options) []strategy {
	alias := strategy{"alias", c.fromAlias}
	disk := strategy{"disk", c.fromDisk}
	module := strategy{"module", c.fromModule}
	search := strategy{"search", c.fromSearchPath}
	if opts.PreferModule {
		return []strategy{alias, module, disk, search}
	}
	return []strategy{alias, disk, module, search}
}

// load runs the strategy list and returns the first entry produced. It does
// not touch cache state and may run without the lock.
func (c *Cache) load(key string, opts Options) (*Entry, error) {
	var errs []error
	for _, s := range c.strategies(opts) {
		e, err := s.load(key, opts)
		if err == nil {
			return e, nil
		}
		if !errors.Is(err, errSkip) {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, key, errors.Join(errs...))
}

// fromAlias reads an alternate path registered for the key's absolute path.
func (c *Cache) fromAlias(key string, _ Options) (*Entry, error) {
	if c.cfg.Aliases == nil {
		return nil, errSkip
	}
	abs := absPath(key)
	alt, ok := c.cfg.Aliases.Alias(abs)
	if !ok || alt == key || alt == abs {
		return nil, errSkip
	}
	f, err := source.Read(alt)
	if err != nil {
		return nil, err
	}
	return newEntry(key, absPath(alt), f, OriginAlias), nil
}

func (c *Cache) fromDisk(key string, _ Options) (*Entry, error) {
	f, err := source.Read(key)
	if err != nil {
		return nil, err
	}
	return newEntry(key, absPath(key), f, OriginDisk), nil
}

func (c *Cache) fromModule(key string, opts Options) (*Entry, error) {
	if opts.Module == nil {
		return nil, errSkip
	}
	text, err := opts.Module.Source(key)
	if err != nil {
		return nil, err
	}
	return newEntry(key, key, source.FromText(key, text), OriginModule), nil
}

// fromSearchPath looks a relative key up in the search directories; the
// first directory that has it wins.
func (c *Cache) fromSearchPath(key string, _ Options) (*Entry, error) {
	if filepath.IsAbs(key) || len(c.cfg.SearchPath) == 0 {
		return nil, errSkip
	}
	for _, dir := range c.cfg.SearchPath {
		p := filepath.Join(dir, key)
		f, err := source.Read(p)
		if err != nil {
			continue
		}
		return newEntry(key, absPath(p), f, OriginSearch), nil
	}
	return nil, errSkip
}

// reread loads e again from the path it was read from.
func (c *Cache) reread(e *Entry) (*Entry, error) {
	f, err := source.Read(e.Path)
	if err != nil {
		return nil, err
	}
	return newEntry(e.Key, e.Path, f, e.Origin), nil
}

func absPath(p string) string {
	abs, err := source.AbsolutePath(p)
	if err != nil {
		return p
	}
	return abs
}
