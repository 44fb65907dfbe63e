package filecache

import (
	"crypto/sha1" // #nosec G505 -- content fingerprint, not a security boundary
	"encoding/hex"
	"strconv"

	"linecache/internal/highlight"
	"linecache/internal/lineindex"
	"linecache/internal/trace"
)

// Variant returns the lines of key rendered in format f, rendering and
// caching the variant on first request. The slice is shared: do not modify.
func (c *Cache) Variant(key string, f highlight.Format) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	d := c.side[key]
	if lines, ok := d.variants[f]; ok {
		return lines, true
	}
	lines := c.cfg.Highlighter.Lines(e.Path, e.Lines, f)
	d.variants[f] = lines
	return lines, true
}

// Formats returns the formats rendered for key, plain included.
func (c *Cache) Formats(key string) []highlight.Format {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.side[key]
	if !ok {
		return nil
	}
	out := make([]highlight.Format, 0, len(d.variants))
	for f := range d.variants {
		out = append(out, f)
	}
	return out
}

// ClearFormats drops every rendered variant except plain lines.
func (c *Cache) ClearFormats() {
	c.mu.Lock()
	defer c.mu.Unlock()
	dropped := 0
	for _, d := range c.side {
		for f := range d.variants {
			if !f.IsPlain() {
				delete(d.variants, f)
				dropped++
			}
		}
	}
	c.cfg.Highlighter.Reset()
	trace.Point(c.tracer, trace.ScopeCache, "clear-formats", "", map[string]string{"dropped": strconv.Itoa(dropped)})
}

// Digest returns the SHA-1 of the plain lines of key as hex, computed once
// per loaded entry.
func (c *Cache) Digest(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	d := c.side[key]
	if d.digest == "" {
		h := sha1.New() // #nosec G401
		for _, line := range e.Lines {
			_, _ = h.Write([]byte(line))
		}
		d.digest = hex.EncodeToString(h.Sum(nil))
	}
	return d.digest, true
}

// BuildFunc computes a line index for an entry.
type BuildFunc func(e *Entry) (*lineindex.Index, error)

// Index returns the line/offset index of key, building it on first request.
// build runs without the cache lock; a result is kept only if the entry was
// not replaced meanwhile. Failures are not cached.
func (c *Cache) Index(key string, build BuildFunc) (*lineindex.Index, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return nil, ErrNotFound
	}
	if idx := c.side[key].index; idx != nil {
		c.mu.Unlock()
		return idx, nil
	}
	c.mu.Unlock()

	span := trace.Begin(c.tracer, trace.ScopeFile, "index", 0)
	idx, err := build(e)
	if err != nil {
		span.Fail(err)
		return nil, err
	}
	span.WithExtra("lines", strconv.Itoa(len(idx.Lines()))).End(key)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries[key] == e {
		if cur := c.side[key].index; cur != nil {
			return cur, nil
		}
		c.side[key].index = idx
	}
	return idx, nil
}

// DropIndex forgets the index of key so the next Index call rebuilds it.
func (c *Cache) DropIndex(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d, ok := c.side[key]; ok {
		d.index = nil
	}
}
