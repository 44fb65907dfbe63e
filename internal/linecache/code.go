package linecache

import (
	"linecache/internal/filecache"
	"linecache/internal/lineindex"
	"linecache/internal/trace"
)

// index returns the line/offset index of name, building it on first use.
func (c *Cache) index(name string, reload bool) (*lineindex.Index, bool) {
	e, ok := c.entry(name, Options{ReloadOnChange: reload})
	if !ok {
		return nil, false
	}
	idx, err := c.files.Index(e.Key, func(e *filecache.Entry) (*lineindex.Index, error) {
		return c.correlator.Build(e.Path)
	})
	if err != nil {
		trace.Fail(c.tracer, trace.ScopeFile, "trace-lines", err)
		return nil, false
	}
	return idx, true
}

// TraceLineNumbers returns every line of name where a breakpoint can stop,
// across all nested code units, in ascending order.
func (c *Cache) TraceLineNumbers(name string, reload bool) ([]int, bool) {
	idx, ok := c.index(name, reload)
	if !ok {
		return nil, false
	}
	return idx.Lines(), true
}

// TopLevelLineNumbers is TraceLineNumbers restricted to the module body.
func (c *Cache) TopLevelLineNumbers(name string, reload bool) ([]int, bool) {
	idx, ok := c.index(name, reload)
	if !ok {
		return nil, false
	}
	return idx.TopLevelLines(), true
}

// CodeLineInfo returns the code locations a breakpoint on line would hit.
func (c *Cache) CodeLineInfo(name string, line int) ([]lineindex.Location, bool) {
	idx, ok := c.index(name, false)
	if !ok {
		return nil, false
	}
	locs := idx.LineToOffsets(line)
	return locs, len(locs) > 0
}

// CodeOffsetInfo returns the line that starts at offset in the module body.
func (c *Cache) CodeOffsetInfo(name string, offset int) (int, bool) {
	idx, ok := c.index(name, false)
	if !ok {
		return 0, false
	}
	return idx.TopOffsetToLine(offset)
}

// CodeIndex exposes the full index of name.
func (c *Cache) CodeIndex(name string) (*lineindex.Index, bool) {
	return c.index(name, false)
}
