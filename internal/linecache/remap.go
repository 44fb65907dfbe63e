package linecache

import "linecache/internal/remap"

// RemapFile makes alias a synonym for canonical.
func (c *Cache) RemapFile(canonical, alias string) {
	c.tables.AddAlias(canonical, alias)
}

// RemoveRemapFile drops alias and returns the path it pointed to.
func (c *Cache) RemoveRemapFile(alias string) (string, bool) {
	return c.tables.RemoveAlias(alias)
}

// AddRemapPattern registers a path rewrite rule.
func (c *Cache) AddRemapPattern(match, replacement string) error {
	return c.tables.AddPattern(match, replacement)
}

// RemapPattern applies the rewrite rules to path.
func (c *Cache) RemapPattern(path string) string {
	return c.tables.Rewrite(path)
}

// RemapFileLines registers anchor pairs mapping lines of to onto lines of from.
func (c *Cache) RemapFileLines(from, to string, pairs []remap.Pair) {
	c.tables.AddLineMapping(c.canonical(from), c.canonical(to), pairs)
}

// UnmapFile applies rewrite rules and aliases to name.
func (c *Cache) UnmapFile(name string) string {
	return c.tables.Unmap(name)
}

// UnmapFileLine returns the from-file and line that line of name maps to.
// Names without a line map come back unchanged.
func (c *Cache) UnmapFileLine(name string, line int) (string, int) {
	key := c.canonical(name)
	if _, mapped := c.tables.FromPath(key); !mapped {
		return c.tables.Unmap(name), line
	}
	from, fromLine, _ := c.tables.Translate(key, line, 0)
	return from, fromLine
}

// ReverseFileLine maps a line of the from-file back into name's coordinates.
func (c *Cache) ReverseFileLine(name string, fromLine int) (int, bool) {
	return c.tables.Reverse(c.canonical(name), fromLine)
}

// IsMapped reports whether name is an alias, has a line map, or neither.
func (c *Cache) IsMapped(name string) remap.MappingKind {
	if k := c.tables.Kind(name); k != remap.MappedNone {
		return k
	}
	return c.tables.Kind(c.canonical(name))
}
