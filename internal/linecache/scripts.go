package linecache

// CacheScript stores text under id unless it is already cached.
func (c *Cache) CacheScript(id, text string) string {
	return c.files.CacheScript(id, text)
}

// UpdateScript stores text under id, replacing previous text.
func (c *Cache) UpdateScript(id, text string) string {
	return c.files.UpdateScript(id, text)
}

// UncacheScript removes id and returns it if it was cached.
func (c *Cache) UncacheScript(id string) (string, bool) {
	return c.files.UncacheScript(id)
}

// IsCachedScript reports whether id is cached.
func (c *Cache) IsCachedScript(id string) bool {
	return c.files.IsCachedScript(id)
}

// ScriptLine returns the 1-based line n of script id.
func (c *Cache) ScriptLine(id string, n int, opts Options) (string, bool) {
	lines, ok := c.files.ScriptLines(id)
	if !ok || n < 1 || n > len(lines) {
		return "", false
	}
	return finish(lines[n-1], opts.KeepNewline), true
}
