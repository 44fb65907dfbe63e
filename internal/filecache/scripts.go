package filecache

import "linecache/internal/source"

// CacheScript stores text under id unless id is already cached, and returns id.
func (c *Cache) CacheScript(id, text string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.scripts[id]; !ok {
		c.scripts[id] = text
	}
	return id
}

// UpdateScript stores text under id, replacing any previous text.
func (c *Cache) UpdateScript(id, text string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scripts[id] = text
	return id
}

// UncacheScript removes id and returns it if it was cached.
func (c *Cache) UncacheScript(id string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.scripts[id]; !ok {
		return "", false
	}
	delete(c.scripts, id)
	return id, true
}

// IsCachedScript reports whether id is cached.
func (c *Cache) IsCachedScript(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.scripts[id]
	return ok
}

// ScriptText returns the raw text of id.
func (c *Cache) ScriptText(id string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	text, ok := c.scripts[id]
	return text, ok
}

// ScriptLines returns the newline-preserving lines of id.
func (c *Cache) ScriptLines(id string) ([]string, bool) {
	text, ok := c.ScriptText(id)
	if !ok {
		return nil, false
	}
	return source.FromText(id, text).Lines, true
}

// ClearScripts removes every script.
func (c *Cache) ClearScripts() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scripts = make(map[string]string)
}
