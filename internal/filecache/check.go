package filecache

import (
	"sort"
	"strconv"

	"linecache/internal/source"
	"linecache/internal/trace"
)

// Check runs a freshness check on key, or on every entry when key is empty,
// and returns the keys that were reloaded. The boolean is false only when a
// named key is not cached.
//
// An entry whose file changed size or modification time is reloaded whole.
// An entry whose file vanished or cannot be read again is kept as is.
func (c *Cache) Check(key string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var keys []string
	if key == "" {
		keys = make([]string, 0, len(c.entries))
		for k := range c.entries {
			keys = append(keys, k)
		}
	} else {
		if _, ok := c.entries[key]; !ok {
			return nil, false
		}
		keys = []string{key}
	}

	span := trace.Begin(c.tracer, trace.ScopeCache, "check", 0)
	reloaded := []string{}
	for _, k := range keys {
		e, ok := c.entries[k]
		if !ok {
			continue
		}
		if c.refreshLocked(e) {
			reloaded = append(reloaded, k)
		}
	}
	sort.Strings(reloaded)
	span.WithExtra("checked", strconv.Itoa(len(keys))).
		WithExtra("reloaded", strconv.Itoa(len(reloaded))).
		End("")
	return reloaded, true
}

// refreshLocked reloads e when its file changed and reports whether it did.
func (c *Cache) refreshLocked(e *Entry) bool {
	if e.Meta == nil {
		// нет снимка: модуль или виртуальный текст
		return false
	}
	changed, _, err := source.Changed(e.Path, e.Meta)
	if err != nil || !changed {
		return false
	}
	ne, err := c.reread(e)
	if err != nil {
		// оставляем последнюю удачную версию
		trace.Fail(c.tracer, trace.ScopeFile, "reload", err)
		return false
	}
	c.installLocked(ne)
	return true
}
