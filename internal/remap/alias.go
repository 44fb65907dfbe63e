package remap

import "sort"

// AddAlias makes alias a synonym for canonical, replacing any previous target.
// The file cache also registers one alias per load, from the absolute path it
// read to the cache key, so those show up here too.
func (t *Tables) AddAlias(canonical, alias string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.aliases[alias] = canonical
}

// RemoveAlias deletes alias and returns the path it pointed to.
func (t *Tables) RemoveAlias(alias string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	canonical, ok := t.aliases[alias]
	if ok {
		delete(t.aliases, alias)
	}
	return canonical, ok
}

// Alias returns the canonical path registered for name.
func (t *Tables) Alias(name string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	canonical, ok := t.aliases[name]
	return canonical, ok
}

// Unalias returns the canonical path for name, or name itself.
// Only one hop is followed so alias cycles cannot loop.
func (t *Tables) Unalias(name string) string {
	if canonical, ok := t.Alias(name); ok {
		return canonical
	}
	return name
}

// Aliases returns the registered alias names in sorted order, including the
// absolute-path aliases recorded when files are loaded.
func (t *Tables) Aliases() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.aliases))
	for alias := range t.aliases {
		out = append(out, alias)
	}
	sort.Strings(out)
	return out
}
