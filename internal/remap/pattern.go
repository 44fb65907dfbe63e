package remap

import (
	"fmt"
	"regexp"
	"strings"
)

// AddPattern appends a rewrite rule. match is a regular expression anchored at
// the start of the path (a leading ^ is added when missing). replacement is
// expanded as in regexp.Expand: $1 and ${name} refer to groups, $$ is a
// literal $. Rules are tried in registration order; only the first matching
// rule is applied, and only to its first match.
func (t *Tables) AddPattern(match, replacement string) error {
	if !strings.HasPrefix(match, "^") {
		match = "^" + match
	}
	re, err := regexp.Compile(match)
	if err != nil {
		return fmt.Errorf("remap pattern %q: %w", match, err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.patterns = append(t.patterns, pattern{re: re, repl: replacement})
	return nil
}

// Rewrite applies the first matching pattern to path.
func (t *Tables) Rewrite(path string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, p := range t.patterns {
		loc := p.re.FindStringSubmatchIndex(path)
		if loc == nil {
			continue
		}
		out := p.re.ExpandString([]byte(path[:loc[0]]), p.repl, path, loc)
		return string(out) + path[loc[1]:]
	}
	return path
}

// PatternCount returns the number of registered rules.
func (t *Tables) PatternCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.patterns)
}

// ClearPatterns removes every rewrite rule.
func (t *Tables) ClearPatterns() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.patterns = nil
}
