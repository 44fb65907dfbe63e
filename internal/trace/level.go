package trace

import (
	"fmt"
	"slices"
	"strings"
)

// Level controls how much is traced. Each level includes the ones below.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // failures only
	LevelPhase        // cache-wide operations
	LevelDetail       // plus per-file events
	LevelDebug        // plus per-line lookups
)

var levelNames = []string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string { return nameOf(levelNames, int(l)) }

// ParseLevel accepts a level name in any case.
func ParseLevel(s string) (Level, error) {
	i := slices.Index(levelNames, strings.ToLower(s))
	if i < 0 {
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames, "|"))
	}
	return Level(i), nil
}

// ShouldEmit reports whether spans and points of scope are recorded at l.
// Phase admits ScopeCache, Detail adds ScopeFile, Debug adds ScopeLine.
func (l Level) ShouldEmit(scope Scope) bool {
	if l < LevelPhase {
		return false // failures go through Allows
	}
	return int(scope) <= int(l-LevelPhase)+1
}

// Allows reports whether ev passes the level filter. Failure events pass at
// every level but LevelOff; heartbeats always pass.
func (l Level) Allows(ev *Event) bool {
	switch {
	case ev == nil || l == LevelOff:
		return false
	case ev.Kind == KindHeartbeat, ev.Err:
		return true
	default:
		return l.ShouldEmit(ev.Scope)
	}
}

func nameOf(names []string, i int) string {
	if i < 0 || i >= len(names) || names[i] == "" {
		return "unknown"
	}
	return names[i]
}
