package remap

import (
	"regexp"
	"sync"
)

// MappingKind reports which remap layer knows about a name.
type MappingKind uint8

const (
	// MappedNone means the name is used as is.
	MappedNone MappingKind = iota
	// MappedFile means the name is an alias of another path.
	MappedFile
	// MappedFileLine means the name has a line map onto another file.
	MappedFileLine
)

// String returns the string representation of MappingKind.
func (k MappingKind) String() string {
	switch k {
	case MappedFile:
		return "file"
	case MappedFileLine:
		return "file_line"
	default:
		return "none"
	}
}

type pattern struct {
	re   *regexp.Regexp
	repl string
}

// Tables is the set of remap layers. It is safe for concurrent use.
type Tables struct {
	mu       sync.RWMutex
	aliases  map[string]string   // alias -> canonical
	patterns []pattern           // registration order
	lines    map[string]*LineMap // mapped path -> map
}

// New creates empty remap tables.
func New() *Tables {
	return &Tables{
		aliases: make(map[string]string),
		lines:   make(map[string]*LineMap),
	}
}

// Unmap applies the pattern rewrite and then alias substitution.
func (t *Tables) Unmap(name string) string {
	return t.Unalias(t.Rewrite(name))
}

// Kind reports how name is mapped. Aliases take precedence over line maps.
func (t *Tables) Kind(name string) MappingKind {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if _, ok := t.aliases[name]; ok {
		return MappedFile
	}
	if lm, ok := t.lines[name]; ok && len(lm.Pairs) > 0 {
		return MappedFileLine
	}
	return MappedNone
}

// Reset drops aliases and line maps. Pattern rules are configuration and survive;
// use ClearPatterns to drop them.
func (t *Tables) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.aliases = make(map[string]string)
	t.lines = make(map[string]*LineMap)
}
