package highlight

import (
	"slices"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// MaxMemoEntries bounds the render memo; it is emptied when full.
const MaxMemoEntries = 256

// Lines renders raw (newline-preserving lines) with c and splits the result
// back into exactly len(raw) lines. A line keeps its trailing newline only if
// the raw line had one. Any failure yields a copy of raw.
func Lines(c Colorizer, name string, raw []string, f Format) []string {
	if c == nil || f.IsPlain() || len(raw) == 0 {
		return slices.Clone(raw)
	}
	out, err := c.Colorize(name, strings.Join(raw, ""), f)
	if err != nil {
		return slices.Clone(raw)
	}

	segs := strings.Split(out, "\n")
	n := len(raw)
	if len(segs) == n+1 {
		// хвост после последнего перевода строки: обычно пусто или reset-последовательность
		if tail := segs[n]; tail != "" {
			segs[n-1] += tail
		}
		segs = segs[:n]
	}
	if len(segs) != n {
		return slices.Clone(raw)
	}
	for i := range segs {
		if strings.HasSuffix(raw[i], "\n") {
			segs[i] += "\n"
		}
	}
	return segs
}

// Highlighter memoizes Lines by content, name and format.
type Highlighter struct {
	c    Colorizer
	mu   sync.RWMutex
	memo map[uint64][]string
}

// New returns a Highlighter over c. A nil c renders everything plain.
func New(c Colorizer) *Highlighter {
	return &Highlighter{c: c, memo: make(map[uint64][]string)}
}

// Colorizer returns the underlying colorizer.
func (h *Highlighter) Colorizer() Colorizer { return h.c }

// Lines is the memoized form of the package-level Lines.
func (h *Highlighter) Lines(name string, raw []string, f Format) []string {
	if f.IsPlain() {
		return slices.Clone(raw)
	}
	key := memoKey(name, raw, f)

	h.mu.RLock()
	if cached, ok := h.memo[key]; ok {
		h.mu.RUnlock()
		return slices.Clone(cached)
	}
	h.mu.RUnlock()

	rendered := Lines(h.c, name, raw, f)

	h.mu.Lock()
	if len(h.memo) >= MaxMemoEntries {
		h.memo = make(map[uint64][]string)
	}
	h.memo[key] = rendered
	h.mu.Unlock()
	return slices.Clone(rendered)
}

// Reset drops every memoized rendering.
func (h *Highlighter) Reset() {
	h.mu.Lock()
	h.memo = make(map[uint64][]string)
	h.mu.Unlock()
}

// Len returns the number of memoized renderings.
func (h *Highlighter) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.memo)
}

func memoKey(name string, raw []string, f Format) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(f.Key())
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(name)
	_, _ = d.Write([]byte{0})
	for _, line := range raw {
		_, _ = d.WriteString(line)
	}
	return d.Sum64()
}
