package remap

import (
	"slices"
	"sort"
)

// Pair is one anchor: line From of the from-file corresponds to line To of the mapped file.
type Pair struct {
	From int
	To   int
}

// LineMap maps lines of one file onto the file it was generated from.
type LineMap struct {
	FromPath string
	Pairs    []Pair // sorted by From
	// monotonic is true when To never decreases along Pairs, which allows binary search.
	monotonic bool
}

// AddLineMapping merges pairs into the map registered for toPath.
// The from path of the latest call wins. A pair with an already registered
// From replaces the older one.
func (t *Tables) AddLineMapping(fromPath, toPath string, pairs []Pair) {
	t.mu.Lock()
	defer t.mu.Unlock()

	lm, ok := t.lines[toPath]
	if !ok {
		lm = &LineMap{}
		t.lines[toPath] = lm
	}
	lm.FromPath = fromPath

	byFrom := make(map[int]int, len(lm.Pairs)+len(pairs))
	merged := make([]Pair, 0, len(lm.Pairs)+len(pairs))
	for _, p := range slices.Concat(lm.Pairs, pairs) {
		if i, dup := byFrom[p.From]; dup {
			merged[i] = p
			continue
		}
		byFrom[p.From] = len(merged)
		merged = append(merged, p)
	}
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].From < merged[j].From })

	lm.Pairs = merged
	lm.monotonic = sort.SliceIsSorted(merged, func(i, j int) bool { return merged[i].To < merged[j].To })
}

// LineMapping returns a copy of the map registered for toPath.
func (t *Tables) LineMapping(toPath string) (LineMap, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	lm, ok := t.lines[toPath]
	if !ok {
		return LineMap{}, false
	}
	return LineMap{FromPath: lm.FromPath, Pairs: slices.Clone(lm.Pairs), monotonic: lm.monotonic}, true
}

// RemoveLineMapping drops the map registered for toPath.
func (t *Tables) RemoveLineMapping(toPath string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.lines[toPath]
	delete(t.lines, toPath)
	return ok
}

// FromPath returns the from-file of the map registered for toPath.
func (t *Tables) FromPath(toPath string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	lm, ok := t.lines[toPath]
	if !ok {
		return "", false
	}
	return lm.FromPath, true
}

// Translate maps line toLine of toPath into the coordinates of its from-file.
// Without a registered map the input is returned unchanged.
// fromMax is the line count of the from-file and bounds extrapolation past the
// last anchor; fromMax <= 0 leaves it unbounded.
func (t *Tables) Translate(toPath string, toLine, fromMax int) (string, int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	lm, ok := t.lines[toPath]
	if !ok || len(lm.Pairs) == 0 {
		return toPath, toLine, true
	}
	line, beyond := lm.lookup(toLine)
	if beyond && fromMax > 0 && line > fromMax {
		return lm.FromPath, line, false
	}
	return lm.FromPath, line, true
}

// Reverse maps line fromLine of the from-file back into toPath coordinates.
func (t *Tables) Reverse(toPath string, fromLine int) (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	lm, ok := t.lines[toPath]
	if !ok || len(lm.Pairs) == 0 {
		return fromLine, false
	}
	i := sort.Search(len(lm.Pairs), func(i int) bool { return lm.Pairs[i].From >= fromLine })
	if i < len(lm.Pairs) && lm.Pairs[i].From == fromLine {
		return lm.Pairs[i].To, true
	}
	if i == 0 {
		return fromLine, true
	}
	prev := lm.Pairs[i-1]
	return prev.To + (fromLine - prev.From), true
}

// MaxLine returns the last valid line of toPath in mapped coordinates: the
// largest To anchor, extended by the from-file lines that follow the last anchor.
func (t *Tables) MaxLine(toPath string, fromMax int) (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	lm, ok := t.lines[toPath]
	if !ok || len(lm.Pairs) == 0 {
		return 0, false
	}
	maxTo := 0
	for _, p := range lm.Pairs {
		maxTo = max(maxTo, p.To)
	}
	if fromMax > 0 {
		last := lm.Pairs[len(lm.Pairs)-1]
		maxTo = max(maxTo, last.To+(fromMax-last.From))
	}
	return maxTo, true
}

// lookup returns the from-line for toLine and whether it was extrapolated past
// the last anchor. An implicit (1, 1) anchor precedes the first pair.
func (lm *LineMap) lookup(toLine int) (int, bool) {
	if lm.monotonic {
		i := sort.Search(len(lm.Pairs), func(i int) bool { return lm.Pairs[i].To >= toLine })
		switch {
		case i < len(lm.Pairs) && lm.Pairs[i].To == toLine:
			return lm.Pairs[i].From, false
		case i == 0:
			return toLine, false
		default:
			prev := lm.Pairs[i-1]
			return prev.From + (toLine - prev.To), i == len(lm.Pairs)
		}
	}

	// To is not ordered here; the first anchor in From order wins.
	prev := Pair{From: 1, To: 1}
	for _, p := range lm.Pairs {
		if p.To == toLine {
			return p.From, false
		}
		if p.To > toLine {
			return prev.From + (toLine - prev.To), false
		}
		prev = p
	}
	return prev.From + (toLine - prev.To), true
}
