// Package lineindex correlates source lines with bytecode offsets of the
// compiled units of a file.
package lineindex

import (
	"slices"
	"sort"

	"linecache/internal/codeunit"
)

// Location is one offset inside one unit where execution of a line may stop.
type Location struct {
	Unit   *codeunit.Unit
	Offset int
}

// Index is the line/offset table of one unit graph. It is immutable once built.
type Index struct {
	root    *codeunit.Unit
	units   []*codeunit.Unit
	parents map[*codeunit.Unit]*codeunit.Unit
	byLine  map[int][]Location
	// per-unit offset -> line, local table only
	byOffset map[*codeunit.Unit]map[int]int
	lines    []int
}

// Build walks every unit reachable from root once and records its line starts.
// Locations of a line keep visit order, then offset order within a unit.
func Build(root *codeunit.Unit) *Index {
	idx := &Index{
		root:     root,
		parents:  make(map[*codeunit.Unit]*codeunit.Unit),
		byLine:   make(map[int][]Location),
		byOffset: make(map[*codeunit.Unit]map[int]int),
	}
	codeunit.Walk(root, func(u, parent *codeunit.Unit) bool {
		idx.units = append(idx.units, u)
		if parent != nil {
			idx.parents[u] = parent
		}
		starts := slices.Clone(u.Lines)
		sort.SliceStable(starts, func(i, j int) bool { return starts[i].Offset < starts[j].Offset })

		local := make(map[int]int, len(starts))
		for _, ls := range starts {
			local[ls.Offset] = ls.Line
			idx.byLine[ls.Line] = append(idx.byLine[ls.Line], Location{Unit: u, Offset: ls.Offset})
		}
		idx.byOffset[u] = local
		return true
	})

	idx.lines = make([]int, 0, len(idx.byLine))
	for line := range idx.byLine {
		idx.lines = append(idx.lines, line)
	}
	sort.Ints(idx.lines)
	return idx
}

// Root returns the unit the index was built from.
func (x *Index) Root() *codeunit.Unit { return x.root }

// Lines returns every breakpoint-eligible line in ascending order.
func (x *Index) Lines() []int {
	return slices.Clone(x.lines)
}

// TopLevelLines returns the lines that start code in the root unit only.
func (x *Index) TopLevelLines() []int {
	if x.root == nil {
		return nil
	}
	var out []int
	for _, line := range x.byOffset[x.root] {
		out = append(out, line)
	}
	sort.Ints(out)
	return slices.Compact(out)
}

// LineToOffsets returns every location where a breakpoint on line can stop.
func (x *Index) LineToOffsets(line int) []Location {
	return slices.Clone(x.byLine[line])
}

// EntryUnits returns the units whose first instruction belongs to line.
// Units are returned by identity, so same-named scopes stay apart.
func (x *Index) EntryUnits(line int) []*codeunit.Unit {
	var out []*codeunit.Unit
	for _, loc := range x.byLine[line] {
		if loc.Offset == 0 {
			out = append(out, loc.Unit)
		}
	}
	return out
}

// OffsetToLine returns the line that starts at offset in unit. Nested units
// are not consulted.
func (x *Index) OffsetToLine(unit *codeunit.Unit, offset int) (int, bool) {
	line, ok := x.byOffset[unit][offset]
	return line, ok
}

// TopOffsetToLine is OffsetToLine for the root unit.
func (x *Index) TopOffsetToLine(offset int) (int, bool) {
	return x.OffsetToLine(x.root, offset)
}

// Parent returns the unit through which u was first reached, nil for the root.
func (x *Index) Parent(u *codeunit.Unit) *codeunit.Unit {
	return x.parents[u]
}

// Units returns the indexed units in visit order.
func (x *Index) Units() []*codeunit.Unit {
	return slices.Clone(x.units)
}
