// Package codeunit describes compiled code units and the artifacts they are stored in.
//
// A Unit is one compiled scope (module body, function, class body) with its own
// table of line starts. Nested scopes are referenced from Consts, so the units
// of a file form a graph rooted at the module unit. Shared and cyclic
// references are allowed.
package codeunit

// LineStart records that the instruction at Offset is the first one of source Line.
type LineStart struct {
	Offset int
	Line   int
}

// Unit is one compiled scope.
type Unit struct {
	Name      string
	FirstLine int
	Lines     []LineStart // ordered by Offset
	Consts    []*Unit
}

// Loader yields the root unit compiled from a source path.
type Loader interface {
	Load(path string) (*Unit, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (*Unit, error)

// Load calls f.
func (f LoaderFunc) Load(path string) (*Unit, error) { return f(path) }

// Walk visits every unit reachable from root exactly once, breadth first.
// fn returning false stops the walk.
func Walk(root *Unit, fn func(u, parent *Unit) bool) {
	if root == nil {
		return
	}
	type item struct{ u, parent *Unit }
	seen := map[*Unit]struct{}{root: {}}
	queue := []item{{u: root}}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		if !fn(it.u, it.parent) {
			return
		}
		for _, c := range it.u.Consts {
			if c == nil {
				continue
			}
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			queue = append(queue, item{u: c, parent: it.u})
		}
	}
}
