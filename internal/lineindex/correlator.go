package lineindex

import (
	"fmt"

	"linecache/internal/codeunit"
	"linecache/internal/resolve"
)

// Correlator builds indexes for source paths from their compiled units.
type Correlator struct {
	Loader   codeunit.Loader
	Resolver *resolve.Resolver
}

// NewCorrelator returns a Correlator. A nil loader reads msgpack artifacts
// named by r.
func NewCorrelator(loader codeunit.Loader, r *resolve.Resolver) *Correlator {
	if r == nil {
		r = resolve.New(nil, "", nil)
	}
	if loader == nil {
		loader = codeunit.NewArtifactLoader(r)
	}
	return &Correlator{Loader: loader, Resolver: r}
}

// Build loads the compiled root unit of path and indexes it.
func (c *Correlator) Build(path string) (*Index, error) {
	if c.Resolver != nil {
		path = c.Resolver.Resolve(path)
	}
	root, err := c.Loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("correlate %s: %w", path, err)
	}
	if root == nil {
		return nil, fmt.Errorf("correlate %s: loader returned no unit", path)
	}
	return Build(root), nil
}
