package codeunit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"linecache/internal/resolve"
)

// ErrNoArtifact is returned when no compiled artifact exists for a source.
var ErrNoArtifact = errors.New("codeunit: no artifact")

// ArtifactLoader loads units from msgpack artifacts stored next to their sources.
type ArtifactLoader struct {
	Resolver *resolve.Resolver
}

// NewArtifactLoader creates a loader that names artifacts with r.
func NewArtifactLoader(r *resolve.Resolver) *ArtifactLoader {
	return &ArtifactLoader{Resolver: r}
}

// Load implements Loader.
func (l *ArtifactLoader) Load(path string) (*Unit, error) {
	p := l.resolver().ArtifactFor(path)
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoArtifact, p)
		}
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	_, root, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", p, err)
	}
	return root, nil
}

// Store writes the artifact for the source at path and returns where it went.
func (l *ArtifactLoader) Store(path string, root *Unit) (string, error) {
	p := l.resolver().ArtifactFor(path)
	return p, WriteFile(p, path, root)
}

func (l *ArtifactLoader) resolver() *resolve.Resolver {
	if l == nil || l.Resolver == nil {
		return resolve.New(nil, "", nil)
	}
	return l.Resolver
}

// WriteFile atomically writes the artifact of source to p.
func WriteFile(p, source string, root *Unit) error {
	data, err := Marshal(source, root)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// атомарная замена
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
