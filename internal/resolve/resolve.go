package resolve

import (
	"path/filepath"
	"strings"
)

const (
	// ArtifactDir is the directory next to a source file that holds its compiled units.
	ArtifactDir = ".units"
	// ArtifactExt is the file extension of a compiled-unit artifact.
	ArtifactExt = ".lcu"
	// DefaultTag is the artifact version tag written by the current schema.
	DefaultTag = "v1"
)

// DefaultSourceExts lists the extensions recognized as source files when no
// configuration overrides them.
var DefaultSourceExts = []string{".py", ".go", ".sg", ".rb", ".js", ".ts", ".lua"}

// Strategy maps a name to a canonical source path, or reports no match.
type Strategy func(name string) (string, bool)

// Locator finds the source file of an import-style identifier.
type Locator interface {
	Locate(name string) (string, bool)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(name string) (string, bool)

// Locate calls f.
func (f LocatorFunc) Locate(name string) (string, bool) { return f(name) }

// Resolver normalizes names to canonical source paths.
type Resolver struct {
	sourceExts []string
	tag        string
	locator    Locator
	strategies []Strategy
}

// New creates a Resolver. Empty sourceExts or tag fall back to the defaults;
// a nil locator disables module lookup.
func New(sourceExts []string, tag string, locator Locator) *Resolver {
	if len(sourceExts) == 0 {
		sourceExts = DefaultSourceExts
	}
	if tag == "" {
		tag = DefaultTag
	}
	r := &Resolver{
		sourceExts: append([]string(nil), sourceExts...),
		tag:        tag,
		locator:    locator,
	}
	r.strategies = []Strategy{r.sourcePath, r.artifactSource, r.locate}
	return r
}

// Tag returns the artifact version tag.
func (r *Resolver) Tag() string { return r.tag }

// Resolve runs the strategy list and returns the first match, or name itself.
func (r *Resolver) Resolve(name string) string {
	if name == "" {
		return name
	}
	for _, strategy := range r.strategies {
		if p, ok := strategy(name); ok {
			return p
		}
	}
	return name
}

// IsSource reports whether name carries one of the configured source extensions.
func (r *Resolver) IsSource(name string) bool {
	ext := filepath.Ext(name)
	if ext == "" {
		return false
	}
	for _, want := range r.sourceExts {
		if ext == want {
			return true
		}
	}
	return false
}

// ArtifactFor returns where the compiled unit of a source path is expected.
func (r *Resolver) ArtifactFor(sourcePath string) string {
	dir, base := filepath.Split(sourcePath)
	return filepath.Join(dir, ArtifactDir, base+"."+r.tag+ArtifactExt)
}

func (r *Resolver) sourcePath(name string) (string, bool) {
	if r.IsSource(name) {
		return name, true
	}
	return "", false
}

// artifactSource reverses ArtifactFor. A tag equal to the resolver's tag is
// the exact rule; other tags are stripped best-effort as long as the remainder
// still looks like a file name with an extension.
func (r *Resolver) artifactSource(name string) (string, bool) {
	if !strings.HasSuffix(name, ArtifactExt) {
		return "", false
	}
	dir, file := filepath.Split(name)
	stem := strings.TrimSuffix(file, ArtifactExt)
	if stem == "" {
		return "", false
	}

	if dir != "" {
		dir = filepath.Clean(dir)
		if filepath.Base(dir) == ArtifactDir {
			dir = filepath.Dir(dir)
		}
	}

	switch {
	case strings.HasSuffix(stem, "."+r.tag):
		stem = strings.TrimSuffix(stem, "."+r.tag)
	default:
		if i := strings.LastIndexByte(stem, '.'); i > 0 && filepath.Ext(stem[:i]) != "" {
			stem = stem[:i]
		}
	}
	if dir == "" {
		return stem, true
	}
	return filepath.Join(dir, stem), true
}

func (r *Resolver) locate(name string) (string, bool) {
	if r.locator == nil || !looksLikeModule(name) {
		return "", false
	}
	return r.locator.Locate(name)
}

// looksLikeModule accepts dotted identifiers such as "os" or "pkg.sub.mod".
func looksLikeModule(name string) bool {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return false
	}
	for _, part := range strings.Split(name, ".") {
		if !isIdent(part) {
			return false
		}
	}
	return true
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
