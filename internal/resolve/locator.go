package resolve

import (
	"os"
	"path/filepath"
	"strings"
)

// DirLocator resolves dotted module names against an ordered list of directories.
// "pkg.mod" is looked up as pkg/mod<ext> and, when PackageFile is set, as
// pkg/mod/<PackageFile><ext>. The first directory that has a match wins.
type DirLocator struct {
	Dirs        []string
	Exts        []string
	PackageFile string
}

// Locate implements Locator.
func (l DirLocator) Locate(name string) (string, bool) {
	rel := filepath.FromSlash(strings.ReplaceAll(name, ".", "/"))
	exts := l.Exts
	if len(exts) == 0 {
		exts = DefaultSourceExts
	}
	for _, dir := range l.Dirs {
		for _, ext := range exts {
			if p := filepath.Join(dir, rel+ext); isFile(p) {
				return p, true
			}
			if l.PackageFile == "" {
				continue
			}
			if p := filepath.Join(dir, rel, l.PackageFile+ext); isFile(p) {
				return p, true
			}
		}
	}
	return "", false
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
