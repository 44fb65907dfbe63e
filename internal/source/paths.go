package source

import (
	"os"
	"path/filepath"
	"strings"
)

// AbsolutePath returns the cleaned absolute form of p.
func AbsolutePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return normalizePath(abs), nil
}

// RelativePath returns target relative to baseDir.
// Targets outside baseDir fall back to their absolute path.
func RelativePath(target, baseDir string) (string, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil {
		return normalizePath(absTarget), nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(absTarget), nil
	}
	return normalizePath(rel), nil
}

// BaseName returns the last element of p.
func BaseName(p string) string {
	return filepath.Base(p)
}

// FormatPath форматирует путь к файлу в зависимости от режима.
// mode: "absolute", "relative", "basename", "auto"
// baseDir: базовая директория для относительных путей (игнорируется для других режимов)
func FormatPath(p, mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(p); err == nil {
			return abs
		}
		return p

	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(p, baseDir); err == nil {
			return rel
		}
		return p

	case "basename":
		return BaseName(p)

	case "auto":
		// Auto: если путь короткий или относительный - как есть, иначе basename
		if len(p) < 40 || !filepath.IsAbs(p) {
			return p
		}
		return BaseName(p)

	default:
		return p
	}
}
