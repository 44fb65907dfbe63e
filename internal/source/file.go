package source

import (
	"fmt"
	"os"
)

// Read loads a file from disk, decodes a BOM (UTF-8 or UTF-16), normalizes CRLF
// and splits the result into newline-preserving lines.
// The stat snapshot is taken before the read so that a write racing with the
// load shows up as a change on the next freshness check.
func Read(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: is a directory", path)
	}
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f := FromBytes(path, content, 0)
	f.Meta = &Meta{Size: info.Size(), ModTime: info.ModTime()}
	return f, nil
}

// FromBytes normalizes raw bytes into a File without touching the filesystem.
func FromBytes(path string, content []byte, flags FileFlags) *File {
	content, bomFlags := decodeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags |= bomFlags
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return &File{
		Path:    path,
		Content: content,
		Lines:   splitLines(content),
		Flags:   flags,
	}
}

// FromText adds a virtual file (script text, module loader output) with the FileVirtual flag.
func FromText(name, text string) *File {
	return FromBytes(name, []byte(text), FileVirtual)
}

// Line returns the 1-based line n including its trailing newline.
func (f *File) Line(n int) (string, bool) {
	if f == nil || n < 1 || n > len(f.Lines) {
		return "", false
	}
	return f.Lines[n-1], true
}
