package source

import "time"

// FileFlags encodes how the content of a source file was normalized on load.
type FileFlags uint8 // метаданные

const (
	// FileVirtual indicates the file was added from memory (script, module loader, test).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска
	FileHadBOM
	FileNormalizedCRLF
	FileDecodedUTF16
)

// Meta is the filesystem snapshot taken when a file was read.
// Freshness checks compare it against a live stat.
type Meta struct {
	Size    int64
	ModTime time.Time
}

// File captures the normalized content of a single source file split into lines.
type File struct {
	Path    string
	Content []byte
	// Lines are newline-preserving: every line but possibly the last ends in '\n'.
	Lines []string
	Meta  *Meta // nil for virtual files
	Flags FileFlags
}

// LineCount returns the number of physical lines.
func (f *File) LineCount() int {
	if f == nil {
		return 0
	}
	return len(f.Lines)
}
