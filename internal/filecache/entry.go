package filecache

import (
	"time"

	"linecache/internal/highlight"
	"linecache/internal/lineindex"
	"linecache/internal/source"
)

// Origin records which load strategy produced an entry.
type Origin uint8

const (
	OriginDisk Origin = iota + 1
	OriginAlias
	OriginModule
	OriginSearch
)

// String returns the string representation of Origin.
func (o Origin) String() string {
	switch o {
	case OriginDisk:
		return "disk"
	case OriginAlias:
		return "alias"
	case OriginModule:
		return "module"
	case OriginSearch:
		return "search"
	default:
		return "unknown"
	}
}

// Entry is one cached file. Entries are never modified after they are
// installed; a reload installs a new one.
type Entry struct {
	Key      string   // canonical path the entry is cached under
	Path     string   // path actually read
	Lines    []string // newline-preserving, shared: do not modify
	Meta     *source.Meta
	Origin   Origin
	Flags    source.FileFlags
	LoadedAt time.Time
}

// Size returns the number of physical lines.
func (e *Entry) Size() int {
	if e == nil {
		return 0
	}
	return len(e.Lines)
}

// derived holds everything computed from one Entry.
type derived struct {
	variants map[highlight.Format][]string
	digest   string
	index    *lineindex.Index
}

func newEntry(key, path string, f *source.File, origin Origin) *Entry {
	return &Entry{
		Key:      key,
		Path:     path,
		Lines:    f.Lines,
		Meta:     f.Meta,
		Origin:   origin,
		Flags:    f.Flags,
		LoadedAt: time.Now(),
	}
}
