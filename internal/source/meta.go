package source

import "os"

// Stat takes a Meta snapshot of path.
func Stat(path string) (*Meta, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &Meta{Size: info.Size(), ModTime: info.ModTime()}, nil
}

// Equal reports whether two snapshots describe the same file state.
func (m *Meta) Equal(other *Meta) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.Size == other.Size && m.ModTime.Equal(other.ModTime)
}

// Changed checks whether the file at path differs from a cached snapshot.
// Returns (changed, current, err); err is set when the path cannot be stat'ed,
// in which case callers keep their last-known-good data.
func Changed(path string, cached *Meta) (bool, *Meta, error) {
	current, err := Stat(path)
	if err != nil {
		return false, nil, err
	}
	return !current.Equal(cached), current, nil
}
