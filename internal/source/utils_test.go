package source

import (
	"path/filepath"
	"slices"
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		in, want string
		changed  bool
	}{
		{"a\nb\n", "a\nb\n", false},
		{"a\r\nb\r\n", "a\nb\n", true},
		{"a\rb\r\n", "a\rb\n", true},
		{"\r", "\r", false},
	}
	for _, tt := range tests {
		got, changed := normalizeCRLF([]byte(tt.in))
		if string(got) != tt.want || changed != tt.changed {
			t.Errorf("normalizeCRLF(%q) = %q, %v; want %q, %v", tt.in, got, changed, tt.want, tt.changed)
		}
	}
}

func TestDecodeBOM(t *testing.T) {
	tests := []struct {
		name  string
		in    []byte
		want  string
		flags FileFlags
	}{
		{"plain", []byte("x = 1\n"), "x = 1\n", 0},
		{"utf8", append([]byte{0xEF, 0xBB, 0xBF}, "x\n"...), "x\n", FileHadBOM},
		{"utf16le", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "hi", FileHadBOM | FileDecodedUTF16},
		{"utf16be", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, "hi", FileHadBOM | FileDecodedUTF16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, flags := decodeBOM(tt.in)
			if string(got) != tt.want || flags != tt.flags {
				t.Errorf("got %q, %b; want %q, %b", got, flags, tt.want, tt.flags)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	got := splitLines([]byte("one\n\nthree"))
	if want := []string{"one\n", "\n", "three"}; !slices.Equal(got, want) {
		t.Errorf("splitLines = %q, want %q", got, want)
	}
	if got := splitLines(nil); len(got) != 0 {
		t.Errorf("splitLines(nil) = %q", got)
	}
}

func TestRelativePath(t *testing.T) {
	base := filepath.Join(t.TempDir(), "base")
	tests := []struct {
		target string
		want   string
	}{
		{filepath.Join(base, "pkg", "mod.py"), "pkg/mod.py"},
		{base, "."},
		// вне base остаётся абсолютный путь
		{filepath.Join(filepath.Dir(base), "other", "mod.py"), normalizePath(filepath.Join(filepath.Dir(base), "other", "mod.py"))},
	}
	for _, tt := range tests {
		got, err := RelativePath(tt.target, base)
		if err != nil {
			t.Fatalf("RelativePath(%q): %v", tt.target, err)
		}
		if got != tt.want {
			t.Errorf("RelativePath(%q) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestFormatPath(t *testing.T) {
	long := "/very/long/directory/name/that/keeps/going/on/mod.py"
	tests := []struct {
		mode, in, want string
	}{
		{"keep", "rel/mod.py", "rel/mod.py"},
		{"basename", "/src/pkg/mod.py", "mod.py"},
		{"auto", "rel/mod.py", "rel/mod.py"},
		{"auto", long, "mod.py"},
		{"absolute", "/src/./pkg/../mod.py", "/src/mod.py"},
		{"keep", "<stdin>", "<stdin>"},
	}
	for _, tt := range tests {
		if got := FormatPath(tt.in, tt.mode, ""); got != tt.want {
			t.Errorf("FormatPath(%q, %q) = %q, want %q", tt.in, tt.mode, got, tt.want)
		}
	}
}
