package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "testdata.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestRead(t *testing.T) {
	path := writeTemp(t, "a\nb\n")

	file, err := Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if string(file.Content) != "a\nb\n" {
		t.Errorf("Expected file content 'a\\nb\\n', got %q", string(file.Content))
	}
	if len(file.Lines) != 2 || file.Lines[0] != "a\n" || file.Lines[1] != "b\n" {
		t.Errorf("unexpected lines %q", file.Lines)
	}
	if file.Meta == nil || file.Meta.Size != 4 {
		t.Errorf("expected stat snapshot with size 4, got %+v", file.Meta)
	}
	if file.Flags&FileVirtual != 0 {
		t.Error("disk file must not be flagged virtual")
	}
}

func TestReadBOM(t *testing.T) {
	path := writeTemp(t, "\xEF\xBB\xBFa\nb\n")

	file, err := Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if string(file.Content) != "a\nb\n" {
		t.Errorf("Expected file content 'a\\nb\\n', got %q", string(file.Content))
	}
	if file.Flags&FileHadBOM == 0 {
		t.Error("Expected FileHadBOM flag to be set")
	}
}

func TestReadUTF16(t *testing.T) {
	// UTF-16LE: BOM + "a\nb\n"
	path := writeTemp(t, "\xFF\xFEa\x00\n\x00b\x00\n\x00")

	file, err := Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if string(file.Content) != "a\nb\n" {
		t.Errorf("Expected decoded content 'a\\nb\\n', got %q", string(file.Content))
	}
	if file.Flags&FileDecodedUTF16 == 0 {
		t.Error("Expected FileDecodedUTF16 flag to be set")
	}
}

func TestReadCRLF(t *testing.T) {
	path := writeTemp(t, "a\r\nb\r\n")

	file, err := Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if string(file.Content) != "a\nb\n" {
		t.Errorf("Expected file content 'a\\nb\\n', got %q", string(file.Content))
	}
	if file.Flags&FileNormalizedCRLF == 0 {
		t.Error("Expected FileNormalizedCRLF flag to be set")
	}
}

func TestReadMissing(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := Read(t.TempDir()); err == nil {
		t.Fatal("expected error for directory")
	}
}

// TestEdgeCases проверяет граничные случаи
func TestEdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", []string{}},
		{"no newline", "hello", []string{"hello"}},
		{"only newline", "\n", []string{"\n"}},
		{"unterminated last line", "a\nb", []string{"a\n", "b"}},
		{"lone carriage return", "a\rb\n", []string{"a\rb\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := FromText(tt.name, tt.content)
			if len(file.Lines) != len(tt.want) {
				t.Fatalf("expected %d lines, got %d (%q)", len(tt.want), len(file.Lines), file.Lines)
			}
			for i := range tt.want {
				if file.Lines[i] != tt.want[i] {
					t.Errorf("line %d: expected %q, got %q", i+1, tt.want[i], file.Lines[i])
				}
			}
			if file.Flags&FileVirtual == 0 {
				t.Error("Expected FileVirtual flag to be set")
			}
		})
	}
}

func TestFileLine(t *testing.T) {
	file := FromText("x", "one\ntwo\n")
	if got, ok := file.Line(2); !ok || got != "two\n" {
		t.Errorf("Line(2) = %q, %v", got, ok)
	}
	for _, n := range []int{0, -1, 3} {
		if _, ok := file.Line(n); ok {
			t.Errorf("Line(%d) should be out of range", n)
		}
	}
	if file.LineCount() != 2 {
		t.Errorf("LineCount = %d, want 2", file.LineCount())
	}
}

func TestChanged(t *testing.T) {
	path := writeTemp(t, "first\n")
	file, err := Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}

	changed, _, err := Changed(path, file.Meta)
	if err != nil || changed {
		t.Fatalf("fresh file reported changed=%v err=%v", changed, err)
	}

	if err := os.WriteFile(path, []byte("second, longer\n"), 0o644); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}
	changed, current, err := Changed(path, file.Meta)
	if err != nil || !changed {
		t.Fatalf("rewritten file reported changed=%v err=%v", changed, err)
	}
	if current.Size != int64(len("second, longer\n")) {
		t.Errorf("current size = %d", current.Size)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, _, err := Changed(path, file.Meta); err == nil {
		t.Error("expected error for removed file")
	}
}
