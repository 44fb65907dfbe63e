package source

import (
	"bytes"
	"path/filepath"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// normalizeCRLF заменяет \r\n на \n; одиночные \r остаются как есть.
func normalizeCRLF(content []byte) ([]byte, bool) {
	crlf := []byte("\r\n")
	if !bytes.Contains(content, crlf) {
		return content, false
	}
	return bytes.ReplaceAll(content, crlf, []byte("\n")), true
}

func removeBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, bomUTF8) {
		return content[len(bomUTF8):], true
	}
	return content, false
}

// decodeBOM strips a UTF-8 BOM or transcodes BOM-marked UTF-16 to UTF-8.
// Content without a BOM is returned untouched, whatever its encoding.
func decodeBOM(content []byte) ([]byte, FileFlags) {
	if out, ok := removeBOM(content); ok {
		return out, FileHadBOM
	}
	if !bytes.HasPrefix(content, bomUTF16LE) && !bytes.HasPrefix(content, bomUTF16BE) {
		return content, 0
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(encoding.Nop.NewDecoder()), content)
	if err != nil {
		return content, 0
	}
	return out, FileHadBOM | FileDecodedUTF16
}

// splitLines keeps each '\n' with its line. A trailing fragment without
// '\n' becomes the last line; empty content has no lines.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	parts := bytes.SplitAfter(content, []byte{'\n'})
	if len(parts[len(parts)-1]) == 0 {
		parts = parts[:len(parts)-1]
	}
	lines := make([]string, len(parts))
	for i, p := range parts {
		lines[i] = string(p)
	}
	return lines
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
