// Package highlight renders source text for terminals.
//
// A Format selects one rendering of a file's lines. Plain, TerminalLight and
// TerminalDark are built in; Style names any other chroma style. Rendered
// output always has the same number of lines as the input.
package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
)

// Kind is the closed set of format families.
type Kind uint8

const (
	KindPlain Kind = iota
	KindLight
	KindDark
	KindStyle
)

// Format selects a rendering. The zero value is Plain.
type Format struct {
	kind  Kind
	style string
}

var (
	Plain         = Format{kind: KindPlain}
	TerminalLight = Format{kind: KindLight}
	TerminalDark  = Format{kind: KindDark}
)

// Style returns a format rendering with the named chroma style.
func Style(name string) Format {
	return Format{kind: KindStyle, style: name}
}

// Kind returns the format family.
func (f Format) Kind() Kind { return f.kind }

// StyleName returns the chroma style of a KindStyle format.
func (f Format) StyleName() string { return f.style }

// IsPlain reports whether f leaves text unchanged.
func (f Format) IsPlain() bool { return f.kind == KindPlain }

// Key returns a stable string identifying f.
func (f Format) Key() string {
	switch f.kind {
	case KindLight:
		return "light"
	case KindDark:
		return "dark"
	case KindStyle:
		return "style:" + f.style
	default:
		return "plain"
	}
}

// String implements fmt.Stringer.
func (f Format) String() string { return f.Key() }

// ParseFormat accepts plain, light, dark, style:<name> or a bare chroma style name.
func ParseFormat(s string) (Format, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", "plain", "none":
		return Plain, nil
	case "light", "terminal", "terminal-light":
		return TerminalLight, nil
	case "dark", "terminal-dark":
		return TerminalDark, nil
	default:
		name := strings.TrimPrefix(v, "style:")
		if _, ok := styles.Registry[name]; !ok {
			return Plain, fmt.Errorf("unknown format %q", s)
		}
		return Style(name), nil
	}
}
