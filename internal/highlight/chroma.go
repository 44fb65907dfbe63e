package highlight

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	DefaultLightStyle = "github"
	DefaultDarkStyle  = "monokai"
	defaultFormatter  = "terminal256"
)

// Colorizer renders a whole source text. name is used to pick a lexer.
type Colorizer interface {
	Colorize(name, text string, f Format) (string, error)
}

// Chroma is the chroma-backed Colorizer.
type Chroma struct {
	LightStyle string
	DarkStyle  string
	Formatter  string // chroma formatter name, terminal256 when empty
}

// NewChroma returns a Chroma colorizer; empty style names use the defaults.
func NewChroma(light, dark string) *Chroma {
	if light == "" {
		light = DefaultLightStyle
	}
	if dark == "" {
		dark = DefaultDarkStyle
	}
	return &Chroma{LightStyle: light, DarkStyle: dark, Formatter: defaultFormatter}
}

// Colorize implements Colorizer.
func (c *Chroma) Colorize(name, text string, f Format) (string, error) {
	if f.IsPlain() {
		return text, nil
	}
	lexer := lexers.Match(filepath.Base(name))
	if lexer == nil {
		lexer = lexers.Analyse(text)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(c.styleName(f))
	if style == nil {
		style = styles.Fallback
	}
	formatterName := c.Formatter
	if formatterName == "" {
		formatterName = defaultFormatter
	}
	formatter := formatters.Get(formatterName)

	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return "", fmt.Errorf("highlight %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, it); err != nil {
		return "", fmt.Errorf("highlight %s: %w", name, err)
	}
	return buf.String(), nil
}

func (c *Chroma) styleName(f Format) string {
	switch f.Kind() {
	case KindDark:
		if c.DarkStyle != "" {
			return c.DarkStyle
		}
		return DefaultDarkStyle
	case KindStyle:
		return f.StyleName()
	default:
		if c.LightStyle != "" {
			return c.LightStyle
		}
		return DefaultLightStyle
	}
}
