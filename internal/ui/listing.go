package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	markerEligible = "●"
	markerCurrent  = "▶"
)

// Listing renders a window of source lines with a line-number gutter.
type Listing struct {
	// First is the line number of Lines[0].
	First int
	// Lines hold text without trailing newlines; they may carry ANSI escapes.
	Lines []string
	// Eligible marks lines where a breakpoint can be set.
	Eligible map[int]bool
	// Current is highlighted with an arrow; 0 means none.
	Current int
	// Width bounds plain lines; 0 disables truncation.
	Width int
}

var (
	gutterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	eligibleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	currentStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
)

// Render returns the listing, one line per row, each row newline-terminated.
func (l Listing) Render() string {
	if len(l.Lines) == 0 {
		return ""
	}
	first := max(l.First, 1)
	last := first + len(l.Lines) - 1
	digits := len(strconv.Itoa(last))
	// marker, space, number, two spaces
	gutterWidth := 1 + 1 + digits + 2

	var b strings.Builder
	for i, text := range l.Lines {
		n := first + i
		marker := " "
		switch {
		case n == l.Current:
			marker = currentStyle.Render(markerCurrent)
		case l.Eligible[n]:
			marker = eligibleStyle.Render(markerEligible)
		}
		num := gutterStyle.Render(fmt.Sprintf("%*d", digits, n))
		if l.Width > 0 && !strings.Contains(text, "\x1b") {
			text = clip(text, l.Width-gutterWidth)
		}
		fmt.Fprintf(&b, "%s %s  %s\n", marker, num, text)
	}
	return b.String()
}

func clip(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	return runewidth.Truncate(value, width, "")
}

// Window returns the 1-based inclusive range [from, to] clamped to size.
// A non-positive to means "from plus span lines".
func Window(from, to, size, span int) (int, int, bool) {
	if size <= 0 {
		return 0, 0, false
	}
	if from < 1 {
		from = 1
	}
	if to <= 0 {
		to = from + span - 1
	}
	if to > size {
		to = size
	}
	if from > to {
		return 0, 0, false
	}
	return from, to, true
}
