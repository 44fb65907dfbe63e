package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"linecache/internal/filecache"
)

type warmModel struct {
	title   string
	events  <-chan filecache.Event
	spinner spinner.Model
	prog    progress.Model
	items   []warmRow
	index   map[string]int
	width   int
	done    bool
}

type warmRow struct {
	key     string
	status  filecache.Status
	lines   int
	elapsed time.Duration
	err     error
}

type eventMsg filecache.Event
type doneMsg struct{}

// NewWarmModel returns a Bubble Tea model that renders prefetch progress.
// keys seeds the list; keys first seen in a queued event are appended.
func NewWarmModel(title string, keys []string, events <-chan filecache.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	m := &warmModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		index:   make(map[string]int, len(keys)),
		width:   80,
	}
	for _, k := range keys {
		m.track(k)
	}
	return m
}

func (m *warmModel) track(key string) int {
	if idx, ok := m.index[key]; ok {
		return idx
	}
	m.items = append(m.items, warmRow{key: key, status: filecache.StatusQueued})
	m.index[key] = len(m.items) - 1
	return len(m.items) - 1
}

func (m *warmModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *warmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(filecache.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *warmModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished(), len(m.items))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 8
	nameWidth := max(m.width-statusWidth-16, 20)
	for _, item := range m.items {
		status := styleStatus(item.status).Render(fmt.Sprintf("%8s", item.status))
		fmt.Fprintf(&b, "  %s %s%s\n", status, truncate(item.key, nameWidth), itemDetail(item))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func itemDetail(item warmRow) string {
	switch item.status {
	case filecache.StatusLoaded:
		return fmt.Sprintf("  %d lines, %.1f ms", item.lines, toMillis(item.elapsed))
	case filecache.StatusFailed:
		if item.err != nil {
			return "  " + item.err.Error()
		}
	}
	return ""
}

func (m *warmModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *warmModel) applyEvent(ev filecache.Event) tea.Cmd {
	if ev.Key == "" {
		return nil
	}
	idx := m.track(ev.Key)
	item := &m.items[idx]
	item.status = ev.Status
	item.lines = ev.Lines
	item.elapsed = ev.Elapsed
	item.err = ev.Err
	return m.prog.SetPercent(m.percent())
}

func (m *warmModel) finished() int {
	n := 0
	for _, item := range m.items {
		if item.status != filecache.StatusQueued {
			n++
		}
	}
	return n
}

func (m *warmModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	return float64(m.finished()) / float64(len(m.items))
}

func styleStatus(status filecache.Status) lipgloss.Style {
	switch status {
	case filecache.StatusLoaded:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case filecache.StatusCached:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	case filecache.StatusFailed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
