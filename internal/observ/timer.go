// Package observ measures how long the phases of a command take.
package observ

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"
	"time"
)

// Phase is one measured step of a command (load, index, render).
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer collects phases in the order they began. A nil *Timer records
// nothing, so callers can leave it unset when --timings is off.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

func NewTimer() *Timer { return &Timer{} }

// Begin opens a phase and returns the handle End expects.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	idx := len(t.phases) - 1
	t.mu.Unlock()
	return idx
}

// End closes the phase idx; unknown handles are ignored.
func (t *Timer) End(idx int, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx >= 0 && idx < len(t.phases) {
		t.phases[idx].Dur = time.Since(t.phases[idx].Start)
		t.phases[idx].Note = note
	}
}

// Measure times fn; its return value becomes the phase note.
func (t *Timer) Measure(name string, fn func() string) {
	idx := t.Begin(name)
	t.End(idx, fn())
}

// Report is a snapshot of the recorded phases.
type Report struct {
	Total  time.Duration
	Phases []Phase
}

// Report copies the phases recorded so far.
func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	r := Report{Phases: append([]Phase(nil), t.phases...)}
	for _, p := range r.Phases {
		r.Total += p.Dur
	}
	return r
}

// Summary renders the phases as an aligned table ending with the total.
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', tabwriter.AlignRight)
	for _, p := range r.Phases {
		note := ""
		if p.Note != "" {
			note = "  // " + p.Note
		}
		fmt.Fprintf(tw, "  %s\t%.2f ms\t%s\n", p.Name, millis(p.Dur), note)
	}
	fmt.Fprintf(tw, "  total\t%.2f ms\t\n", millis(r.Total))
	_ = tw.Flush()
	return sb.String()
}

// WriteSummary writes Summary to w when any phase was recorded.
func (t *Timer) WriteSummary(w io.Writer) error {
	if len(t.Report().Phases) == 0 {
		return nil
	}
	_, err := io.WriteString(w, t.Summary())
	return err
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
