package observ

import (
	"bytes"
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.Measure("load", func() string { return "3 files" })
	idx := tm.Begin("index")
	tm.End(idx, "")
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %d", len(r.Phases))
	}
	if r.Phases[0].Name != "load" || r.Phases[0].Note != "3 files" {
		t.Errorf("first phase = %+v", r.Phases[0])
	}
	if r.Total < r.Phases[0].Dur {
		t.Errorf("total %v below a phase", r.Total)
	}

	s := tm.Summary()
	for _, want := range []string{"timings:", "load", "// 3 files", "total"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary misses %q:\n%s", want, s)
		}
	}
}

func TestTimerEmptyAndNil(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTimer().WriteSummary(&buf); err != nil || buf.Len() != 0 {
		t.Errorf("empty timer wrote %q, %v", buf.String(), err)
	}
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	if len(tm.Report().Phases) != 0 {
		t.Errorf("nil timer recorded phases")
	}
}
