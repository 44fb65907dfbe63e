package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLevelAllows(t *testing.T) {
	fail := &Event{Kind: KindPoint, Scope: ScopeLine, Err: true}
	beat := &Event{Kind: KindHeartbeat, Scope: ScopeCache}
	tests := []struct {
		level Level
		ev    *Event
		want  bool
	}{
		{LevelOff, fail, false},
		{LevelError, fail, true},
		{LevelError, &Event{Kind: KindPoint, Scope: ScopeCache}, false},
		{LevelPhase, &Event{Kind: KindPoint, Scope: ScopeCache}, true},
		{LevelPhase, &Event{Kind: KindPoint, Scope: ScopeFile}, false},
		{LevelDetail, &Event{Kind: KindPoint, Scope: ScopeFile}, true},
		{LevelDetail, &Event{Kind: KindPoint, Scope: ScopeLine}, false},
		{LevelDebug, &Event{Kind: KindPoint, Scope: ScopeLine}, true},
		{LevelError, beat, true},
		{LevelPhase, nil, false},
	}
	for _, tt := range tests {
		if got := tt.level.Allows(tt.ev); got != tt.want {
			t.Errorf("%s.Allows(%+v) = %v, want %v", tt.level, tt.ev, got, tt.want)
		}
	}
}

func TestParsers(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Errorf("ParseLevel: %v %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected level error")
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Errorf("ParseMode: %v %v", m, err)
	}
	if f, err := ParseFormat("json"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat: %v %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected format error")
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)

	Point(tr, ScopeFile, "load", "/tmp/a.py", map[string]string{"lines": "3"})
	Point(tr, ScopeLine, "getline", "/tmp/a.py", nil) // filtered
	Fail(tr, ScopeLine, "reload", errors.New("permission denied"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 events, got %d: %q", len(lines), buf.String())
	}
	var first, second jsonEvent
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if first.Name != "load" || first.Scope != "file" || first.Extra["lines"] != "3" {
		t.Errorf("first = %+v", first)
	}
	if !second.Err || second.Detail != "permission denied" {
		t.Errorf("second = %+v", second)
	}
	if second.Seq <= first.Seq {
		t.Errorf("sequence not increasing: %d then %d", first.Seq, second.Seq)
	}
}

type failingWriter struct{ calls int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errors.New("disk full")
}

func TestStreamTracerStopsAfterWriteError(t *testing.T) {
	w := &failingWriter{}
	tr := NewStreamTracer(w, LevelDebug, FormatText)
	for range 3 {
		Point(tr, ScopeCache, "check", "", nil)
	}
	if w.calls != 1 {
		t.Fatalf("expected one write attempt, got %d", w.calls)
	}
}

func TestFormatText(t *testing.T) {
	ev := &Event{
		Time:  processStart.Add(1500 * time.Microsecond),
		Kind:  KindSpanEnd,
		Scope: ScopeCache,
		Name:  "check",
		Extra: map[string]string{"reloaded": "1", "checked": "2"},
	}
	got := string(FormatEvent(ev, FormatText))
	if !strings.Contains(got, "1.500ms") || !strings.Contains(got, "← check") {
		t.Errorf("text = %q", got)
	}
	if strings.Index(got, "checked=2") > strings.Index(got, "reloaded=1") {
		t.Errorf("extra keys not sorted: %q", got)
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(tr, ScopeLine, name, "", nil)
	}
	if tr.Len() != 2 {
		t.Fatalf("len = %d", tr.Len())
	}
	snap := tr.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("snapshot = %+v", snap)
	}
	var buf bytes.Buffer
	if err := tr.Dump(&buf, FormatNDJSON); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("dump = %q", buf.String())
	}
}

func TestMultiTracerFansOut(t *testing.T) {
	var buf bytes.Buffer
	multi := NewMultiTracer(LevelPhase, NewStreamTracer(&buf, LevelPhase, FormatText), NewRingTracer(8, LevelPhase))
	span := Begin(multi, ScopeCache, "prefetch", 0)
	span.WithExtra("files", "2").End("")

	ring := multi.Ring()
	if ring == nil || ring.Len() != 2 {
		t.Fatalf("ring = %v", ring)
	}
	if strings.Count(buf.String(), "prefetch") != 2 {
		t.Fatalf("stream = %q", buf.String())
	}
}

func TestBeginBelowLevelIsNop(t *testing.T) {
	tr := NewRingTracer(4, LevelPhase)
	span := Begin(tr, ScopeLine, "getline", 0)
	span.WithExtra("k", "v").End("")
	if tr.Len() != 0 {
		t.Fatalf("expected no events, got %d", tr.Len())
	}
}

func TestNewByMode(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("off level: %v %v", tr, err)
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := tr.(*MultiTracer); !ok {
		t.Fatalf("expected MultiTracer, got %T", tr)
	}
	if _, err := New(Config{Level: LevelPhase, Mode: StorageMode(42)}); err == nil {
		t.Fatal("expected unknown mode error")
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("expected Nop without tracer")
	}
	tr := NewRingTracer(1, LevelDebug)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatal("tracer not propagated")
	}
}

func TestHeartbeat(t *testing.T) {
	tr := NewRingTracer(16, LevelError)
	hb := StartHeartbeat(tr, 5*time.Millisecond, func() map[string]string {
		return map[string]string{"files": "3"}
	})
	if hb == nil {
		t.Fatal("expected heartbeat")
	}
	deadline := time.Now().Add(2 * time.Second)
	for tr.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	hb.Stop()
	hb.Stop()
	if tr.Len() == 0 {
		t.Fatal("no heartbeat recorded")
	}
	if got := tr.Snapshot()[0]; got.Kind != KindHeartbeat || got.Extra["files"] != "3" {
		t.Fatalf("event = %+v", got)
	}
	if StartHeartbeat(Nop, time.Millisecond, nil) != nil {
		t.Fatal("expected nil heartbeat for Nop")
	}
}

func TestStartNestsSpans(t *testing.T) {
	tr := NewRingTracer(16, LevelDetail)
	ctx := WithTracer(context.Background(), tr)

	outer, ctx := Start(ctx, ScopeCache, "warm")
	if ParentFrom(ctx) != outer.ID() || outer.ID() == 0 {
		t.Fatalf("ctx span = %d, outer = %d", ParentFrom(ctx), outer.ID())
	}
	inner, _ := Start(ctx, ScopeFile, "load")
	child := outer.Child(ScopeFile, "index")
	child.Fail(errors.New("no code"))
	inner.End("")
	outer.End("")

	snap := tr.Snapshot()
	if len(snap) != 6 {
		t.Fatalf("expected 6 events, got %d", len(snap))
	}
	for _, ev := range snap[1:5] {
		if ev.Kind == KindSpanBegin && ev.ParentID != outer.ID() {
			t.Errorf("%s parent = %d, want %d", ev.Name, ev.ParentID, outer.ID())
		}
	}
	failed := snap[3]
	if failed.Name != "index" || !failed.Err || failed.Detail != "no code" {
		t.Errorf("failed event = %+v", failed)
	}
	if ParentFrom(context.Background()) != 0 {
		t.Error("expected no parent without span")
	}
}
