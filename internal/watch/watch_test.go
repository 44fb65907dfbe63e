package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type fakeChecker struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeChecker) CheckCache(name string) ([]string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return []string{name}, true
}

func TestWatcherReloadsChangedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.py")
	other := filepath.Join(dir, "other.py")
	for _, p := range []string{path, other} {
		if err := os.WriteFile(p, []byte("x = 1\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	checker := &fakeChecker{}
	reloads := make(chan []string, 4)
	w, err := New(checker, Config{
		Debounce: 20 * time.Millisecond,
		OnReload: func(keys []string) { reloads <- keys },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()
	if err := w.Add(path); err != nil {
		t.Fatalf("Add: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// untracked neighbour must not trigger a check
	if err := os.WriteFile(other, []byte("y = 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if err := os.WriteFile(path, []byte("x = 2\nx = 3\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case keys := <-reloads:
		if len(keys) != 1 || keys[0] != path {
			t.Fatalf("reloaded %v, want [%s]", keys, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload observed")
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Fatalf("Run returned %v", err)
	}
	checker.mu.Lock()
	defer checker.mu.Unlock()
	for _, c := range checker.calls {
		if c != path {
			t.Fatalf("unexpected check of %q", c)
		}
	}
}

func TestAddMissingDirectory(t *testing.T) {
	w, err := New(&fakeChecker{}, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Join(t.TempDir(), "nope", "x.py")); err == nil {
		t.Fatal("expected error for missing directory")
	}
	if len(w.Files()) != 0 {
		t.Fatalf("files = %v", w.Files())
	}
}

func TestAddDeduplicatesDirectories(t *testing.T) {
	dir := t.TempDir()
	w, err := New(&fakeChecker{}, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()
	for _, name := range []string{"a.py", "b.py", "a.py"} {
		if err := w.Add(filepath.Join(dir, name)); err != nil {
			t.Fatalf("Add %s: %v", name, err)
		}
	}
	if got := w.Files(); len(got) != 2 {
		t.Fatalf("files = %v", got)
	}
	if len(w.dirs) != 1 {
		t.Fatalf("dirs = %v", w.dirs)
	}
}

func TestNewRejectsNilChecker(t *testing.T) {
	if _, err := New(nil, Config{}); err == nil {
		t.Fatal("expected error")
	}
}
