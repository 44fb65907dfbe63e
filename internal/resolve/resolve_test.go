package resolve

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve(t *testing.T) {
	r := New([]string{".py", ".sg"}, "v1", nil)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"source path unchanged", "/tmp/prog.py", "/tmp/prog.py"},
		{"artifact with matching tag", "/tmp/.units/prog.py.v1.lcu", "/tmp/prog.py"},
		{"artifact with other tag", "/tmp/.units/prog.py.v7.lcu", "/tmp/prog.py"},
		{"artifact without cache dir", "/tmp/prog.sg.lcu", "/tmp/prog.sg"},
		{"relative artifact", ".units/prog.py.v1.lcu", "prog.py"},
		{"root artifact", "/prog.py.lcu", "/prog.py"},
		{"unknown name", "another-name", "another-name"},
		{"module without locator", "os.path", "os.path"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.in); got != filepath.FromSlash(tt.want) && got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestArtifactRoundTrip(t *testing.T) {
	r := New(nil, "", nil)
	src := filepath.Join("/src", "pkg", "mod.py")
	artifact := r.ArtifactFor(src)
	if want := filepath.Join("/src", "pkg", ArtifactDir, "mod.py."+DefaultTag+ArtifactExt); artifact != want {
		t.Fatalf("ArtifactFor = %q, want %q", artifact, want)
	}
	if back := r.Resolve(artifact); back != src {
		t.Errorf("Resolve(ArtifactFor(src)) = %q, want %q", back, src)
	}
}

func TestLocator(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "pkg", "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	mod := filepath.Join(dir, "pkg", "mod.py")
	pkg := filepath.Join(dir, "pkg", "sub", "__init__.py")
	for _, p := range []string{mod, pkg} {
		if err := os.WriteFile(p, []byte("x = 1\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}

	loc := DirLocator{Dirs: []string{filepath.Join(dir, "missing"), dir}, Exts: []string{".py"}, PackageFile: "__init__"}
	r := New([]string{".py"}, "", loc)

	if got := r.Resolve("pkg.mod"); got != mod {
		t.Errorf("Resolve(pkg.mod) = %q, want %q", got, mod)
	}
	if got := r.Resolve("pkg.sub"); got != pkg {
		t.Errorf("Resolve(pkg.sub) = %q, want %q", got, pkg)
	}
	if got := r.Resolve("pkg.nothing"); got != "pkg.nothing" {
		t.Errorf("unresolved module should fall through, got %q", got)
	}
	if got := r.Resolve("not-a-module"); got != "not-a-module" {
		t.Errorf("non identifier should fall through, got %q", got)
	}
}

func TestLocatorFunc(t *testing.T) {
	calls := 0
	r := New(nil, "", LocatorFunc(func(name string) (string, bool) {
		calls++
		return "/located/" + name + ".py", true
	}))
	if got := r.Resolve("json"); got != "/located/json.py" {
		t.Errorf("Resolve(json) = %q", got)
	}
	r.Resolve("/abs/file.py")
	if calls != 1 {
		t.Errorf("locator should only see module names, called %d times", calls)
	}
}
