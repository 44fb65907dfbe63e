package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"linecache/internal/highlight"
	"linecache/internal/linecache"
	"linecache/internal/remap"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

const sample = `
[cache]
search_path = ["src"]
source_exts = ["py", ".tpl"]
eager_format = "dark"

[highlight]
light_style = "github"

[watch]
debounce = "50ms"

[[alias]]
name = "another-name"
path = "src/prog.py"

[[pattern]]
match = "^/code"
replace = "/tmp/project"

[[line_map]]
from = "a.tpl"
to = "a.py"
pairs = [[1, 3], [4, 5]]
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	writeFile(t, path, sample)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Root != dir {
		t.Errorf("root = %q, want %q", cfg.Root, dir)
	}
	if got := cfg.Cache.SourceExts; len(got) != 2 || got[0] != ".py" || got[1] != ".tpl" {
		t.Errorf("source exts = %v", got)
	}
	if cfg.Cache.ArtifactTag != "v1" {
		t.Errorf("default artifact tag lost: %q", cfg.Cache.ArtifactTag)
	}
	if cfg.Highlight.DarkStyle != "monokai" {
		t.Errorf("default dark style lost: %q", cfg.Highlight.DarkStyle)
	}
	if d, _ := cfg.Debounce(); d != 50*time.Millisecond {
		t.Errorf("debounce = %v", d)
	}
	if len(cfg.Aliases) != 1 || len(cfg.Patterns) != 1 || len(cfg.LineMaps) != 1 {
		t.Fatalf("tables not decoded: %+v", cfg)
	}
	if got := cfg.LineMaps[0].Pairs; len(got) != 2 || got[1][0] != 4 || got[1][1] != 5 {
		t.Errorf("pairs = %v", got)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "[cache]\nsearch_paths = [\"x\"]\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "search_paths") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad format", func(c *Config) { c.Cache.EagerFormat = "no-such-style" }, "eager_format"},
		{"bad style", func(c *Config) { c.Highlight.DarkStyle = "no-such-style" }, "[highlight]"},
		{"bad debounce", func(c *Config) { c.Watch.Debounce = "soon" }, "debounce"},
		{"alias without path", func(c *Config) { c.Aliases = []AliasConfig{{Name: "x"}} }, "[[alias]] #1"},
		{"bad regexp", func(c *Config) { c.Patterns = []PatternConfig{{Match: "("}} }, "[[pattern]] #1"},
		{"bad pair", func(c *Config) {
			c.LineMaps = []LineMapConfig{{From: "a", To: "b", Pairs: [][]int{{1}}}}
		}, "pair 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateFillsWorkers(t *testing.T) {
	cfg := Default()
	cfg.Cache.Workers = -1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Cache.Workers != 4 {
		t.Fatalf("workers = %d", cfg.Cache.Workers)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "")
	deep := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}
	path, ok, err := Find(deep)
	if err != nil || !ok {
		t.Fatalf("Find: %v %v", ok, err)
	}
	if path != filepath.Join(root, FileName) {
		t.Fatalf("path = %q", path)
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	cfg, ok, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	// a linecache.toml above the temp dir would be picked up; only check defaults when none was found
	if !ok && cfg.Cache.EagerFormat != "light" {
		t.Fatalf("expected defaults, got %+v", cfg.Cache)
	}
}

func TestOpenAppliesRemaps(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "prog.py"), "a = 1\nb = 2\n")
	path := filepath.Join(dir, FileName)
	writeFile(t, path, sample)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	lcfg, err := cfg.CacheConfig(nil)
	if err != nil {
		t.Fatalf("CacheConfig: %v", err)
	}
	if lcfg.EagerFormat != highlight.TerminalDark {
		t.Errorf("eager format = %v", lcfg.EagerFormat)
	}
	if len(lcfg.SearchPath) != 1 || lcfg.SearchPath[0] != filepath.Join(dir, "src") {
		t.Errorf("search path = %v", lcfg.SearchPath)
	}

	lc, err := cfg.Open(nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := lc.IsMapped("another-name"); got != remap.MappedFile {
		t.Errorf("alias kind = %v", got)
	}
	line, ok := lc.GetLine("another-name", 2, linecache.Options{})
	if !ok || line != "b = 2" {
		t.Errorf("GetLine via alias = %q, %v", line, ok)
	}
	if got := lc.RemapPattern("/code/x.py"); got != "/tmp/project/x.py" {
		t.Errorf("pattern rewrite = %q", got)
	}
}
