// Package config loads linecache.toml, the per-project cache settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"linecache/internal/highlight"
)

// FileName is the project configuration file looked up by Find.
const FileName = "linecache.toml"

// Config is the decoded linecache.toml.
type Config struct {
	Cache     CacheConfig     `toml:"cache"`
	Highlight HighlightConfig `toml:"highlight"`
	Watch     WatchConfig     `toml:"watch"`
	Aliases   []AliasConfig   `toml:"alias"`
	Patterns  []PatternConfig `toml:"pattern"`
	LineMaps  []LineMapConfig `toml:"line_map"`

	// Root is the directory holding the file; relative paths are joined to it.
	Root string `toml:"-"`
	Path string `toml:"-"`
}

type CacheConfig struct {
	SearchPath  []string `toml:"search_path"`
	SourceExts  []string `toml:"source_exts"`
	ArtifactTag string   `toml:"artifact_tag"`
	EagerFormat string   `toml:"eager_format"`
	Workers     int      `toml:"workers"`
}

type HighlightConfig struct {
	LightStyle string `toml:"light_style"`
	DarkStyle  string `toml:"dark_style"`
}

type WatchConfig struct {
	Debounce string `toml:"debounce"`
}

type AliasConfig struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

type PatternConfig struct {
	Match   string `toml:"match"`
	Replace string `toml:"replace"`
}

type LineMapConfig struct {
	From  string  `toml:"from"`
	To    string  `toml:"to"`
	Pairs [][]int `toml:"pairs"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			SourceExts:  []string{".py"},
			ArtifactTag: "v1",
			EagerFormat: "light",
			Workers:     4,
		},
		Highlight: HighlightConfig{
			LightStyle: "github",
			DarkStyle:  "monokai",
		},
		Watch: WatchConfig{Debounce: "200ms"},
		Root:  ".",
	}
}

// Validate checks values that would otherwise fail late and fills in
// defaults for out-of-range numbers.
func (c *Config) Validate() error {
	if c.Cache.Workers <= 0 {
		c.Cache.Workers = 4
	}
	for i, ext := range c.Cache.SourceExts {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			c.Cache.SourceExts[i] = "." + ext
		}
	}
	if _, err := highlight.ParseFormat(c.Cache.EagerFormat); err != nil {
		return fmt.Errorf("[cache].eager_format: %w", err)
	}
	for _, style := range []string{c.Highlight.LightStyle, c.Highlight.DarkStyle} {
		if style == "" {
			continue
		}
		if _, err := highlight.ParseFormat(style); err != nil {
			return fmt.Errorf("[highlight]: %w", err)
		}
	}
	if _, err := c.Debounce(); err != nil {
		return err
	}

	var errs []error
	for i, a := range c.Aliases {
		if strings.TrimSpace(a.Name) == "" || strings.TrimSpace(a.Path) == "" {
			errs = append(errs, fmt.Errorf("[[alias]] #%d: name and path are required", i+1))
		}
	}
	for i, p := range c.Patterns {
		if p.Match == "" {
			errs = append(errs, fmt.Errorf("[[pattern]] #%d: match is required", i+1))
			continue
		}
		if _, err := regexp.Compile(p.Match); err != nil {
			errs = append(errs, fmt.Errorf("[[pattern]] #%d: %w", i+1, err))
		}
	}
	for i, lm := range c.LineMaps {
		if lm.From == "" || lm.To == "" {
			errs = append(errs, fmt.Errorf("[[line_map]] #%d: from and to are required", i+1))
		}
		for j, pair := range lm.Pairs {
			if len(pair) != 2 || pair[0] < 1 || pair[1] < 1 {
				errs = append(errs, fmt.Errorf("[[line_map]] #%d: pair %d must be two positive line numbers", i+1, j+1))
			}
		}
	}
	return errors.Join(errs...)
}

// Debounce returns the parsed [watch].debounce.
func (c *Config) Debounce() (time.Duration, error) {
	if c.Watch.Debounce == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0, fmt.Errorf("[watch].debounce: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("[watch].debounce: negative duration %s", d)
	}
	return d, nil
}

// Find walks up from startDir looking for linecache.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path on top of Default and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = abs
	cfg.Root = filepath.Dir(abs)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the nearest linecache.toml above startDir.
// Without one it returns Default and false.
func Discover(startDir string) (*Config, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return Default(), false, nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

// abs joins relative paths to the config root.
func (c *Config) abs(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, filepath.FromSlash(p))
}
