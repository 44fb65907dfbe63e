package config

import (
	"fmt"

	"linecache/internal/highlight"
	"linecache/internal/linecache"
	"linecache/internal/remap"
	"linecache/internal/trace"
)

// CacheConfig builds the linecache.Config described by c.
func (c *Config) CacheConfig(tracer trace.Tracer) (linecache.Config, error) {
	eager, err := highlight.ParseFormat(c.Cache.EagerFormat)
	if err != nil {
		return linecache.Config{}, fmt.Errorf("[cache].eager_format: %w", err)
	}
	search := make([]string, 0, len(c.Cache.SearchPath))
	for _, dir := range c.Cache.SearchPath {
		search = append(search, c.abs(dir))
	}
	return linecache.Config{
		SearchPath:  search,
		SourceExts:  c.Cache.SourceExts,
		ArtifactTag: c.Cache.ArtifactTag,
		EagerFormat: eager,
		NoEager:     eager.IsPlain(),
		Colorizer:   highlight.NewChroma(c.Highlight.LightStyle, c.Highlight.DarkStyle),
		Tracer:      tracer,
		Workers:     c.Cache.Workers,
	}, nil
}

// Apply registers the configured aliases, patterns and line maps on lc.
func (c *Config) Apply(lc *linecache.Cache) error {
	for _, a := range c.Aliases {
		lc.RemapFile(c.abs(a.Path), a.Name)
	}
	for i, p := range c.Patterns {
		if err := lc.AddRemapPattern(p.Match, p.Replace); err != nil {
			return fmt.Errorf("[[pattern]] #%d: %w", i+1, err)
		}
	}
	for _, lm := range c.LineMaps {
		pairs := make([]remap.Pair, 0, len(lm.Pairs))
		for _, p := range lm.Pairs {
			if len(p) != 2 {
				continue
			}
			pairs = append(pairs, remap.Pair{From: p[0], To: p[1]})
		}
		lc.RemapFileLines(c.abs(lm.From), c.abs(lm.To), pairs)
	}
	return nil
}

// Open builds a cache from c and applies its remaps.
func (c *Config) Open(tracer trace.Tracer) (*linecache.Cache, error) {
	lcfg, err := c.CacheConfig(tracer)
	if err != nil {
		return nil, err
	}
	lc := linecache.New(lcfg)
	if err := c.Apply(lc); err != nil {
		return nil, err
	}
	return lc, nil
}
