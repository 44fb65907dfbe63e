package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"linecache/internal/config"
	"linecache/internal/highlight"
	"linecache/internal/linecache"
	"linecache/internal/observ"
	"linecache/internal/prof"
	"linecache/internal/source"
	"linecache/internal/trace"
)

// session is what every command works with: one cache built from the
// project config plus the output settings of the global flags.
type session struct {
	cfg    *config.Config
	cache  *linecache.Cache
	timer  *observ.Timer // nil without --timings
	tracer trace.Tracer
	format highlight.Format
	color  bool
	paths  string // source.FormatPath mode for printed keys
}

// show formats a cache key for output.
func (s *session) show(key string) string {
	return source.FormatPath(key, s.paths, "")
}

// opts returns query options in the session's output format.
func (s *session) opts() linecache.Options {
	return linecache.Options{Format: s.format}
}

// openSession sets up tracing, loads the config and builds the cache.
// The returned cleanup prints timings and flushes the tracer.
func openSession(cmd *cobra.Command) (*session, func(), error) {
	flags := cmd.Root().PersistentFlags()

	traceCleanup, err := setupTracing(cmd)
	if err != nil {
		return nil, nil, err
	}
	tracer := trace.FromContext(cmd.Context())

	s := &session{tracer: tracer}
	fail := func(err error) (*session, func(), error) {
		traceCleanup()
		return nil, nil, err
	}

	cfgPath, err := flags.GetString("config")
	if err != nil {
		return fail(fmt.Errorf("failed to get config flag: %w", err))
	}
	if cfgPath != "" {
		s.cfg, err = config.Load(cfgPath)
	} else {
		s.cfg, _, err = config.Discover(".")
	}
	if err != nil {
		return fail(err)
	}

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return fail(fmt.Errorf("failed to get color flag: %w", err))
	}
	colorMode, err := parseToggle("color", colorFlag)
	if err != nil {
		return fail(err)
	}
	s.color = colorMode.enabled(os.Stdout)
	color.NoColor = !s.color

	style, err := flags.GetString("style")
	if err != nil {
		return fail(fmt.Errorf("failed to get style flag: %w", err))
	}
	if style == "" {
		style = s.cfg.Cache.EagerFormat
	}
	s.format, err = highlight.ParseFormat(style)
	if err != nil {
		return fail(fmt.Errorf("invalid --style: %w", err))
	}
	if !s.color {
		s.format = highlight.Plain
	}

	lcfg, err := s.cfg.CacheConfig(tracer)
	if err != nil {
		return fail(err)
	}
	// eager rendering only pays off when output is colored
	lcfg.EagerFormat = s.format
	lcfg.NoEager = s.format.IsPlain()
	s.cache = linecache.New(lcfg)
	if err := s.cfg.Apply(s.cache); err != nil {
		return fail(err)
	}

	if s.paths, err = flags.GetString("paths"); err != nil {
		return fail(fmt.Errorf("failed to get paths flag: %w", err))
	}
	switch s.paths {
	case "keep", "absolute", "relative", "basename", "auto":
	default:
		return fail(fmt.Errorf("invalid --paths value %q (expected keep|absolute|relative|basename|auto)", s.paths))
	}

	timings, err := flags.GetBool("timings")
	if err != nil {
		return fail(fmt.Errorf("failed to get timings flag: %w", err))
	}
	if timings {
		s.timer = observ.NewTimer()
	}

	profCfg, err := readProfileFlags(cmd)
	if err != nil {
		return fail(err)
	}
	var profiling *prof.Session
	if profCfg.Enabled() {
		if profiling, err = prof.Start(profCfg); err != nil {
			return fail(err)
		}
	}

	interval, err := flags.GetDuration("trace-heartbeat")
	if err != nil {
		_ = profiling.Stop()
		return fail(fmt.Errorf("failed to get trace-heartbeat flag: %w", err))
	}
	cache := s.cache
	hb := trace.StartHeartbeat(tracer, interval, func() map[string]string {
		return map[string]string{"files": strconv.Itoa(len(cache.CachedFiles()))}
	})

	cleanup := func() {
		hb.Stop()
		if err := profiling.Stop(); err != nil {
			warnf(cmd.ErrOrStderr(), "profiling: %v", err)
		}
		if s.timer != nil {
			printTimings(cmd.ErrOrStderr(), s.timer)
		}
		traceCleanup()
	}
	return s, cleanup, nil
}

// withSession runs fn with an open session and always cleans up. The
// command runs inside a cache-scope span named after it.
func withSession(cmd *cobra.Command, fn func(s *session) error) error {
	s, cleanup, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	span, ctx := trace.Start(cmd.Context(), trace.ScopeCache, cmd.Name())
	cmd.SetContext(ctx)
	err = fn(s)
	span.Fail(err)
	return err
}

func readProfileFlags(cmd *cobra.Command) (prof.Config, error) {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return cfg, fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	if cfg.Mem, err = flags.GetString("memprofile"); err != nil {
		return cfg, fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	if cfg.Runtime, err = flags.GetString("runtime-trace"); err != nil {
		return cfg, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	return cfg, nil
}
