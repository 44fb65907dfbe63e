package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"linecache/internal/filecache"
)

type warmStats struct {
	loaded, cached, failed int
}

func (w *warmStats) add(ev filecache.Event) {
	switch ev.Status {
	case filecache.StatusLoaded:
		w.loaded++
	case filecache.StatusCached:
		w.cached++
	case filecache.StatusFailed:
		w.failed++
	}
}

func newWarmCmd() *cobra.Command {
	var uiFlag string
	cmd := &cobra.Command{
		Use:   "warm PATH...",
		Short: "Load files concurrently; directories are walked for source files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseToggle("ui", uiFlag)
			if err != nil {
				return err
			}
			return withSession(cmd, func(s *session) error {
				var names []string
				s.timer.Measure("collect", func() string {
					names, err = collectSources(args, s.cfg.Cache.SourceExts)
					return fmt.Sprintf("%d files", len(names))
				})
				if err != nil {
					return err
				}
				if len(names) == 0 {
					return fmt.Errorf("no source files under %s", strings.Join(args, ", "))
				}

				var stats warmStats
				idx := s.timer.Begin("warm")
				if mode.enabled(os.Stdout) {
					stats, err = runWarmWithUI(cmd.Context(), "warming cache", s.cache, names)
				} else {
					stats, err = warmPlain(cmd.Context(), cmd.OutOrStdout(), s, names)
				}
				s.timer.End(idx, fmt.Sprintf("%d loaded", stats.loaded))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d loaded, %d cached, %d failed\n", stats.loaded, stats.cached, stats.failed)
				if stats.failed > 0 {
					return fmt.Errorf("%d file(s) failed to load", stats.failed)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&uiFlag, "ui", "auto", "progress view (auto|on|off)")
	return cmd
}

func warmPlain(ctx context.Context, out io.Writer, s *session, names []string) (warmStats, error) {
	var stats warmStats
	err := s.cache.Warm(ctx, names, func(ev filecache.Event) {
		stats.add(ev)
		switch ev.Status {
		case filecache.StatusLoaded:
			fmt.Fprintf(out, "loaded  %s (%d lines, %.1f ms)\n", s.show(ev.Key), ev.Lines, toMillis(ev.Elapsed))
		case filecache.StatusFailed:
			fmt.Fprintf(out, "failed  %s: %v\n", s.show(ev.Key), ev.Err)
		}
	})
	return stats, err
}

// collectSources expands directories into the files with one of exts.
// Plain file arguments are kept whatever their extension.
func collectSources(paths, exts []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			// leave it to the cache to report
			add(p)
			continue
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == p {
					return err
				}
				return nil
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if len(exts) == 0 || slices.Contains(exts, filepath.Ext(path)) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
	}
	return out, nil
}
