package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"linecache/internal/watch"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE...",
		Short: "Keep files cached and report reloads as they change on disk",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				out := cmd.OutOrStdout()
				debounce, err := s.cfg.Debounce()
				if err != nil {
					return err
				}
				reloadColor := color.New(color.FgGreen)

				w, err := watch.New(s.cache, watch.Config{
					Debounce: debounce,
					Tracer:   s.tracer,
					OnReload: func(keys []string) {
						for _, k := range keys {
							n, _ := s.cache.Size(k)
							sum, _ := s.cache.SHA1(k)
							fmt.Fprintf(out, "%s %s (%d lines, %s)\n", reloadColor.Sprint("reloaded"), s.show(k), n, sum)
						}
					},
				})
				if err != nil {
					return err
				}
				defer w.Close()

				for _, name := range args {
					path, ok := s.cache.CacheFile(name, false)
					if !ok {
						return fmt.Errorf("%s: not found", name)
					}
					if err := w.Add(path); err != nil {
						return err
					}
					fmt.Fprintf(out, "watching %s\n", path)
				}

				err = w.Run(cmd.Context())
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			})
		},
	}
}
