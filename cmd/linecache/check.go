package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Load files, then run a freshness check and report their state",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				out := cmd.OutOrStdout()
				var missing int
				for _, name := range args {
					if _, ok := s.cache.CacheFile(name, false); !ok {
						fmt.Fprintf(out, "missing  %s\n", s.show(name))
						missing++
					}
				}

				var reloaded []string
				s.timer.Measure("check", func() string {
					reloaded, _ = s.cache.CheckCache("")
					return fmt.Sprintf("%d reloaded", len(reloaded))
				})
				changed := make(map[string]bool, len(reloaded))
				for _, k := range reloaded {
					changed[k] = true
				}
				for _, key := range s.cache.CachedFiles() {
					state := "fresh"
					if changed[key] {
						state = "reloaded"
					}
					sum, _ := s.cache.SHA1(key)
					fmt.Fprintf(out, "%-8s %s %s\n", state, sum, s.show(key))
				}
				if missing > 0 {
					return fmt.Errorf("%d file(s) not found", missing)
				}
				return nil
			})
		},
	}
}
