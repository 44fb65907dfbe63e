package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newTraceCmd() *cobra.Command {
	var topLevel bool
	cmd := &cobra.Command{
		Use:   "trace FILE",
		Short: "Print the lines where a breakpoint can stop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				var (
					lines []int
					ok    bool
				)
				s.timer.Measure("index", func() string {
					if topLevel {
						lines, ok = s.cache.TopLevelLineNumbers(args[0], true)
					} else {
						lines, ok = s.cache.TraceLineNumbers(args[0], true)
					}
					return strconv.Itoa(len(lines)) + " lines"
				})
				if !ok {
					return fmt.Errorf("%s: no compiled code found", args[0])
				}
				parts := make([]string, len(lines))
				for i, l := range lines {
					parts[i] = strconv.Itoa(l)
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, " "))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&topLevel, "toplevel", false, "only lines of the module body")
	return cmd
}

func newLineinfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lineinfo FILE LINE",
		Short: "Print the code units and offsets a breakpoint on LINE would hit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := parseLine(args[1])
			if err != nil {
				return err
			}
			return withSession(cmd, func(s *session) error {
				locs, ok := s.cache.CodeLineInfo(args[0], line)
				if !ok {
					return fmt.Errorf("%s:%d: no code on this line", args[0], line)
				}
				out := cmd.OutOrStdout()
				for _, loc := range locs {
					fmt.Fprintf(out, "%s\t%d\n", loc.Unit.Name, loc.Offset)
				}
				return nil
			})
		},
	}
}

func newOffsetinfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "offsetinfo FILE OFFSET",
		Short: "Print the line starting at a module-body code offset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := strconv.Atoi(args[1])
			if err != nil || offset < 0 {
				return fmt.Errorf("invalid offset %q", args[1])
			}
			return withSession(cmd, func(s *session) error {
				line, ok := s.cache.CodeOffsetInfo(args[0], offset)
				if !ok {
					return fmt.Errorf("%s: no line starts at offset %d", args[0], offset)
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
				return nil
			})
		},
	}
}
