package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"linecache/internal/ui"
)

type listOptions struct {
	span    int
	current int
	width   int
	marks   bool
}

func newListCmd() *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:   "list FILE [FROM [TO]]",
		Short: "List lines with a gutter marking breakpoint-eligible lines",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := 1, 0
			var err error
			if len(args) > 1 {
				if from, err = parseLine(args[1]); err != nil {
					return err
				}
			}
			if len(args) > 2 {
				if to, err = parseLine(args[2]); err != nil {
					return err
				}
			}
			if opts.width < 0 {
				opts.width = terminalWidth(os.Stdout)
			}
			return withSession(cmd, func(s *session) error {
				return runList(cmd.OutOrStdout(), cmd.ErrOrStderr(), s, args[0], from, to, opts)
			})
		},
	}
	cmd.Flags().IntVar(&opts.span, "span", 10, "number of lines to show when TO is omitted")
	cmd.Flags().IntVar(&opts.current, "current", 0, "line to mark as the current position")
	cmd.Flags().IntVar(&opts.width, "width", -1, "clip lines to this width (-1: terminal width, 0: no clipping)")
	cmd.Flags().BoolVar(&opts.marks, "marks", true, "mark breakpoint-eligible lines (needs a compiled artifact)")
	return cmd
}

func runList(out, errOut io.Writer, s *session, name string, from, to int, opts listOptions) error {
	maxLine, ok := s.cache.MaxLine(name)
	if !ok {
		return fmt.Errorf("%s: not found", name)
	}
	first, last, ok := ui.Window(from, to, maxLine, opts.span)
	if !ok {
		return fmt.Errorf("%s: line %d out of range (file has %d lines)", name, from, maxLine)
	}

	listing := ui.Listing{First: first, Current: opts.current, Width: opts.width}
	s.timer.Measure("render", func() string {
		for n := first; n <= last; n++ {
			text, _ := s.cache.GetLine(name, n, s.opts())
			listing.Lines = append(listing.Lines, text)
		}
		return fmt.Sprintf("%d lines", len(listing.Lines))
	})

	if opts.marks {
		s.timer.Measure("index", func() string {
			lines, ok := s.cache.TraceLineNumbers(name, false)
			if !ok {
				warnf(errOut, "%s: no compiled code, breakpoint marks omitted", name)
				return "unavailable"
			}
			listing.Eligible = make(map[int]bool, len(lines))
			for _, l := range lines {
				listing.Eligible[l] = true
			}
			return fmt.Sprintf("%d lines", len(lines))
		})
	}

	_, err := io.WriteString(out, listing.Render())
	return err
}
