package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// stdinScript is the script id used when FILE is "-".
const stdinScript = "<stdin>"

func parseLine(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid line number %q", arg)
	}
	return n, nil
}

func newGetlineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "getline FILE LINE",
		Short: "Print one line of a file (FILE \"-\" reads stdin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := parseLine(args[1])
			if err != nil {
				return err
			}
			return withSession(cmd, func(s *session) error {
				var (
					text string
					ok   bool
				)
				s.timer.Measure("getline", func() string {
					if args[0] == "-" {
						text, ok, err = stdinLine(cmd.InOrStdin(), s, line)
						return "stdin"
					}
					text, ok = s.cache.GetLine(args[0], line, s.opts())
					return ""
				})
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("%s:%d: no such line", args[0], line)
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			})
		},
	}
	return cmd
}

func stdinLine(r io.Reader, s *session, line int) (string, bool, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", false, fmt.Errorf("read stdin: %w", err)
	}
	s.cache.UpdateScript(stdinScript, string(data))
	text, ok := s.cache.ScriptLine(stdinScript, line, s.opts())
	return text, ok, nil
}

func newGetlinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "getlines FILE",
		Short: "Print every line of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				opts := s.opts()
				opts.KeepNewline = true
				lines, ok := s.cache.GetLines(args[0], opts)
				if !ok {
					return fmt.Errorf("%s: not found", args[0])
				}
				out := cmd.OutOrStdout()
				for _, l := range lines {
					if _, err := io.WriteString(out, l); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newSizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "size FILE",
		Short: "Print the number of lines of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				n, ok := s.cache.Size(args[0])
				if !ok {
					return fmt.Errorf("%s: not found", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			})
		},
	}
}

func newMaxlineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "maxline FILE",
		Short: "Print the largest valid line number, following line remaps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				n, ok := s.cache.MaxLine(args[0])
				if !ok {
					return fmt.Errorf("%s: not found", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			})
		},
	}
}

func newStatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stat FILE",
		Short: "Print the path, size and modification time recorded for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				meta, ok := s.cache.Stat(args[0])
				if !ok {
					return fmt.Errorf("%s: no file status", args[0])
				}
				path, _ := s.cache.Path(args[0])
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "path:  %s\n", path)
				fmt.Fprintf(out, "size:  %d\n", meta.Size)
				fmt.Fprintf(out, "mtime: %s\n", meta.ModTime.Format(time.RFC3339Nano))
				return nil
			})
		},
	}
}

func newSHA1Cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sha1 FILE",
		Short: "Print the SHA-1 of the plain file content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				sum, ok := s.cache.SHA1(args[0])
				if !ok {
					return fmt.Errorf("%s: not found", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", sum, args[0])
				return nil
			})
		},
	}
}

// warnf reports a problem that does not fail the command.
func warnf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "warning: "+format+"\n", args...)
}
