package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"linecache/internal/version"
)

// newRootCmd builds the command tree. Tests build a fresh tree per run.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "linecache",
		Short:         "Line-oriented source cache for debuggers",
		Long:          `linecache reads source files by line, follows file and line remaps, and correlates lines with compiled code offsets`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "path to linecache.toml (default: nearest one above the working directory)")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.String("style", "", "highlight format: plain|light|dark|<chroma style> (default from config)")
	flags.String("paths", "keep", "how file keys are printed (keep|absolute|relative|basename|auto)")
	flags.Bool("timings", false, "show timing information")
	flags.String("trace", "", "trace output file (\"-\" for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "ring buffer size for --trace-mode ring|both")
	flags.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")
	flags.String("cpuprofile", "", "write a CPU profile to this file")
	flags.String("memprofile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a runtime/trace capture to this file")

	// Добавляем команды
	rootCmd.AddCommand(
		newGetlineCmd(),
		newGetlinesCmd(),
		newListCmd(),
		newSizeCmd(),
		newMaxlineCmd(),
		newStatCmd(),
		newSHA1Cmd(),
		newTraceCmd(),
		newLineinfoCmd(),
		newOffsetinfoCmd(),
		newCheckCmd(),
		newWarmCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// main runs the CLI; a command error exits with status 1.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of f, or 0 when f is not a terminal.
func terminalWidth(f *os.File) int {
	if !isTerminal(f) {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}
