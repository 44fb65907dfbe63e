package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"linecache/internal/trace"
)

// traceFlags mirrors the --trace* persistent flags.
type traceFlags struct {
	output, level, mode, format string
	ringSize                    int
	levelSet                    bool
}

func readTraceFlags(flags *pflag.FlagSet) (traceFlags, error) {
	var tf traceFlags
	for name, dst := range map[string]*string{
		"trace":        &tf.output,
		"trace-level":  &tf.level,
		"trace-mode":   &tf.mode,
		"trace-format": &tf.format,
	} {
		v, err := flags.GetString(name)
		if err != nil {
			return tf, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		*dst = v
	}
	size, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return tf, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	tf.ringSize = size
	tf.levelSet = flags.Changed("trace-level")
	return tf, nil
}

func (tf traceFlags) config() (trace.Config, error) {
	cfg := trace.Config{OutputPath: tf.output, RingSize: tf.ringSize}
	var err error
	if cfg.Level, err = trace.ParseLevel(tf.level); err != nil {
		return cfg, err
	}
	// --trace без --trace-level означает phase
	if cfg.Level == trace.LevelOff && tf.output != "" && !tf.levelSet {
		cfg.Level = trace.LevelPhase
	}
	if cfg.Mode, err = trace.ParseMode(tf.mode); err != nil {
		return cfg, err
	}
	if cfg.Format, err = trace.ParseFormat(tf.format); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// setupTracing builds the tracer from the flags and stores it in the
// command context. The cleanup dumps a ring tracer and closes the tracer.
func setupTracing(cmd *cobra.Command) (func(), error) {
	tf, err := readTraceFlags(cmd.Root().PersistentFlags())
	if err != nil {
		return nil, err
	}
	cfg, err := tf.config()
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	if tracer == trace.Nop {
		return func() {}, nil
	}

	errOut := cmd.ErrOrStderr()
	return func() { closeTracer(errOut, tracer, cfg.Format) }, nil
}

func closeTracer(errOut io.Writer, tracer trace.Tracer, format trace.Format) {
	// ring-режим держит события только в памяти
	if ring, ok := tracer.(*trace.RingTracer); ok {
		if err := ring.Dump(errOut, format); err != nil {
			fmt.Fprintf(errOut, "trace: dump error: %v\n", err)
		}
	}
	if err := tracer.Close(); err != nil {
		fmt.Fprintf(errOut, "trace: close error: %v\n", err)
	}
}
