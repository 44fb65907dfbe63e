package main

import (
	"fmt"
	"io"
	"time"

	"linecache/internal/observ"
)

func printTimings(out io.Writer, timer *observ.Timer) {
	if out == nil || timer == nil {
		return
	}
	if err := timer.WriteSummary(out); err != nil {
		fmt.Fprintf(out, "timings: %v\n", err)
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
