package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"linecache/internal/filecache"
	"linecache/internal/linecache"
	"linecache/internal/ui"
)

type warmOutcome struct {
	stats warmStats
	err   error
}

// runWarmWithUI prefetches names while a progress view renders the events.
func runWarmWithUI(ctx context.Context, title string, cache *linecache.Cache, names []string) (warmStats, error) {
	events := make(chan filecache.Event, 256)
	outcomeCh := make(chan warmOutcome, 1)

	go func() {
		var stats warmStats
		err := cache.Warm(ctx, names, func(ev filecache.Event) {
			stats.add(ev)
			events <- ev
		})
		outcomeCh <- warmOutcome{stats: stats, err: err}
		close(events)
	}()

	model := ui.NewWarmModel(title, nil, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// the view may quit early on ctrl+c; keep the producer from blocking
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.stats, uiErr
	}
	return outcome.stats, outcome.err
}
