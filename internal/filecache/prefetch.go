package filecache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"linecache/internal/trace"
)

// Status is the outcome of prefetching one file.
type Status uint8

const (
	StatusQueued Status = iota
	StatusLoaded
	StatusCached // already present, left untouched
	StatusFailed
)

// String returns the string representation of Status.
func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusLoaded:
		return "loaded"
	case StatusCached:
		return "cached"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event reports progress of a Prefetch.
type Event struct {
	Key     string
	Status  Status
	Err     error
	Lines   int
	Elapsed time.Duration
}

// Sink receives prefetch events. Calls are serialized.
type Sink func(Event)

// Prefetch loads keys concurrently. Reads run in parallel, entries are
// installed under the cache lock and never replace an entry already present.
// Per-file failures are reported through sink; the returned error is set
// only when ctx is done.
func (c *Cache) Prefetch(ctx context.Context, keys []string, opts Options, sink Sink) error {
	if len(keys) == 0 {
		return nil
	}
	var sinkMu sync.Mutex
	emit := func(ev Event) {
		if sink == nil {
			return
		}
		sinkMu.Lock()
		defer sinkMu.Unlock()
		sink(ev)
	}
	for _, k := range keys {
		emit(Event{Key: k, Status: StatusQueued})
	}

	span := trace.Begin(c.tracer, trace.ScopeCache, "prefetch", trace.ParentFrom(ctx))
	defer span.WithExtra("files", strconv.Itoa(len(keys))).End("")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(c.cfg.Workers, len(keys)))

	for _, key := range keys {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			start := time.Now()
			fspan := span.Child(trace.ScopeFile, "prefetch.file")
			if c.Has(key) {
				fspan.End("cached")
				emit(Event{Key: key, Status: StatusCached, Elapsed: time.Since(start)})
				return nil
			}

			e, err := c.load(key, opts)
			if err != nil {
				fspan.Fail(err)
				emit(Event{Key: key, Status: StatusFailed, Err: err, Elapsed: time.Since(start)})
				return nil
			}

			status := StatusLoaded
			c.mu.Lock()
			if _, ok := c.entries[key]; ok {
				status = StatusCached
			} else {
				c.installLocked(e)
			}
			c.mu.Unlock()
			fspan.End(status.String())
			emit(Event{Key: key, Status: status, Lines: len(e.Lines), Elapsed: time.Since(start)})
			return nil
		})
	}
	return g.Wait()
}
