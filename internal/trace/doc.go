// Package trace provides structured tracing for the line cache.
//
// Cache operations report what they do (loads, reloads, evictions, index
// builds) as trace events so a slow or misbehaving debugger session can be
// diagnosed after the fact.
//
// # Usage
//
//	linecache getline --trace=- --trace-level=detail prog.py 10
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to a file or stderr (text or NDJSON)
//   - RingTracer: in-memory circular buffer, dumped on demand
//   - MultiTracer: fan-out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only failures
//   - LevelPhase: cache-wide operations (check, warm, clear)
//   - LevelDetail: per-file events (load, reload, evict)
//   - LevelDebug: everything including per-line lookups
//
// # Scopes
//
//   - ScopeCache: operations over the whole cache
//   - ScopeFile: one cached file
//   - ScopeLine: one line query
//
// Tracers and the enclosing span travel through context; Start nests a
// new span under whatever span ctx carries:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.Start(ctx, trace.ScopeCache, "warm")
//	defer span.End("")
//	file := span.Child(trace.ScopeFile, "load")
//	file.Fail(err)
package trace
