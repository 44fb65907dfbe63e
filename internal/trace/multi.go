package trace

import "errors"

// MultiTracer sends every event to several tracers, e.g. a stream for the
// live log plus a ring for the post-mortem dump.
type MultiTracer struct {
	leveled
	targets []Tracer
}

func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	return &MultiTracer{leveled: leveled{level}, targets: tracers}
}

// Emit hands each target its own copy; targets stamp Seq on what they get.
func (t *MultiTracer) Emit(ev *Event) {
	for _, target := range t.targets {
		dup := *ev
		target.Emit(&dup)
	}
}

func (t *MultiTracer) Flush() error {
	var errs []error
	for _, target := range t.targets {
		errs = append(errs, target.Flush())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Close() error {
	var errs []error
	for _, target := range t.targets {
		errs = append(errs, target.Close())
	}
	return errors.Join(errs...)
}

// Ring returns the first RingTracer among the targets, or nil.
func (t *MultiTracer) Ring() *RingTracer {
	for _, target := range t.targets {
		if ring, ok := target.(*RingTracer); ok {
			return ring
		}
	}
	return nil
}
