package trace

import "context"

type (
	tracerKey struct{}
	spanKey   struct{}
)

// FromContext returns the tracer stored in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer returns ctx carrying t.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// WithSpan returns ctx carrying s as the enclosing span.
func WithSpan(ctx context.Context, s *Span) context.Context {
	return context.WithValue(ctx, spanKey{}, s)
}

// ParentFrom returns the ID of the span carried by ctx, 0 without one.
func ParentFrom(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	s, _ := ctx.Value(spanKey{}).(*Span)
	return s.ID()
}

// Start begins a span on the tracer of ctx, nested in the span of ctx,
// and returns a context carrying the new span.
func Start(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	s := Begin(FromContext(ctx), scope, name, ParentFrom(ctx))
	return s, WithSpan(ctx, s)
}
