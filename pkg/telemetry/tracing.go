package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/weft/pkg/fiber"
	"github.com/vango-dev/weft/pkg/vdom"
)

// DefaultTracerName is the instrumentation name used when none is given.
const DefaultTracerName = "github.com/vango-dev/weft"

// TracingConfig configures the OpenTelemetry observer.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: DefaultTracerName).
	TracerName string

	// Provider supplies the tracer. Default: the global provider.
	Provider trace.TracerProvider

	// Attributes are added to every cycle span.
	Attributes []attribute.KeyValue

	// Context is the parent of every cycle span. Default: context.Background().
	Context context.Context
}

// TracingOption configures the OpenTelemetry observer.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		if name != "" {
			c.TracerName = name
		}
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) TracingOption {
	return func(c *TracingConfig) {
		c.Provider = tp
	}
}

// WithAttributes adds attributes to every cycle span.
func WithAttributes(attrs ...attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) {
		c.Attributes = append(c.Attributes, attrs...)
	}
}

// WithParentContext sets the context cycle spans are started from.
func WithParentContext(ctx context.Context) TracingOption {
	return func(c *TracingConfig) {
		c.Context = ctx
	}
}

// Tracer is a fiber.Observer that records each render cycle as a span.
//
// A span starts when the first unit of a cycle runs and ends at its commit
// or when it is discarded. Yields are recorded as span events.
//
// The tracer uses the global OpenTelemetry tracer provider unless one is
// given. Configure it in main() before mounting roots:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
type Tracer struct {
	tracer trace.Tracer
	ctx    context.Context
	attrs  []attribute.KeyValue

	mu    sync.Mutex
	spans map[fiber.CycleInfo]*cycleSpan
}

type cycleSpan struct {
	span  trace.Span
	units int
}

var _ fiber.Observer = (*Tracer)(nil)

// NewTracer creates a tracing observer.
func NewTracer(opts ...TracingOption) *Tracer {
	config := TracingConfig{TracerName: DefaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Provider == nil {
		config.Provider = otel.GetTracerProvider()
	}
	if config.Context == nil {
		config.Context = context.Background()
	}
	return &Tracer{
		tracer: config.Provider.Tracer(config.TracerName),
		ctx:    config.Context,
		attrs:  config.Attributes,
		spans:  make(map[fiber.CycleInfo]*cycleSpan),
	}
}

// Active returns the number of cycles with an open span.
func (t *Tracer) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.spans)
}

// OnCycleStart implements fiber.Observer.
func (t *Tracer) OnCycleStart(info fiber.CycleInfo) {
	attrs := append([]attribute.KeyValue{
		attribute.Int64("weft.root", int64(info.Root)),
		attribute.Int64("weft.cycle", int64(info.Cycle)),
	}, t.attrs...)

	_, span := t.tracer.Start(t.ctx, "weft.cycle",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)

	t.mu.Lock()
	t.spans[info] = &cycleSpan{span: span}
	t.mu.Unlock()
}

// OnUnit implements fiber.Observer.
func (t *Tracer) OnUnit(info fiber.CycleInfo, _ vdom.Kind) {
	t.mu.Lock()
	if cs, ok := t.spans[info]; ok {
		cs.units++
	}
	t.mu.Unlock()
}

// OnYield implements fiber.Observer.
func (t *Tracer) OnYield(info fiber.CycleInfo, units int) {
	if cs := t.lookup(info, false); cs != nil {
		cs.span.AddEvent("yield", trace.WithAttributes(attribute.Int("weft.units", units)))
	}
}

// OnDiscard implements fiber.Observer. Cycles discarded before their first
// unit never opened a span.
func (t *Tracer) OnDiscard(info fiber.CycleInfo) {
	cs := t.lookup(info, true)
	if cs == nil {
		return
	}
	cs.span.SetAttributes(
		attribute.Bool("weft.discarded", true),
		attribute.Int("weft.units", cs.units),
	)
	cs.span.SetStatus(codes.Unset, "")
	cs.span.End()
}

// OnCommit implements fiber.Observer.
func (t *Tracer) OnCommit(s fiber.CommitStats) {
	cs := t.lookup(s.CycleInfo, true)
	if cs == nil {
		return
	}
	cs.span.SetAttributes(
		attribute.Int("weft.units", s.Units),
		attribute.Int("weft.slices", s.Slices),
		attribute.Int("weft.inserts", s.Inserts),
		attribute.Int("weft.updates", s.Updates),
		attribute.Int("weft.deletions", s.Deletions),
		attribute.Int("weft.effects", s.Effects),
		attribute.Int64("weft.commit_ns", s.Duration.Nanoseconds()),
	)
	cs.span.SetStatus(codes.Ok, "")
	cs.span.End()
}

func (t *Tracer) lookup(info fiber.CycleInfo, remove bool) *cycleSpan {
	t.mu.Lock()
	defer t.mu.Unlock()
	cs, ok := t.spans[info]
	if ok && remove {
		delete(t.spans, info)
	}
	return cs
}
