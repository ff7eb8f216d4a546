package ownedbuf

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Option configures an Owner at construction time.
type Option func(*options)

type options struct {
	meter  metric.Meter
	tracer trace.Tracer
	sink   EventSink
}

// WithMeter instruments the owner with OTel export counters. Instrument
// creation failures are logged and otherwise ignored.
func WithMeter(m metric.Meter) Option {
	return func(o *options) { o.meter = m }
}

// WithTracer records a span per export and release.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithEventSink forwards export lifecycle events to sink, e.g. a
// journal.Journal.
func WithEventSink(sink EventSink) Option {
	return func(o *options) { o.sink = sink }
}
