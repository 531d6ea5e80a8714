// Package telemetry supplies the ambient observability surface nodes and
// the executor use to emit logs, metrics, and traces. It is distinct from
// state.Telemetry: state.Telemetry is in-run audit data that travels with
// AgentState, while this package is an out-of-band operational concern that
// never affects state transitions.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Logger captures structured logging used throughout the execution core.
// The interface is intentionally small so tests can supply lightweight
// stubs instead of a real Clue/OTEL pipeline.
type Logger interface {
	Debug(ctx context.Context, msg string, keyvals ...any)
	Info(ctx context.Context, msg string, keyvals ...any)
	Warn(ctx context.Context, msg string, keyvals ...any)
	Error(ctx context.Context, msg string, keyvals ...any)
}

// Metrics exposes counter/timer/gauge helpers for node and executor
// instrumentation.
type Metrics interface {
	IncCounter(name string, value float64, tags ...string)
	RecordTimer(name string, duration time.Duration, tags ...string)
	RecordGauge(name string, value float64, tags ...string)
}

// Tracer abstracts span creation so node code stays agnostic of the
// underlying OpenTelemetry provider.
type Tracer interface {
	Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, Span)
	Span(ctx context.Context) Span
}

// Span represents an in-flight tracing span.
type Span interface {
	End(opts ...trace.SpanEndOption)
	AddEvent(name string, attrs ...any)
	SetStatus(code codes.Code, description string)
	RecordError(err error, opts ...trace.EventOption)
}

// ToolTelemetry captures observability metadata collected around a single
// tool dispatch. Extra holds tool-specific data the executor doesn't know
// the shape of ahead of time.
type ToolTelemetry struct {
	DurationMs int64
	Extra      map[string]any
}
