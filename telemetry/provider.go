// Package telemetry records traces, metrics and logs for futurity's
// subsystems.
package telemetry

import (
	"io"

	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/exp/slog"
)

// Provider provides [Recorder] instances scoped to particular
// subsystems.
//
// The zero value of a *Provider is equivalent to a provider configured
// with no-op tracing and metric providers and a logger that discards
// everything.
type Provider struct {
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
	Logger         *slog.Logger
}

// Recorder returns a recorder for the subsystem with the given name.
func (p *Provider) Recorder(name string, attrs ...Attr) *Recorder {
	const pkg = "github.com/dogmatiq/futurity"

	var (
		tp     trace.TracerProvider = nooptrace.NewTracerProvider()
		mp     metric.MeterProvider = noopmetric.NewMeterProvider()
		logger *slog.Logger
	)

	if p != nil {
		if p.TracerProvider != nil {
			tp = p.TracerProvider
		}
		if p.MeterProvider != nil {
			mp = p.MeterProvider
		}
		logger = p.Logger
	}

	if logger == nil {
		logger = slog.New(
			slog.NewTextHandler(io.Discard, nil),
		)
	}

	r := &Recorder{
		Name: name,
		Tracer: tp.Tracer(
			pkg,
			trace.WithInstrumentationAttributes(asKeyValues(attrs)...),
		),
		Meter: mp.Meter(
			pkg,
			metric.WithInstrumentationAttributes(asKeyValues(attrs)...),
		),
		Logger: logger.With(slog.String("subsystem", name)),
	}

	r.errors = r.Counter(
		"errors",
		"{error}",
		"The number of errors that have occurred.",
	)

	return r
}
