package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/exp/slog"
)

// Span represents a single named and timed operation.
type Span struct {
	recorder *Recorder
	ctx      context.Context
	span     trace.Span
	logger   *slog.Logger
}

// StartSpan starts a new span.
func (r *Recorder) StartSpan(
	ctx context.Context,
	name string,
	attrs ...Attr,
) (context.Context, *Span) {
	ctx, span := r.Tracer.Start(
		ctx,
		name,
		trace.WithAttributes(asKeyValues(attrs)...),
	)

	logger := r.Logger.With(slog.String("span_name", name))

	if sctx := span.SpanContext(); sctx.HasSpanID() {
		logger = logger.With(slog.String("span_id", sctx.SpanID().String()))
	}

	return ctx, &Span{
		recorder: r,
		ctx:      ctx,
		span:     span,
		logger:   logger,
	}
}

// End completes the span.
func (s *Span) End() {
	s.span.End()
}

// SetAttributes sets attributes on the span.
func (s *Span) SetAttributes(attrs ...Attr) {
	s.span.SetAttributes(asKeyValues(attrs)...)
}

// Debug logs a debug message to the log and as a span event.
func (s *Span) Debug(message string, attrs ...Attr) {
	s.logger.Debug(message, asLogArgs(attrs)...)

	s.span.AddEvent(
		message,
		trace.WithAttributes(asKeyValues(attrs)...),
	)
}

// Error logs an error message, marks the span as failed and increments
// the recorder's error count.
func (s *Span) Error(message string, err error, attrs ...Attr) {
	s.logger.Error(
		message,
		append(
			asLogArgs(attrs),
			slog.Any("error", err),
		)...,
	)

	s.span.AddEvent(
		message,
		trace.WithAttributes(attribute.String("error", err.Error())),
		trace.WithAttributes(asKeyValues(attrs)...),
	)
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())

	s.recorder.errors(s.ctx, 1)
}
