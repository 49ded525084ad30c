// Package instrumented provides decorators that add telemetry to
// futures.
package instrumented

import (
	"context"
	"sync/atomic"

	"github.com/dogmatiq/futurity"
	"github.com/dogmatiq/futurity/telemetry"
)

// New wraps next such that each scheduling is traced and each outcome is
// counted, by kind.
func New[T, E any](
	next futurity.Future[T, E],
	p *telemetry.Provider,
	name string,
) futurity.Future[T, E] {
	r := p.Recorder(
		"future",
		telemetry.String("name", name),
	)

	return &future[T, E]{
		next:      next,
		name:      name,
		telemetry: r,
		outcomes: r.Counter(
			"outcomes",
			"{outcome}",
			"The number of futures that have completed, by outcome kind.",
		),
		cancellations: r.Counter(
			"cancellations",
			"{cancellation}",
			"The number of times a future has been asked to abandon its work.",
		),
	}
}

type future[T, E any] struct {
	next      futurity.Future[T, E]
	name      string
	telemetry *telemetry.Recorder

	outcomes      telemetry.Instrument[int64]
	cancellations telemetry.Instrument[int64]

	span atomic.Pointer[telemetry.Span]
}

func (f *future[T, E]) Schedule(cb futurity.Callback[T, E]) {
	ctx, span := f.telemetry.StartSpan(
		context.Background(),
		f.name,
	)
	f.span.Store(span)

	f.next.Schedule(func(res futurity.Result[T, E]) {
		f.outcomes(ctx, 1, telemetry.Stringer("kind", res.Kind()))

		span.Debug(
			"future completed",
			telemetry.Stringer("kind", res.Kind()),
		)
		span.End()

		cb(res)
	})
}

func (f *future[T, E]) Cancel() {
	f.cancellations(context.Background(), 1)
	f.next.Cancel()

	if span := f.span.Load(); span != nil {
		span.End()
	}
}
