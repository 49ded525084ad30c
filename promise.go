package futurity

import (
	"github.com/dogmatiq/futurity/internal/optimistic"
)

// Promise is a future that is completed explicitly by its producer.
type Promise[T, E any] struct {
	state optimistic.Value[promiseState[T, E]]
}

type promiseState[T, E any] struct {
	cb        Callback[T, E]
	result    *Result[T, E]
	canceled  bool
	delivered bool
}

// NewPromise returns a future that is completed by calling Resolve.
func NewPromise[T, E any]() *Promise[T, E] {
	return &Promise[T, E]{}
}

// Resolved returns a future that has already completed with r.
func Resolved[T, E any](r Result[T, E]) *Promise[T, E] {
	p := NewPromise[T, E]()
	p.Resolve(r)
	return p
}

// Done returns a future that has already produced v.
func Done[T, E any](v T) *Promise[T, E] {
	return Resolved(Ok[T, E](v))
}

// Failed returns a future that has already failed with err.
func Failed[T, E any](err E) *Promise[T, E] {
	return Resolved(Fail[T, E](err))
}

// Resolve completes the promise with r.
//
// It panics if the promise has already been resolved. Resolving a
// canceled promise discards r silently; the consumer has lost interest.
func (p *Promise[T, E]) Resolve(r Result[T, E]) {
	var deliver Callback[T, E]

	p.state.Apply(func(s promiseState[T, E]) (promiseState[T, E], bool) {
		deliver = nil

		if s.canceled {
			return s, false
		}

		if s.result != nil || s.delivered {
			panic("promise is already resolved")
		}

		if s.cb != nil {
			deliver = s.cb
			s.cb = nil
			s.delivered = true
		} else {
			s.result = &r
		}

		return s, true
	})

	if deliver != nil {
		deliver(r)
	}
}

// Schedule installs the callback invoked with the promise's result.
//
// If the promise has already been resolved the result is delivered
// synchronously; if it has been canceled a [KindCanceled] result is
// delivered. Scheduling a promise twice panics.
func (p *Promise[T, E]) Schedule(cb Callback[T, E]) {
	cb = Once(cb)

	var deliver *Result[T, E]

	p.state.Apply(func(s promiseState[T, E]) (promiseState[T, E], bool) {
		deliver = nil

		if s.cb != nil || s.delivered {
			panic("promise was scheduled more than once")
		}

		switch {
		case s.canceled:
			r := Canceled[T, E]()
			deliver = &r
			s.delivered = true

		case s.result != nil:
			deliver = s.result
			s.result = nil
			s.delivered = true

		default:
			s.cb = cb
		}

		return s, true
	})

	if deliver != nil {
		cb(*deliver)
	}
}

// Cancel abandons the promise. A pending callback is released without
// being invoked, and any later Resolve is discarded. Canceling after the
// result has been delivered has no effect.
func (p *Promise[T, E]) Cancel() {
	p.state.Apply(func(s promiseState[T, E]) (promiseState[T, E], bool) {
		if s.canceled || s.delivered {
			return s, false
		}

		s.canceled = true
		s.cb = nil
		s.result = nil

		return s, true
	})
}
