package futurity

import "errors"

// ErrReused indicates that Schedule was called on a future that had
// already been scheduled. It is delivered to the second callback as the
// payload of a [KindPanicked] result; the first scheduling is
// unaffected.
var ErrReused = errors.New("future was scheduled more than once")

// Future is a single-shot asynchronous computation that produces exactly
// one [Result].
type Future[T, E any] interface {
	// Schedule installs the callback that is invoked with the future's
	// result. It must be called at most once. The result is delivered
	// exactly once, possibly synchronously, on an arbitrary goroutine.
	Schedule(cb Callback[T, E])

	// Cancel requests that the computation be abandoned. The future
	// releases any resources it holds and need not deliver a result
	// afterward.
	Cancel()
}

// Pollable is a single-shot asynchronous computation that is consumed by
// repeated readiness polling. [Drive] adapts a Pollable to the [Future]
// contract.
type Pollable[T, E any] interface {
	// Poll attempts to make progress. It returns ok == false if the
	// computation is not yet ready, in which case the caller must poll
	// again after its readiness driver signals. Polling again after a
	// result has been returned is a logic error and panics.
	Poll() (r Result[T, E], ok bool)
}
