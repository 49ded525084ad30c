package futurity

import "sync/atomic"

// Callback consumes the result of a completed future.
//
// It is invoked exactly once, ever, by whichever party determines the
// future's outcome.
type Callback[T, E any] func(Result[T, E])

// Once wraps cb such that a second invocation panics rather than
// silently delivering two outcomes.
func Once[T, E any](cb Callback[T, E]) Callback[T, E] {
	var spent atomic.Bool

	return func(r Result[T, E]) {
		if !spent.CompareAndSwap(false, true) {
			panic("callback invoked more than once")
		}
		cb(r)
	}
}
