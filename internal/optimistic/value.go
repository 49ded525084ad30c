package optimistic

import (
	"sync/atomic"
)

// Value is a value protected by optimistic concurrency control.
type Value[T any] struct {
	p atomic.Pointer[T]
}

// Load returns the current value, or the zero value of T if it has never
// been modified.
func (v *Value[T]) Load() T {
	if p := v.p.Load(); p != nil {
		return *p
	}

	var zero T
	return zero
}

// Apply calls fn with the current value.
//
// If fn returns true, the value is replaced with the returned value. If
// the value has been replaced by another goroutine since the call to fn,
// the process is retried until it succeeds or fn returns false.
//
// fn must be free of side-effects; it may be invoked several times for a
// single application.
func (v *Value[T]) Apply(
	fn func(T) (T, bool),
) (T, bool) {
	var (
		before, after T
		modify        bool
	)

	for {
		p := v.p.Load()

		if p != nil {
			before = *p
		} else {
			var zero T
			before = zero
		}

		after, modify = fn(before)
		if !modify {
			return before, false
		}

		if v.p.CompareAndSwap(p, &after) {
			return after, true
		}
	}
}
