package futurity

import (
	"sync/atomic"

	"github.com/dogmatiq/futurity/internal/signaling"
)

// Drive adapts a poll-style computation to the [Future] contract.
//
// The computation is polled once when scheduled, then again each time
// ready delivers a signal. The driver that feeds ready is external and
// opaque to this package; if it closes the channel the future completes
// as canceled.
func Drive[T, E any](p Pollable[T, E], ready <-chan struct{}) Future[T, E] {
	return &driven[T, E]{
		pollable: p,
		ready:    ready,
	}
}

type driven[T, E any] struct {
	pollable  Pollable[T, E]
	ready     <-chan struct{}
	scheduled atomic.Bool
	abandoned signaling.Latch
}

func (d *driven[T, E]) Schedule(cb Callback[T, E]) {
	if !d.scheduled.CompareAndSwap(false, true) {
		panic("future was scheduled more than once")
	}

	go d.run(Once(cb))
}

func (d *driven[T, E]) Cancel() {
	d.abandoned.Signal()
}

func (d *driven[T, E]) run(cb Callback[T, E]) {
	for {
		if d.abandoned.IsSignaled() {
			return
		}

		if r, ok := d.poll(); ok {
			cb(r)
			return
		}

		select {
		case <-d.abandoned.Signaled():
			return

		case _, open := <-d.ready:
			if !open {
				cb(Canceled[T, E]())
				return
			}
		}
	}
}

// poll captures a panic inside the computation as a result, so that a
// failing computation cannot unwind into whatever drives it.
func (d *driven[T, E]) poll() (r Result[T, E], ok bool) {
	defer func() {
		if p := recover(); p != nil {
			r = Panicked[T, E](p)
			ok = true
		}
	}()

	return d.pollable.Poll()
}
