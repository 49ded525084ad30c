// Package slot provides a single-assignment handoff cell that accepts at
// most one produced value and notifies at most one registered consumer,
// safely under concurrent producer/consumer races.
package slot

import (
	"errors"
	"sync/atomic"
)

// ErrAlreadyProduced is returned by [Slot.TryProduce] when the slot has
// already accepted a value.
var ErrAlreadyProduced = errors.New("slot already contains a value")

// Slot holds zero or one value of type V.
//
// A value is produced at most once, and the notification registered with
// OnFull is invoked exactly once, with that value.
type Slot[V any] struct {
	state  atomic.Uint32
	value  V
	waiter func(V)
}

// Slot states. The busy state marks an instantaneous transition during
// which the value or waiter field is being accessed; observers retry.
const (
	stateEmpty uint32 = iota
	stateBusy
	stateFull    // value produced, no waiter registered
	stateWaiting // waiter registered, no value produced
	stateDone    // value delivered to the waiter
)

// TryProduce offers v to the slot.
//
// It returns ErrAlreadyProduced if a value has already been produced.
// Callers that rely on producing at most once by construction should
// treat such an error as a fatal protocol violation.
func (s *Slot[V]) TryProduce(v V) error {
	for {
		switch s.state.Load() {
		case stateEmpty:
			if s.state.CompareAndSwap(stateEmpty, stateBusy) {
				s.value = v
				s.state.Store(stateFull)
				return nil
			}

		case stateWaiting:
			if s.state.CompareAndSwap(stateWaiting, stateBusy) {
				fn := s.waiter
				s.waiter = nil
				s.state.Store(stateDone)
				fn(v)
				return nil
			}

		case stateBusy:
			// Another goroutine is mid-transition; transitions are
			// instantaneous, so retry immediately.

		default:
			return ErrAlreadyProduced
		}
	}
}

// OnFull registers fn as the slot's one-shot notification.
//
// fn is invoked exactly once with the slot's value: immediately if a
// value has already been produced, or later by the producer otherwise.
// Registering a second notification panics.
func (s *Slot[V]) OnFull(fn func(V)) {
	for {
		switch s.state.Load() {
		case stateEmpty:
			if s.state.CompareAndSwap(stateEmpty, stateBusy) {
				s.waiter = fn
				s.state.Store(stateWaiting)
				return
			}

		case stateFull:
			if s.state.CompareAndSwap(stateFull, stateBusy) {
				v := s.value
				var zero V
				s.value = zero
				s.state.Store(stateDone)
				fn(v)
				return
			}

		case stateBusy:
			// Retry, as above.

		default:
			panic("slot notification already registered")
		}
	}
}
