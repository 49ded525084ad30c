package futurity

import (
	"sync/atomic"

	"github.com/dogmatiq/futurity/internal/exclusive"
)

// Join2 returns a future that completes once both a and b have
// completed, pairing their values. If either operand fails, is canceled
// or panics, the join completes immediately with that outcome and the
// other operand is canceled.
func Join2[T, E any](a, b Future[T, E]) *Both[T, E] {
	j := &Both[T, E]{}
	j.operands.Set(operandPair[T, E]{a, b})
	return j
}

// JoinItem pairs the values produced by the two operands of a join.
type JoinItem[T any] struct {
	A, B T
}

// Both is a future that completes when both of two operand futures have
// completed. It is created by [Join2].
//
// Schedule and Cancel must not be called concurrently with each other.
type Both[T, E any] struct {
	operands exclusive.Cell[operandPair[T, E]]
	shared   atomic.Pointer[joinState[T, E]]
}

const (
	joinDoneA  uint32 = 1 << 0 // operand a has completed
	joinDoneB  uint32 = 1 << 1 // operand b has completed
	joinFired  uint32 = 1 << 2 // the outer callback has been claimed
	joinSet    uint32 = 1 << 3 // the operand pair is stored and eligible for cancellation
	joinCancel uint32 = 1 << 4 // the operand pair must be reclaimed and canceled
)

type joinState[T, E any] struct {
	futures exclusive.Cell[operandPair[T, E]]
	state   atomic.Uint32
	cb      exclusive.Cell[Callback[JoinItem[T], E]]
	a, b    exclusive.Cell[Result[T, E]]
}

// Schedule installs the callback that is invoked with the paired values,
// or with the first non-successful outcome.
//
// Scheduling a join twice delivers [ErrReused] (as a panicked result) to
// the second callback without disturbing the first. Scheduling a join
// that was canceled before ever being scheduled delivers cancellation.
func (j *Both[T, E]) Schedule(cb Callback[JoinItem[T], E]) {
	if j.shared.Load() != nil {
		cb(Panicked[JoinItem[T], E](ErrReused))
		return
	}

	ops, ok := j.operands.Take()
	if !ok {
		cb(Canceled[JoinItem[T], E]())
		return
	}

	s := &joinState[T, E]{}
	s.cb.Set(Once(cb))

	ops.a.Schedule(func(res Result[T, E]) { s.finish(joinDoneA, res) })
	ops.b.Schedule(func(res Result[T, E]) { s.finish(joinDoneB, res) })
	s.futures.Set(ops)

	s.arm()

	j.shared.Store(s)
}

// Cancel abandons the join, canceling any operand whose in-flight work
// is still unclaimed.
func (j *Both[T, E]) Cancel() {
	if s := j.shared.Load(); s != nil {
		s.reclaim()
		return
	}

	if ops, ok := j.operands.Take(); ok {
		ops.a.Cancel()
		ops.b.Cancel()
	}
}

// arm raises the set bit, marking the operand pair as eligible for
// cancellation, unless a reclaim has already been requested by a
// synchronous completion, in which case the pair is canceled here.
func (s *joinState[T, E]) arm() {
	for {
		state := s.state.Load()

		if state&joinSet != 0 {
			panic("join armed twice")
		}

		if state&joinCancel != 0 {
			s.cancelOperands()
			return
		}

		if s.state.CompareAndSwap(state, state|joinSet) {
			return
		}
	}
}

// finish is invoked by each operand's completion, at most once per side.
func (s *joinState[T, E]) finish(side uint32, res Result[T, E]) {
	own := &s.a
	if side == joinDoneB {
		own = &s.b
	}
	own.Set(res)

	var state uint32
	for {
		state = s.state.Load()
		if state&side != 0 {
			panic("join operand completed twice")
		}
		if s.state.CompareAndSwap(state, state|side) {
			break
		}
	}

	both := joinDoneA | joinDoneB
	bothDone := (state|side)&both == both

	// A successful completion only fires the join once the other side
	// has also completed. Any other outcome fires immediately.
	if res.kind == KindOK && !bothDone {
		return
	}

	if !s.claimFire() {
		return
	}

	cb, ok := s.cb.Take()
	if !ok {
		panic("join fired but the callback is gone")
	}

	if res.kind == KindOK {
		ra, _ := s.a.Take()
		rb, _ := s.b.Take()

		va, aok := ra.Value()
		vb, bok := rb.Value()

		if aok && bok {
			cb(Ok[JoinItem[T], E](JoinItem[T]{A: va, B: vb}))
			s.reclaim()
			return
		}

		// The other side did not succeed, and we won the claim before
		// its own finish call could; its outcome wins the join.
		losing := ra
		if aok {
			losing = rb
		}
		deliver(cb, losing)
		s.reclaim()
		return
	}

	deliver(cb, res)
	s.reclaim()
}

// deliver translates a non-successful operand outcome into the join's
// own outcome.
func deliver[T, E any](cb Callback[JoinItem[T], E], res Result[T, E]) {
	switch res.kind {
	case KindFailed:
		cb(Fail[JoinItem[T], E](res.err))
	case KindCanceled:
		cb(Canceled[JoinItem[T], E]())
	case KindPanicked:
		cb(Panicked[JoinItem[T], E](res.panicked))
	default:
		panic("join delivered a successful result on the failure path")
	}
}

// claimFire claims the right to invoke the outer callback. Exactly one
// caller ever wins the claim.
func (s *joinState[T, E]) claimFire() bool {
	for {
		state := s.state.Load()

		if state&joinFired != 0 {
			return false
		}

		if s.state.CompareAndSwap(state, state|joinFired) {
			return true
		}
	}
}

// reclaim requests cancellation of the operand pair. If the pair is
// stored it is taken and canceled here; otherwise the arming loop in
// Schedule observes the cancel bit and cancels it there.
func (s *joinState[T, E]) reclaim() {
	for {
		state := s.state.Load()

		if state&joinCancel != 0 {
			return
		}

		next := (state | joinCancel) &^ joinSet

		if s.state.CompareAndSwap(state, next) {
			if state&joinSet != 0 {
				s.cancelOperands()
			}
			return
		}
	}
}

func (s *joinState[T, E]) cancelOperands() {
	ops, ok := s.futures.Take()
	if !ok {
		panic("operand pair has already been reclaimed")
	}

	ops.a.Cancel()
	ops.b.Cancel()
}

var _ Future[JoinItem[int], error] = (*Both[int, error])(nil)
