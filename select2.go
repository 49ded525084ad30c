package futurity

import (
	"sync/atomic"

	"github.com/dogmatiq/futurity/internal/exclusive"
	"github.com/dogmatiq/futurity/internal/slot"
)

// Select2 returns a future that completes with whichever of a or b
// completes first, paired with a continuation onto the still-pending
// loser.
func Select2[T, E any](a, b Future[T, E]) *Race[T, E] {
	r := &Race[T, E]{}
	r.operands.Set(operandPair[T, E]{a, b})
	return r
}

// RaceItem is the successful outcome of a race: the winning operand's
// value and the continuation onto the loser.
type RaceItem[T, E any] struct {
	Value T
	Next  *Next[T, E]
}

// RaceError is the failed outcome of a race: the winning operand's
// domain error and the continuation onto the loser.
type RaceError[T, E any] struct {
	Err  E
	Next *Next[T, E]
}

// Race is a future that completes when the first of two operand futures
// completes. It is created by [Select2].
//
// Schedule and Cancel must not be called concurrently with each other;
// the operands themselves may complete on any goroutine at any time.
type Race[T, E any] struct {
	operands exclusive.Cell[operandPair[T, E]]
	shared   atomic.Pointer[raceState[T, E]]
}

type operandPair[T, E any] struct {
	a, b Future[T, E]
}

// State word bits. done and set may coexist; set and cancel are mutually
// exclusive fates once the word has stabilized.
const (
	raceDone   uint32 = 1 << 0 // one operand has completed
	raceCancel uint32 = 1 << 1 // the race or its continuation was abandoned
	raceSet    uint32 = 1 << 2 // the operand pair is stored and eligible for cancellation
)

// raceState is shared by the race, both operand completion closures and
// the continuation. The last holder to release its reference frees it.
type raceState[T, E any] struct {
	futures exclusive.Cell[operandPair[T, E]]
	state   atomic.Uint32
	cb      exclusive.Cell[Callback[RaceItem[T, E], RaceError[T, E]]]
	data    slot.Slot[Result[T, E]]
}

// Schedule installs the callback that is invoked with the winner's
// outcome and the continuation.
//
// Scheduling a race twice delivers [ErrReused] (as a panicked result) to
// the second callback without disturbing the first. Scheduling a race
// that was canceled before ever being scheduled delivers cancellation.
func (r *Race[T, E]) Schedule(cb Callback[RaceItem[T, E], RaceError[T, E]]) {
	if r.shared.Load() != nil {
		cb(Panicked[RaceItem[T, E], RaceError[T, E]](ErrReused))
		return
	}

	ops, ok := r.operands.Take()
	if !ok {
		cb(Canceled[RaceItem[T, E], RaceError[T, E]]())
		return
	}

	s := &raceState[T, E]{}
	s.cb.Set(Once(cb))

	// Schedule the operands before storing them, so that a synchronous
	// same-goroutine completion (and even a synchronous abandonment of
	// the resulting continuation) is observed by the arming loop.
	ops.a.Schedule(func(res Result[T, E]) { s.finish(res) })
	ops.b.Schedule(func(res Result[T, E]) { s.finish(res) })
	s.futures.Set(ops)

	s.arm()

	r.shared.Store(s)
}

// Cancel abandons the race.
//
// If no operand has completed and the race is fully armed, both operands
// are canceled here. In every other case the completion path, or the
// arming still in flight on another goroutine, retains responsibility
// for cleanup.
func (r *Race[T, E]) Cancel() {
	if s := r.shared.Load(); s != nil {
		if s.state.CompareAndSwap(raceSet, 0) {
			s.cancelOperands()
		}
		return
	}

	// Never scheduled: cancel the operands directly and leave the race
	// as a tombstone so that a later Schedule reports cancellation.
	if ops, ok := r.operands.Take(); ok {
		ops.a.Cancel()
		ops.b.Cancel()
	}
}

// arm raises the set bit, marking the operand pair as eligible for
// cancellation.
//
// If a completion has already happened synchronously and its consumer
// has already abandoned the continuation, the cancel bit is observed
// instead and the pair is canceled here; set is never raised.
func (s *raceState[T, E]) arm() {
	for {
		state := s.state.Load()

		if state&raceSet != 0 {
			panic("race armed twice")
		}

		if state&raceCancel != 0 {
			if state&raceDone == 0 {
				panic("race abandoned before any operand completed")
			}
			s.cancelOperands()
			return
		}

		if s.state.CompareAndSwap(state, state|raceSet) {
			return
		}
	}
}

// finish is invoked by each operand's completion, at most twice in
// total. The first caller is the winner and drives the outer callback;
// the second is the loser and deposits its result for the continuation.
func (s *raceState[T, E]) finish(res Result[T, E]) {
	var state uint32
	for {
		state = s.state.Load()
		if s.state.CompareAndSwap(state, state|raceDone) {
			break
		}
	}

	if state&raceDone != 0 {
		// The other side finished first; deposit our result for the
		// continuation to observe.
		if err := s.data.TryProduce(res); err != nil {
			panic("two operands both claimed second place")
		}
		return
	}

	cb, ok := s.cb.Take()
	if !ok {
		panic("winner has no callback to invoke")
	}

	next := &Next[T, E]{shared: s}

	switch res.kind {
	case KindOK:
		cb(Ok[RaceItem[T, E], RaceError[T, E]](RaceItem[T, E]{
			Value: res.value,
			Next:  next,
		}))

	case KindFailed:
		cb(Fail[RaceItem[T, E], RaceError[T, E]](RaceError[T, E]{
			Err:  res.err,
			Next: next,
		}))

	case KindCanceled:
		// Cancellation and panics pass through without a continuation;
		// the loser is abandoned on the consumer's behalf.
		cb(Canceled[RaceItem[T, E], RaceError[T, E]]())
		next.Cancel()

	case KindPanicked:
		cb(Panicked[RaceItem[T, E], RaceError[T, E]](res.panicked))
		next.Cancel()
	}
}

// cancelOperands takes ownership of the stored operand pair and cancels
// both operands. Exactly one party may do this, ever; the state word
// transitions guarantee as much.
func (s *raceState[T, E]) cancelOperands() {
	ops, ok := s.futures.Take()
	if !ok {
		panic("operand pair has already been reclaimed")
	}

	ops.a.Cancel()
	ops.b.Cancel()
}

// Next is the continuation onto the losing operand of a race. It exists
// only once the race has resolved.
type Next[T, E any] struct {
	shared *raceState[T, E]
}

// Schedule installs the callback that is invoked with the loser's own
// result, which may already be available.
func (n *Next[T, E]) Schedule(cb Callback[T, E]) {
	n.shared.data.OnFull(cb)
}

// Cancel abandons the continuation, canceling the loser if its in-flight
// work is still unclaimed.
//
// A continuation can only exist after a completion, and can only be
// abandoned once; violating either invariant panics.
func (n *Next[T, E]) Cancel() {
	var state uint32
	for {
		state = n.shared.state.Load()

		if state&raceCancel != 0 {
			panic("continuation abandoned twice")
		}
		if state&raceDone == 0 {
			panic("continuation exists before any completion")
		}

		// The next state must not report set: if the pair is still
		// stored, this transition takes ownership of it.
		next := (state | raceCancel) &^ raceSet

		if n.shared.state.CompareAndSwap(state, next) {
			break
		}
	}

	if state&raceSet != 0 {
		n.shared.cancelOperands()
	}
}

var (
	_ Future[RaceItem[int, error], RaceError[int, error]] = (*Race[int, error])(nil)
	_ Future[int, error]                                  = (*Next[int, error])(nil)
)
