package futurity

import (
	"sync/atomic"
	"testing"

	"github.com/dogmatiq/futurity/internal/test"
)

// inertOperand is a future that does nothing when scheduled and records
// cancellation, for driving the race state word directly.
type inertOperand struct {
	canceled atomic.Bool
}

func (o *inertOperand) Schedule(Callback[int, string]) {}

func (o *inertOperand) Cancel() {
	o.canceled.Store(true)
}

func raceStateWith(bits uint32) (*raceState[int, string], *inertOperand, *inertOperand) {
	a := &inertOperand{}
	b := &inertOperand{}

	s := &raceState[int, string]{}
	s.futures.Set(operandPair[int, string]{a, b})
	s.state.Store(bits)

	return s, a, b
}

func TestRaceStateWord(t *testing.T) {
	t.Parallel()

	t.Run("func arm()", func(t *testing.T) {
		t.Parallel()

		t.Run("it raises the set bit on a quiescent race", func(t *testing.T) {
			t.Parallel()

			s, a, b := raceStateWith(0)

			s.arm()

			if got := s.state.Load(); got != raceSet {
				t.Fatalf("unexpected state word: got %b, want %b", got, raceSet)
			}
			if a.canceled.Load() || b.canceled.Load() {
				t.Fatal("did not expect any operand to be canceled")
			}
		})

		t.Run("it raises the set bit after a synchronous completion", func(t *testing.T) {
			t.Parallel()

			s, _, _ := raceStateWith(raceDone)

			s.arm()

			if got, want := s.state.Load(), raceDone|raceSet; got != want {
				t.Fatalf("unexpected state word: got %b, want %b", got, want)
			}
		})

		t.Run("it cancels the operands if the continuation was already abandoned", func(t *testing.T) {
			t.Parallel()

			s, a, b := raceStateWith(raceDone | raceCancel)

			s.arm()

			if got, want := s.state.Load(), raceDone|raceCancel; got != want {
				t.Fatalf("unexpected state word: got %b, want %b", got, want)
			}
			if !a.canceled.Load() || !b.canceled.Load() {
				t.Fatal("expected both operands to be canceled")
			}
		})

		t.Run("it panics if canceled without any completion", func(t *testing.T) {
			t.Parallel()

			s, _, _ := raceStateWith(raceCancel)

			test.ExpectPanic(
				t,
				"race abandoned before any operand completed",
				s.arm,
			)
		})

		t.Run("it panics if armed twice", func(t *testing.T) {
			t.Parallel()

			s, _, _ := raceStateWith(raceSet)

			test.ExpectPanic(
				t,
				"race armed twice",
				s.arm,
			)
		})
	})

	t.Run("func Next.Cancel()", func(t *testing.T) {
		t.Parallel()

		t.Run("it clears the set bit and takes the operand pair", func(t *testing.T) {
			t.Parallel()

			s, a, b := raceStateWith(raceDone | raceSet)
			n := &Next[int, string]{shared: s}

			n.Cancel()

			if got, want := s.state.Load(), raceDone|raceCancel; got != want {
				t.Fatalf("unexpected state word: got %b, want %b", got, want)
			}
			if !a.canceled.Load() || !b.canceled.Load() {
				t.Fatal("expected both operands to be canceled")
			}
		})

		t.Run("it defers cleanup to the arming goroutine if set was never raised", func(t *testing.T) {
			t.Parallel()

			s, a, b := raceStateWith(raceDone)
			n := &Next[int, string]{shared: s}

			n.Cancel()

			if got, want := s.state.Load(), raceDone|raceCancel; got != want {
				t.Fatalf("unexpected state word: got %b, want %b", got, want)
			}
			if a.canceled.Load() || b.canceled.Load() {
				t.Fatal("did not expect any operand to be canceled yet")
			}

			// The arming goroutine observes the cancel bit and finishes
			// the cleanup.
			s.arm()

			if !a.canceled.Load() || !b.canceled.Load() {
				t.Fatal("expected both operands to be canceled")
			}
		})

		t.Run("it panics if the cancel bit is already raised", func(t *testing.T) {
			t.Parallel()

			s, _, _ := raceStateWith(raceDone | raceCancel)
			n := &Next[int, string]{shared: s}

			test.ExpectPanic(
				t,
				"continuation abandoned twice",
				n.Cancel,
			)
		})

		t.Run("it panics if no completion has occurred", func(t *testing.T) {
			t.Parallel()

			s, _, _ := raceStateWith(raceSet)
			n := &Next[int, string]{shared: s}

			test.ExpectPanic(
				t,
				"continuation exists before any completion",
				n.Cancel,
			)
		})
	})
}
