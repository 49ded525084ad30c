package futurity_test

import (
	"testing"

	. "github.com/dogmatiq/futurity"
	"github.com/dogmatiq/futurity/internal/test"
)

// countdown is a poll-style computation that reports not-ready a fixed
// number of times before producing its value.
type countdown struct {
	remaining int
	value     int
	done      bool
}

func (c *countdown) Poll() (Result[int, error], bool) {
	if c.done {
		panic("poll of a completed countdown")
	}

	if c.remaining > 0 {
		c.remaining--
		return Result[int, error]{}, false
	}

	c.done = true
	return Ok[int, error](c.value), true
}

// explosive is a poll-style computation that panics when polled.
type explosive struct{}

func (explosive) Poll() (Result[int, error], bool) {
	panic("<payload>")
}

func TestDrive(t *testing.T) {
	t.Parallel()

	t.Run("it delivers the result of an immediately-ready computation", func(t *testing.T) {
		t.Parallel()

		f := Drive[int, error](
			&countdown{value: 42},
			nil,
		)

		got := make(chan Result[int, error], 1)
		f.Schedule(func(r Result[int, error]) {
			got <- r
		})

		test.ExpectChannelToReceive(t, got, Ok[int, error](42))
	})

	t.Run("it re-polls each time the driver signals readiness", func(t *testing.T) {
		t.Parallel()

		ready := make(chan struct{})
		f := Drive[int, error](
			&countdown{remaining: 3, value: 42},
			ready,
		)

		got := make(chan Result[int, error], 1)
		f.Schedule(func(r Result[int, error]) {
			got <- r
		})

		for i := 0; i < 3; i++ {
			ready <- struct{}{}
		}

		test.ExpectChannelToReceive(t, got, Ok[int, error](42))
	})

	t.Run("it captures a panic inside the computation as a result", func(t *testing.T) {
		t.Parallel()

		f := Drive[int, error](explosive{}, nil)

		got := make(chan Result[int, error], 1)
		f.Schedule(func(r Result[int, error]) {
			got <- r
		})

		test.ExpectChannelToReceive(t, got, Panicked[int, error]("<payload>"))
	})

	t.Run("it stops polling when canceled", func(t *testing.T) {
		t.Parallel()

		ready := make(chan struct{})
		f := Drive[int, error](
			&countdown{remaining: 1000, value: 42},
			ready,
		)

		got := make(chan Result[int, error], 1)
		f.Schedule(func(r Result[int, error]) {
			got <- r
		})

		f.Cancel()

		test.ExpectChannelToBlock(t, got)
	})

	t.Run("it completes as canceled when the driver goes away", func(t *testing.T) {
		t.Parallel()

		ready := make(chan struct{})
		f := Drive[int, error](
			&countdown{remaining: 1000, value: 42},
			ready,
		)

		got := make(chan Result[int, error], 1)
		f.Schedule(func(r Result[int, error]) {
			got <- r
		})

		close(ready)

		test.ExpectChannelToReceive(t, got, Canceled[int, error]())
	})

	t.Run("it panics if scheduled more than once", func(t *testing.T) {
		t.Parallel()

		f := Drive[int, error](&countdown{value: 1}, nil)
		f.Schedule(func(Result[int, error]) {})

		test.ExpectPanic(
			t,
			"future was scheduled more than once",
			func() {
				f.Schedule(func(Result[int, error]) {})
			},
		)
	})
}
