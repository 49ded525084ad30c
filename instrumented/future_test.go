package instrumented_test

import (
	"errors"
	"testing"

	"github.com/dogmatiq/futurity"
	. "github.com/dogmatiq/futurity/instrumented"
	"github.com/dogmatiq/futurity/internal/test"
	"github.com/dogmatiq/futurity/telemetry"
)

var errTest = errors.New("<error>")

func TestFuture(t *testing.T) {
	t.Parallel()

	t.Run("it passes results through unchanged", func(t *testing.T) {
		t.Parallel()

		p := futurity.NewPromise[int, error]()
		f := New[int, error](p, nil, "read")

		got := make(chan futurity.Result[int, error], 1)
		f.Schedule(func(r futurity.Result[int, error]) {
			got <- r
		})

		p.Resolve(futurity.Ok[int, error](42))

		test.ExpectChannelToReceive(t, got, futurity.Ok[int, error](42))
	})

	t.Run("it works with a zero-valued provider", func(t *testing.T) {
		t.Parallel()

		p := futurity.NewPromise[int, error]()
		f := New[int, error](p, &telemetry.Provider{}, "read")

		got := make(chan futurity.Result[int, error], 1)
		f.Schedule(func(r futurity.Result[int, error]) {
			got <- r
		})

		p.Resolve(futurity.Fail[int, error](errTest))

		test.ExpectChannelToReceive(t, got, futurity.Fail[int, error](errTest))
	})

	t.Run("it forwards cancellation to the underlying future", func(t *testing.T) {
		t.Parallel()

		p := futurity.NewPromise[int, error]()
		f := New[int, error](p, nil, "read")

		got := make(chan futurity.Result[int, error], 1)
		f.Schedule(func(r futurity.Result[int, error]) {
			got <- r
		})

		f.Cancel()
		p.Resolve(futurity.Ok[int, error](42))

		test.ExpectChannelToBlock(t, got)
	})

	t.Run("it can be canceled before being scheduled", func(t *testing.T) {
		t.Parallel()

		p := futurity.NewPromise[int, error]()
		f := New[int, error](p, nil, "read")

		f.Cancel()

		got := make(chan futurity.Result[int, error], 1)
		f.Schedule(func(r futurity.Result[int, error]) {
			got <- r
		})

		test.ExpectChannelToReceive(t, got, futurity.Canceled[int, error]())
	})
}
