package exclusive_test

import (
	"testing"

	. "github.com/dogmatiq/futurity/internal/exclusive"
	"github.com/dogmatiq/futurity/internal/test"
)

func TestCell(t *testing.T) {
	t.Parallel()

	t.Run("func Set()", func(t *testing.T) {
		t.Parallel()

		t.Run("it stores a value for a later take", func(t *testing.T) {
			t.Parallel()

			var c Cell[string]
			c.Set("<value>")

			v, ok := c.Take()
			if !ok {
				t.Fatal("expected the cell to contain a value")
			}

			test.Expect(
				t,
				"unexpected value",
				v,
				"<value>",
			)
		})

		t.Run("it panics if the cell already contains a value", func(t *testing.T) {
			t.Parallel()

			var c Cell[int]
			c.Set(1)

			test.ExpectPanic(
				t,
				"cell already contains a value",
				func() {
					c.Set(2)
				},
			)
		})
	})

	t.Run("func Take()", func(t *testing.T) {
		t.Parallel()

		t.Run("it reports an empty cell", func(t *testing.T) {
			t.Parallel()

			var c Cell[int]

			if _, ok := c.Take(); ok {
				t.Fatal("did not expect the cell to contain a value")
			}
		})

		t.Run("it leaves the cell empty", func(t *testing.T) {
			t.Parallel()

			var c Cell[int]
			c.Set(1)

			if _, ok := c.Take(); !ok {
				t.Fatal("expected the cell to contain a value")
			}

			if _, ok := c.Take(); ok {
				t.Fatal("did not expect the cell to still contain a value")
			}
		})
	})
}
