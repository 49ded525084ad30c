package signaling_test

import (
	"testing"

	. "github.com/dogmatiq/futurity/internal/signaling"
)

func TestLatch(t *testing.T) {
	t.Parallel()

	t.Run("it is readable once signaled", func(t *testing.T) {
		t.Parallel()

		var l Latch

		select {
		case <-l.Signaled():
			t.Fatal("did not expect the latch to be signaled")
		default:
		}

		l.Signal()

		select {
		case <-l.Signaled():
		default:
			t.Fatal("expected the latch to be signaled")
		}

		if !l.IsSignaled() {
			t.Fatal("expected IsSignaled() to report true")
		}
	})

	t.Run("it tolerates repeated signals", func(t *testing.T) {
		t.Parallel()

		var l Latch

		l.Signal()
		l.Signal()

		select {
		case <-l.Signaled():
		default:
			t.Fatal("expected the latch to be signaled")
		}
	})
}
