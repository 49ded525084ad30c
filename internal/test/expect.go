package test

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Expect compares two values and fails the test if they are different.
func Expect[T any](
	t FailerT,
	failMessage string,
	got, want T,
) {
	t.Helper()

	if diff := cmp.Diff(
		want,
		got,
		cmpopts.EquateEmpty(),
		cmpopts.EquateErrors(),
	); diff != "" {
		t.Log(failMessage)
		t.Fatal(diff)
	}
}

// ExpectChannelToReceive waits until a value is received from a channel
// and then compares it to the expected value.
func ExpectChannelToReceive[T any](
	t TestingT,
	ch <-chan T,
	want T,
) T {
	t.Helper()

	ctx := contextOf(t)

	var got T

	select {
	case <-ctx.Done():
		t.Fatalf("no value received on channel: %s", ctx.Err())
	case v, ok := <-ch:
		if !ok {
			t.Fatal("channel closed while expecting to receive a value")
		}

		Expect(
			t,
			"channel received an unexpected value",
			v,
			want,
		)
		got = v
	}

	return got
}

// ReceiveFromChannel waits until a value is received from a channel and
// returns it without inspecting it.
func ReceiveFromChannel[T any](
	t TestingT,
	ch <-chan T,
) T {
	t.Helper()

	ctx := contextOf(t)

	var got T

	select {
	case <-ctx.Done():
		t.Fatalf("no value received on channel: %s", ctx.Err())
	case v, ok := <-ch:
		if !ok {
			t.Fatal("channel closed while expecting to receive a value")
		}
		got = v
	}

	return got
}

// ExpectChannelToBlock fails the test if a value is received from the
// channel before the test's context is canceled.
func ExpectChannelToBlock[T any](
	t TestingT,
	ch <-chan T,
) {
	t.Helper()

	ctx := contextOf(t)

	select {
	case <-ctx.Done():
	case v := <-ch:
		t.Fatalf("unexpected value received on channel: %v", v)
	}
}
