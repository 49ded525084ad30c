package test

import (
	"context"
	"time"
)

// ContextWithTimeout returns a context that is canceled when the test
// completes, or when the timeout expires, whichever comes first.
func ContextWithTimeout(
	t TestingT,
	timeout time.Duration,
) (context.Context, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)

	return ctx, cancel
}

// contextOf returns the context used to bound the helpers in this
// package.
func contextOf(t TestingT) context.Context {
	t.Helper()

	ctx, _ := ContextWithTimeout(t, 3*time.Second)
	return ctx
}
