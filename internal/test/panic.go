package test

// ExpectPanic calls fn and fails the test unless it panics with the
// expected value.
func ExpectPanic(
	t FailerT,
	expect string,
	fn func(),
) {
	t.Helper()

	defer func() {
		t.Helper()

		if actual := recover(); actual != any(expect) {
			t.Fatalf("unexpected panic value: got %v, want %q", actual, expect)
		}
	}()

	fn()
}
