package futurity

// Map returns a future that transforms the value produced by f with fn.
//
// Failures, cancellations and panics pass through unchanged. A panic
// inside fn itself is captured as a [KindPanicked] result.
func Map[T, U, E any](f Future[T, E], fn func(T) U) Future[U, E] {
	return &mapped[T, U, E]{
		next: f,
		fn:   fn,
	}
}

type mapped[T, U, E any] struct {
	next Future[T, E]
	fn   func(T) U
}

func (m *mapped[T, U, E]) Schedule(cb Callback[U, E]) {
	m.next.Schedule(func(res Result[T, E]) {
		cb(m.apply(res))
	})
}

func (m *mapped[T, U, E]) Cancel() {
	m.next.Cancel()
}

func (m *mapped[T, U, E]) apply(res Result[T, E]) (out Result[U, E]) {
	switch res.kind {
	case KindOK:
		defer func() {
			if p := recover(); p != nil {
				out = Panicked[U, E](p)
			}
		}()
		return Ok[U, E](m.fn(res.value))

	case KindFailed:
		return Fail[U, E](res.err)

	case KindCanceled:
		return Canceled[U, E]()

	default:
		return Panicked[U, E](res.panicked)
	}
}
