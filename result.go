package futurity

import "reflect"

// Kind enumerates the ways a future can complete.
type Kind int

const (
	// KindOK indicates that the future produced a value.
	KindOK Kind = iota

	// KindFailed indicates that the future failed with a domain error.
	KindFailed

	// KindCanceled indicates that the future was abandoned before it
	// produced a value.
	KindCanceled

	// KindPanicked indicates that the computation panicked while
	// producing a value. The panic payload is carried in the result so
	// that it can be re-raised by the consumer rather than silently
	// swallowed.
	KindPanicked
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindFailed:
		return "failed"
	case KindCanceled:
		return "canceled"
	case KindPanicked:
		return "panicked"
	default:
		return "unknown"
	}
}

// Result is the outcome of a completed future: a value of type T, a
// domain error of type E, a cancellation, or a captured panic.
//
// Each future produces at most one Result, ever.
type Result[T, E any] struct {
	kind     Kind
	value    T
	err      E
	panicked any
}

// Ok returns a successful result carrying v.
func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{kind: KindOK, value: v}
}

// Fail returns a failed result carrying the domain error err.
func Fail[T, E any](err E) Result[T, E] {
	return Result[T, E]{kind: KindFailed, err: err}
}

// Canceled returns a result indicating that the future was abandoned
// before it completed.
func Canceled[T, E any]() Result[T, E] {
	return Result[T, E]{kind: KindCanceled}
}

// Panicked returns a result carrying the payload of a panic that
// occurred while the future was producing its value.
func Panicked[T, E any](p any) Result[T, E] {
	return Result[T, E]{kind: KindPanicked, panicked: p}
}

// Kind returns the kind of the result.
func (r Result[T, E]) Kind() Kind {
	return r.kind
}

// Value returns the result's value, and true if the result is KindOK.
func (r Result[T, E]) Value() (T, bool) {
	return r.value, r.kind == KindOK
}

// Failure returns the result's domain error, and true if the result is
// KindFailed.
func (r Result[T, E]) Failure() (E, bool) {
	return r.err, r.kind == KindFailed
}

// IsCanceled returns true if the result is KindCanceled.
func (r Result[T, E]) IsCanceled() bool {
	return r.kind == KindCanceled
}

// Panic returns the captured panic payload, and true if the result is
// KindPanicked.
func (r Result[T, E]) Panic() (any, bool) {
	return r.panicked, r.kind == KindPanicked
}

// Equal reports whether r and o have the same kind and equal contents.
func (r Result[T, E]) Equal(o Result[T, E]) bool {
	return r.kind == o.kind &&
		reflect.DeepEqual(r.value, o.value) &&
		reflect.DeepEqual(r.err, o.err) &&
		reflect.DeepEqual(r.panicked, o.panicked)
}
