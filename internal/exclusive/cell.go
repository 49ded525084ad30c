package exclusive

import "sync/atomic"

// Cell holds at most one value of type V, guarded by a non-blocking
// exclusive lock.
//
// It is intended to guard critical sections that complete without
// suspending. Contested access is a programming error, not a runtime
// condition to wait out, so it panics rather than blocking.
type Cell[V any] struct {
	guard atomic.Bool
	value V
	full  bool
}

// Set stores v in the cell.
//
// It panics if the cell already contains a value, or if the cell is in
// use by another goroutine.
func (c *Cell[V]) Set(v V) {
	c.lock()
	defer c.unlock()

	if c.full {
		panic("cell already contains a value")
	}

	c.value = v
	c.full = true
}

// Take removes and returns the cell's value, if any.
//
// It panics if the cell is in use by another goroutine.
func (c *Cell[V]) Take() (V, bool) {
	c.lock()
	defer c.unlock()

	v := c.value
	ok := c.full

	var zero V
	c.value = zero
	c.full = false

	return v, ok
}

func (c *Cell[V]) lock() {
	if !c.guard.CompareAndSwap(false, true) {
		panic("cell is in use by another goroutine")
	}
}

func (c *Cell[V]) unlock() {
	c.guard.Store(false)
}
