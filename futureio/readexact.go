// Package futureio provides poll-style futures over [io.Reader] byte
// sources.
package futureio

import (
	"errors"
	"io"

	"github.com/dogmatiq/futurity"
)

// ErrWouldBlock is matched (via [errors.Is]) against read errors to
// detect sources that have no bytes available yet. A read that would
// block leaves the future not-ready rather than failing it.
var ErrWouldBlock = errors.New("read would block")

// ReadDone is the outcome of a successful [ReadExact]: ownership of both
// the source and the filled buffer returns to the caller.
type ReadDone struct {
	Reader io.Reader
	Buf    []byte
}

// ReadExact is a future that reads from r until buf is full.
//
// It fails with [io.ErrUnexpectedEOF] if the source is exhausted before
// the buffer is full, and with the source's own error on any other read
// failure. It implements [futurity.Pollable]; use [futurity.Drive] to
// consume it through the callback contract.
type ReadExact struct {
	reader io.Reader
	buf    []byte
	pos    int
	done   bool
}

// NewReadExact returns a future that reads exactly len(buf) bytes from r.
func NewReadExact(r io.Reader, buf []byte) *ReadExact {
	return &ReadExact{
		reader: r,
		buf:    buf,
	}
}

// Poll attempts to fill the buffer from the source, starting at the
// internal cursor. Polling again after a result has been returned
// panics.
func (f *ReadExact) Poll() (futurity.Result[ReadDone, error], bool) {
	if f.done {
		panic("futureio: poll of a completed read")
	}

	for f.pos < len(f.buf) {
		n, err := f.reader.Read(f.buf[f.pos:])
		f.pos += n

		if f.pos == len(f.buf) {
			break
		}

		switch {
		case errors.Is(err, ErrWouldBlock):
			return futurity.Result[ReadDone, error]{}, false

		case err == io.EOF, err == nil && n == 0:
			return f.fail(io.ErrUnexpectedEOF), true

		case err != nil:
			return f.fail(err), true
		}
	}

	f.done = true

	done := ReadDone{f.reader, f.buf}
	f.reader = nil
	f.buf = nil

	return futurity.Ok[ReadDone, error](done), true
}

func (f *ReadExact) fail(err error) futurity.Result[ReadDone, error] {
	f.done = true
	f.reader = nil
	f.buf = nil

	return futurity.Fail[ReadDone, error](err)
}

var _ futurity.Pollable[ReadDone, error] = (*ReadExact)(nil)
