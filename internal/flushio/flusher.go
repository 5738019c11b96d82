// Package flushio provides buffered writers that know whether they need
// flushing, and redraws whole screens through them.
package flushio

import (
	"bufio"
	"io"
)

// WriteFlusher is an io.Writer that may hold buffered data until Flush.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// NewWriteFlusher returns w if it already flushes, w with a no-op Flush if it
// is an in-memory buffer or io.Discard, and a new bufio.Writer otherwise.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	switch impl := w.(type) {
	case WriteFlusher:
		return impl
	case interface {
		io.Writer
		Len() int
		Reset()
	}:
		return nopFlusher{w}
	}
	if w == io.Discard {
		return nopFlusher{w}
	}
	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nopFlusher) Flush() error { return nil }

// clearScreen moves the cursor home and erases the display.
const clearScreen = "\x1b[H\x1b[2J"

// Redraw clears a terminal screen, draws into it, and flushes, so that a
// frame appears all at once.
func Redraw(w WriteFlusher, draw func(w io.Writer) error) error {
	if _, err := io.WriteString(w, clearScreen); err != nil {
		return err
	}
	if err := draw(w); err != nil {
		return err
	}
	return w.Flush()
}
