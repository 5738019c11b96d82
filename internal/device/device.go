// Package device implements reactive Intcode devices: each one computes the
// input it hands a machine from the outputs that machine has written so far.
//
// Every device here is meant to be attached to a single machine through
// intcode.WithIO, and is not safe for concurrent use.
package device

import (
	"context"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/jcorbin/intcode/internal/pipe"
)

// state is the open/closed bookkeeping shared by all devices.
type state struct {
	id     string
	closed bool
}

func (st *state) Close() error { st.closed = true; return nil }
func (st *state) IsOpen() bool { return !st.closed }
func (st *state) ID() string   { return st.id }

func (st *state) Prompt(mess string) error { return st.check("prompt") }

func (st *state) check(op string) error {
	if st.closed {
		return fmt.Errorf("%v %v: %w", st.id, op, pipe.ErrClosed)
	}
	return nil
}

// value unpacks an integer token written to a device.
func (st *state) value(ctx context.Context, tok pipe.Token) (int64, error) {
	if err := st.check("write"); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n, ok := tok.Int()
	if !ok {
		return 0, fmt.Errorf("%v: unexpected %v token", st.id, tok)
	}
	return n, nil
}

// Compass directions in screen coordinates, where y grows downward.
var (
	Up    = image.Pt(0, -1)
	Down  = image.Pt(0, 1)
	Left  = image.Pt(-1, 0)
	Right = image.Pt(1, 0)
)

func turnLeft(dir image.Point) image.Point  { return image.Pt(dir.Y, -dir.X) }
func turnRight(dir image.Point) image.Point { return image.Pt(-dir.Y, dir.X) }

// boundsOf returns the smallest rectangle holding every key of m, unioned
// with within.
func boundsOf[T any](within image.Rectangle, m map[image.Point]T) image.Rectangle {
	bounds := within
	first := within.Empty()
	for pt := range m {
		cell := image.Rectangle{pt, pt.Add(image.Pt(1, 1))}
		if first {
			bounds, first = cell, false
		} else {
			bounds = bounds.Union(cell)
		}
	}
	return bounds
}

// render writes one line per row of bounds, built from glyph.
func render(w io.Writer, bounds image.Rectangle, glyph func(pt image.Point) byte, trim string) error {
	var sb strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		line := make([]byte, 0, bounds.Dx())
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			line = append(line, glyph(image.Pt(x, y)))
		}
		if trim != "" {
			line = []byte(strings.TrimRight(string(line), trim))
			if len(line) == 0 {
				continue
			}
		}
		sb.Write(line)
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
