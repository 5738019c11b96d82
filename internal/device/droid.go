package device

import (
	"context"
	"fmt"
	"image"
	"io"

	"github.com/jcorbin/intcode/internal/pipe"
)

// Cell is what a repair droid knows about one position.
type Cell uint8

// Droid map cells.
const (
	Unknown Cell = iota
	Open
	Blocked
	Oxygen
)

var cellGlyphs = [...]byte{
	Unknown: '?',
	Open:    '.',
	Blocked: '#',
	Oxygen:  'o',
}

// Droid movement commands.
const (
	North int64 = 1
	South int64 = 2
	West  int64 = 3
	East  int64 = 4
)

// Droid status replies.
const (
	HitWall     int64 = 0
	Moved       int64 = 1
	FoundOxygen int64 = 2
)

// heading lists movement commands clockwise, so that turning right is the
// next entry and turning left the one before.
var heading = [...]struct {
	cmd int64
	dir image.Point
}{
	{East, Right},
	{South, Down},
	{West, Left},
	{North, Up},
}

// Droid is a repair droid that explores by keeping a wall on its right.
//
// Each read hands the machine a movement command; the machine answers with a
// status reply. Once the droid stands on the oxygen system, it reads
// pipe.Stop, ending the machine.
type Droid struct {
	state

	// MaxMoves, if non-zero, stops the machine after that many commands.
	MaxMoves int

	// Logf, if not nil, receives a line for every command and reply.
	Logf func(mess string, args ...interface{})

	grid   map[image.Point]Cell
	pos    image.Point
	facing int
	moves  int
	oxygen image.Point
	found  bool
}

// NewDroid creates a droid facing east on an open cell.
func NewDroid() *Droid {
	return &Droid{
		state: state{id: "droid"},
		grid:  map[image.Point]Cell{{}: Open},
	}
}

// Read chooses the next movement command, or returns pipe.Stop once the
// oxygen system has been reached.
func (dr *Droid) Read(ctx context.Context) (pipe.Token, error) {
	if err := dr.check("read"); err != nil {
		return pipe.Token{}, err
	}
	if dr.grid[dr.pos] == Oxygen {
		dr.logf("found oxygen system @%v", dr.pos)
		return pipe.Stop, nil
	}
	if dr.MaxMoves > 0 && dr.moves >= dr.MaxMoves {
		dr.logf("giving up after %v moves", dr.moves)
		return pipe.Stop, nil
	}
	dr.facing = dr.nextFacing()
	dr.moves++
	cmd := heading[dr.facing].cmd
	dr.logf("move %v from %v", cmd, dr.pos)
	return pipe.Int(cmd), nil
}

// nextFacing keeps a wall on the droid's right: carry on while there is one
// and the way ahead is clear, turn right to find it again when it is gone,
// and turn left when boxed in ahead.
func (dr *Droid) nextFacing() int {
	right := (dr.facing + 1) % len(heading)
	left := (dr.facing + 3) % len(heading)
	front := dr.grid[dr.ahead(dr.facing)]
	switch dr.grid[dr.ahead(right)] {
	case Blocked:
		if front == Blocked {
			return left
		}
		return dr.facing
	default:
		return right
	}
}

func (dr *Droid) ahead(facing int) image.Point {
	return dr.pos.Add(heading[facing].dir)
}

// Write records the status reply to the last movement command.
func (dr *Droid) Write(ctx context.Context, tok pipe.Token) error {
	n, err := dr.value(ctx, tok)
	if err != nil {
		return err
	}
	next := dr.ahead(dr.facing)
	switch n {
	case HitWall:
		dr.grid[next] = Blocked
	case Moved:
		dr.grid[next] = Open
		dr.pos = next
	case FoundOxygen:
		dr.grid[next] = Oxygen
		dr.pos = next
		dr.oxygen, dr.found = next, true
	default:
		return fmt.Errorf("%v: invalid status %v", dr.id, n)
	}
	dr.logf("status %v now @%v", n, dr.pos)
	return nil
}

// Position returns where the droid is, relative to where it started.
func (dr *Droid) Position() image.Point { return dr.pos }

// Moves returns how many movement commands have been issued.
func (dr *Droid) Moves() int { return dr.moves }

// Cell returns what is known about pt.
func (dr *Droid) Cell(pt image.Point) Cell { return dr.grid[pt] }

// Oxygen returns the position of the oxygen system, if found.
func (dr *Droid) Oxygen() (image.Point, bool) { return dr.oxygen, dr.found }

// Distance returns the fewest moves from the start to the oxygen system,
// through cells known to be open, or -1 if no such path is known.
func (dr *Droid) Distance() int {
	if !dr.found {
		return -1
	}
	dist := map[image.Point]int{{}: 0}
	queue := []image.Point{{}}
	for len(queue) > 0 {
		pt := queue[0]
		queue = queue[1:]
		if pt == dr.oxygen {
			return dist[pt]
		}
		for _, h := range heading {
			next := pt.Add(h.dir)
			if _, seen := dist[next]; seen {
				continue
			}
			if cell := dr.grid[next]; cell == Open || cell == Oxygen {
				dist[next] = dist[pt] + 1
				queue = append(queue, next)
			}
		}
	}
	return -1
}

// Render draws every known cell, marking the droid with 'D' unless it
// stands on the oxygen system.
func (dr *Droid) Render(w io.Writer) error {
	return render(w, boundsOf(image.Rectangle{}, dr.grid), func(pt image.Point) byte {
		cell := dr.grid[pt]
		if pt == dr.pos && cell != Oxygen {
			return 'D'
		}
		return cellGlyphs[cell]
	}, "")
}

func (dr *Droid) logf(mess string, args ...interface{}) {
	if dr.Logf != nil {
		dr.Logf(mess, args...)
	}
}
