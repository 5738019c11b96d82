package device

import (
	"context"
	"fmt"
	"image"
	"io"

	"github.com/jcorbin/intcode/internal/pipe"
)

// Color is the paint on a hull panel.
type Color int64

// Hull colors.
const (
	Black Color = 0
	White Color = 1
)

// Robot is a hull painting robot.
//
// Each read hands the machine the color of the panel under the robot. The
// machine answers with pairs of writes: first the color to paint the panel,
// then a turn, 0 for left and 1 for right, after which the robot moves one
// panel forward.
type Robot struct {
	state

	// MaxMoves, if non-zero, stops the machine once the robot has moved that
	// many times.
	MaxMoves int

	pos     image.Point
	dir     image.Point
	hull    map[image.Point]Color
	painted map[image.Point]struct{}
	moves   int
	turning bool
}

// NewRobot creates a robot facing up on a panel of the given color.
func NewRobot(start Color) *Robot {
	rob := &Robot{
		state:   state{id: "robot"},
		dir:     Up,
		hull:    make(map[image.Point]Color),
		painted: make(map[image.Point]struct{}),
	}
	if start != Black {
		rob.hull[rob.pos] = start
	}
	return rob
}

// Read returns the color under the robot, or pipe.Stop once MaxMoves is
// reached.
func (rob *Robot) Read(ctx context.Context) (pipe.Token, error) {
	if err := rob.check("read"); err != nil {
		return pipe.Token{}, err
	}
	if rob.MaxMoves > 0 && rob.moves >= rob.MaxMoves {
		return pipe.Stop, nil
	}
	return pipe.Int(int64(rob.hull[rob.pos])), nil
}

// Write paints the current panel, or turns and moves, alternately.
func (rob *Robot) Write(ctx context.Context, tok pipe.Token) error {
	n, err := rob.value(ctx, tok)
	if err != nil {
		return err
	}

	if !rob.turning {
		switch color := Color(n); color {
		case Black, White:
			rob.hull[rob.pos] = color
			rob.painted[rob.pos] = struct{}{}
		default:
			return fmt.Errorf("%v: invalid paint color %v", rob.id, n)
		}
		rob.turning = true
		return nil
	}

	switch n {
	case 0:
		rob.dir = turnLeft(rob.dir)
	case 1:
		rob.dir = turnRight(rob.dir)
	default:
		return fmt.Errorf("%v: invalid turn %v", rob.id, n)
	}
	rob.pos = rob.pos.Add(rob.dir)
	rob.moves++
	rob.turning = false
	return nil
}

// Position returns where the robot is, relative to where it started.
func (rob *Robot) Position() image.Point { return rob.pos }

// Moves returns how many times the robot has moved.
func (rob *Robot) Moves() int { return rob.moves }

// Painted returns how many distinct panels have been painted at least once.
func (rob *Robot) Painted() int { return len(rob.painted) }

// Color returns the color of the panel at pt.
func (rob *Robot) Color(pt image.Point) Color { return rob.hull[pt] }

// Render draws the smallest area holding every white panel, '#' for white
// and '.' for black.
func (rob *Robot) Render(w io.Writer) error {
	white := make(map[image.Point]Color)
	for pt, color := range rob.hull {
		if color == White {
			white[pt] = color
		}
	}
	return render(w, boundsOf(image.Rectangle{}, white), func(pt image.Point) byte {
		if white[pt] == White {
			return '#'
		}
		return '.'
	}, "")
}
