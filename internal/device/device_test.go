package device_test

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/jcorbin/intcode/internal/device"
	"github.com/jcorbin/intcode/internal/intcode"
	"github.com/jcorbin/intcode/internal/pipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	t.Cleanup(cancel)
	return ctx
}

func runWith(t *testing.T, prog string, dev intcode.Device, opts ...intcode.VMOption) *intcode.VM {
	vm := intcode.New(intcode.MustParse(prog), append([]intcode.VMOption{
		intcode.WithName(t.Name()),
		intcode.WithIO(dev),
		intcode.WithLogf(t.Logf),
	}, opts...)...)
	require.NoError(t, vm.Run(testContext(t)), "unexpected run error")
	return vm
}

func render(t *testing.T, render func(sb *strings.Builder) error) string {
	var sb strings.Builder
	require.NoError(t, render(&sb))
	return sb.String()
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

func TestRobot(t *testing.T) {
	t.Run("walk", func(t *testing.T) {
		rob := device.NewRobot(device.Black)
		vm := runWith(t, "3,100,"+
			"104,1,104,0,104,0,104,0,104,1,104,0,104,1,104,0,"+
			"3,101,"+
			"104,0,104,1,104,1,104,0,104,1,104,0,"+
			"99", rob)

		seen, err := vm.Peek(101)
		require.NoError(t, err)
		assert.Equal(t, int64(device.White), seen, "expected to see the first painted panel again")

		assert.Equal(t, 6, rob.Painted())
		assert.Equal(t, 7, rob.Moves())
		assert.Equal(t, image.Pt(0, -1), rob.Position())
		assert.Equal(t, device.Black, rob.Color(image.Pt(0, 0)))
		assert.Equal(t, lines(
			"..#",
			"..#",
			"##.",
		), render(t, func(sb *strings.Builder) error { return rob.Render(sb) }))
		assert.False(t, rob.IsOpen(), "expected halt to close the robot")
	})

	t.Run("start white", func(t *testing.T) {
		rob := device.NewRobot(device.White)
		tok, err := rob.Read(testContext(t))
		require.NoError(t, err)
		assert.Equal(t, pipe.Int(1), tok)
		assert.Equal(t, 0, rob.Painted(), "starting color is not paint")
	})

	t.Run("max moves", func(t *testing.T) {
		rob := device.NewRobot(device.Black)
		rob.MaxMoves = 10
		vm := runWith(t, "3,100,104,1,104,0,1105,1,0", rob)
		assert.Equal(t, intcode.Halted, vm.State())
		assert.Equal(t, 10, rob.Moves())
		assert.Equal(t, 4, rob.Painted())
	})

	t.Run("invalid", func(t *testing.T) {
		ctx := testContext(t)
		rob := device.NewRobot(device.Black)
		assert.EqualError(t, rob.Write(ctx, pipe.Int(2)), "robot: invalid paint color 2")
		require.NoError(t, rob.Write(ctx, pipe.Int(1)))
		assert.EqualError(t, rob.Write(ctx, pipe.Int(-1)), "robot: invalid turn -1")
		assert.EqualError(t, rob.Write(ctx, pipe.Stop), "robot: unexpected <stop> token")
		require.NoError(t, rob.Close())
		_, err := rob.Read(ctx)
		assert.True(t, errors.Is(err, pipe.ErrClosed))
		assert.True(t, errors.Is(rob.Prompt("input"), pipe.ErrClosed))
	})
}

func TestArcade(t *testing.T) {
	t.Run("game", func(t *testing.T) {
		arc := device.NewArcade()
		frames := 0
		arc.Frame = func(arc *device.Arcade) { frames++ }
		vm := runWith(t, ""+
			"104,3,104,4,104,3,"+
			"104,5,104,2,104,4,"+
			"104,2,104,0,104,2,"+
			"3,100,"+
			"104,-1,104,0,4,100,"+
			"99", arc)

		joy, err := vm.Peek(100)
		require.NoError(t, err)
		assert.Equal(t, int64(1), joy, "expected joystick toward the ball")
		assert.Equal(t, 1, frames)
		assert.Equal(t, int64(1), arc.Score())
		assert.Equal(t, 1, arc.Blocks())
		assert.Equal(t, device.Ball, arc.Tile(image.Pt(5, 2)))
		assert.Equal(t, lines(
			"Score: 1",
			"..+",
			".....*",
			"..._",
		), render(t, func(sb *strings.Builder) error { return arc.Render(sb) }))
	})

	t.Run("joystick", func(t *testing.T) {
		ctx := testContext(t)
		arc := device.NewArcade()
		draw := func(x, y int64, tile device.Tile) {
			for _, n := range []int64{x, y, int64(tile)} {
				require.NoError(t, arc.Write(ctx, pipe.Int(n)))
			}
		}
		read := func() pipe.Token {
			tok, err := arc.Read(ctx)
			require.NoError(t, err)
			return tok
		}

		draw(4, 9, device.Paddle)
		draw(4, 3, device.Ball)
		assert.Equal(t, pipe.Int(0), read())

		draw(4, 3, device.Empty)
		draw(1, 4, device.Ball)
		assert.Equal(t, pipe.Int(-1), read())
		assert.Equal(t, device.Empty, arc.Tile(image.Pt(4, 3)))

		require.NoError(t, arc.Write(ctx, pipe.Int(0)))
		require.NoError(t, arc.Write(ctx, pipe.Int(0)))
		assert.EqualError(t, arc.Write(ctx, pipe.Int(7)), "arcade: invalid tile 7 @(0,0)")
	})

	t.Run("free play", func(t *testing.T) {
		arc := device.NewArcade()
		// inserting quarters turns the leading add into a mul
		prog := "1,13,14,15,104,-1,104,0,4,15,99,0,0,3,4"
		runWith(t, prog, arc)
		assert.Equal(t, int64(7), arc.Score())

		arc = device.NewArcade()
		runWith(t, prog, arc, intcode.WithMemAt(0, 2))
		assert.Equal(t, int64(12), arc.Score())
	})
}

func TestDroid(t *testing.T) {
	t.Run("maze", func(t *testing.T) {
		dr := device.NewDroid()
		dr.Logf = t.Logf
		exploreMaze(t, dr, image.Pt(1, 1),
			"#####",
			"#S..#",
			"###.#",
			"#O..#",
			"#####",
		)

		oxy, found := dr.Oxygen()
		require.True(t, found, "expected to find the oxygen system")
		assert.Equal(t, image.Pt(0, 2), oxy)
		assert.Equal(t, oxy, dr.Position())
		assert.Equal(t, 6, dr.Distance())
		assert.Equal(t, 13, dr.Moves())
		assert.Equal(t, device.Blocked, dr.Cell(image.Pt(1, 1)))
		assert.Equal(t, lines(
			"?#??",
			"#...",
			"?##.",
			"?o..",
		), render(t, func(sb *strings.Builder) error { return dr.Render(sb) }))
	})

	t.Run("max moves", func(t *testing.T) {
		dr := device.NewDroid()
		dr.MaxMoves = 20
		exploreMaze(t, dr, image.Pt(1, 1),
			"....",
			"....",
			"....",
		)
		assert.Equal(t, 20, dr.Moves())
		assert.Equal(t, -1, dr.Distance())
	})

	t.Run("invalid status", func(t *testing.T) {
		dr := device.NewDroid()
		assert.EqualError(t, dr.Write(testContext(t), pipe.Int(3)), "droid: invalid status 3")
	})
}

var droidMoves = map[int64]image.Point{
	device.North: device.Up,
	device.South: device.Down,
	device.West:  device.Left,
	device.East:  device.Right,
}

// exploreMaze plays the part of the droid's machine, answering its commands
// from a maze of '#' walls and an 'O' oxygen system; cells outside the maze
// are open.
func exploreMaze(t *testing.T, dr *device.Droid, start image.Point, maze ...string) {
	ctx := testContext(t)
	at := func(pt image.Point) byte {
		if pt.Y < 0 || pt.Y >= len(maze) || pt.X < 0 || pt.X >= len(maze[pt.Y]) {
			return '.'
		}
		return maze[pt.Y][pt.X]
	}
	pos := start
	for i := 0; i < 1000; i++ {
		tok, err := dr.Read(ctx)
		require.NoError(t, err)
		if tok.IsStop() {
			return
		}
		cmd, _ := tok.Int()
		dir, ok := droidMoves[cmd]
		require.True(t, ok, "invalid droid command %v", tok)

		next := pos.Add(dir)
		reply := device.Moved
		switch at(next) {
		case '#':
			reply = device.HitWall
		case 'O':
			reply = device.FoundOxygen
			pos = next
		default:
			pos = next
		}
		require.NoError(t, dr.Write(ctx, pipe.Int(reply)))
	}
	t.Fatalf("droid did not stop")
}
