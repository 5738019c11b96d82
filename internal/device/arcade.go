package device

import (
	"context"
	"fmt"
	"image"
	"io"

	"github.com/jcorbin/intcode/internal/pipe"
)

// Tile is what an arcade screen shows at one position.
type Tile int64

// Arcade tiles.
const (
	Empty  Tile = 0
	Wall   Tile = 1
	Block  Tile = 2
	Paddle Tile = 3
	Ball   Tile = 4
)

var tileGlyphs = [...]byte{
	Empty:  '.',
	Wall:   '#',
	Block:  '+',
	Paddle: '_',
	Ball:   '*',
}

// Glyph returns the character that renders t.
func (t Tile) Glyph() byte {
	if t >= 0 && int(t) < len(tileGlyphs) {
		return tileGlyphs[t]
	}
	return '?'
}

// scorePos is the screen position whose writes set the score instead.
var scorePos = image.Pt(-1, 0)

// Arcade is an arcade cabinet.
//
// The machine draws by writing x, y, tile triples; a triple at (-1, 0) sets
// the score instead. Each read hands the machine a joystick position, -1, 0,
// or 1, that moves the paddle toward the ball.
type Arcade struct {
	state

	// Frame, if not nil, is called before the joystick is read; the screen
	// holds a complete frame at that point.
	Frame func(arc *Arcade)

	screen  map[image.Point]Tile
	score   int64
	ball    image.Point
	paddle  image.Point
	triple  [3]int64
	pending int
}

// NewArcade creates an arcade with a blank screen.
func NewArcade() *Arcade {
	return &Arcade{
		state:  state{id: "arcade"},
		screen: make(map[image.Point]Tile),
	}
}

// Read returns the joystick position that tracks the ball.
func (arc *Arcade) Read(ctx context.Context) (pipe.Token, error) {
	if err := arc.check("read"); err != nil {
		return pipe.Token{}, err
	}
	if arc.Frame != nil {
		arc.Frame(arc)
	}
	return pipe.Int(int64(sign(arc.ball.X - arc.paddle.X))), nil
}

// Write collects one value of an x, y, tile triple.
func (arc *Arcade) Write(ctx context.Context, tok pipe.Token) error {
	n, err := arc.value(ctx, tok)
	if err != nil {
		return err
	}
	arc.triple[arc.pending] = n
	if arc.pending++; arc.pending < len(arc.triple) {
		return nil
	}
	arc.pending = 0

	pt := image.Pt(int(arc.triple[0]), int(arc.triple[1]))
	if pt == scorePos {
		arc.score = arc.triple[2]
		return nil
	}
	switch tile := Tile(arc.triple[2]); tile {
	case Empty:
		delete(arc.screen, pt)
	case Wall, Block:
		arc.screen[pt] = tile
	case Paddle:
		arc.screen[pt] = tile
		arc.paddle = pt
	case Ball:
		arc.screen[pt] = tile
		arc.ball = pt
	default:
		return fmt.Errorf("%v: invalid tile %v @%v", arc.id, arc.triple[2], pt)
	}
	return nil
}

// Score returns the last score drawn.
func (arc *Arcade) Score() int64 { return arc.score }

// Tile returns the tile at pt.
func (arc *Arcade) Tile(pt image.Point) Tile { return arc.screen[pt] }

// Blocks returns how many block tiles are on screen.
func (arc *Arcade) Blocks() int {
	n := 0
	for _, tile := range arc.screen {
		if tile == Block {
			n++
		}
	}
	return n
}

// Render draws the score line followed by the screen, dropping trailing
// empty tiles and the blank lines that leaves.
func (arc *Arcade) Render(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Score: %v\n", arc.score); err != nil {
		return err
	}
	bounds := boundsOf(image.Rect(0, 0, 1, 1), arc.screen)
	return render(w, bounds, func(pt image.Point) byte {
		return arc.screen[pt].Glyph()
	}, string(Empty.Glyph()))
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
