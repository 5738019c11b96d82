package pipe

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrClosed is returned when reading, writing, or prompting through a closed
// pipe end, or reading a pipe that is drained and closed for writing.
var ErrClosed = errors.New("pipe closed")

// Pipe is an ordered FIFO queue of tokens with a read end and a write end.
//
// Reads block while the pipe is empty and its write end is open. Writes block
// while the pipe is at capacity and its read end is open; a capacity of 0
// means the pipe never fills. Each token is read at most once.
//
// Closing the write end lets readers drain what was buffered before they see
// ErrClosed. Closing the read end still accepts writes while there is room,
// so that the last values sent into a ring can be collected with Drain after
// every machine has stopped.
type Pipe struct {
	name     string
	capacity int

	mu          sync.Mutex
	buf         []Token
	change      chan struct{}
	readClosed  bool
	writeClosed bool
}

// New creates a pipe holding at most capacity tokens; 0 means unbounded.
// Any initial tokens are buffered in order, even past capacity.
func New(name string, capacity int, initial ...Token) *Pipe {
	return &Pipe{
		name:     name,
		capacity: capacity,
		buf:      append([]Token(nil), initial...),
		change:   make(chan struct{}),
	}
}

// Name returns the name given to New.
func (p *Pipe) Name() string { return p.name }

func (p *Pipe) String() string { return fmt.Sprintf("pipe(%v)", p.name) }

// Len returns the number of buffered tokens.
func (p *Pipe) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buf)
}

// Recv removes and returns the oldest buffered token, blocking until one is
// available, the write end closes, or ctx is done.
func (p *Pipe) Recv(ctx context.Context) (Token, error) {
	for {
		p.mu.Lock()
		if p.readClosed {
			p.mu.Unlock()
			return Token{}, p.closedErr("read")
		}
		if len(p.buf) > 0 {
			tok := p.buf[0]
			p.buf = p.buf[1:]
			p.notify()
			p.mu.Unlock()
			return tok, nil
		}
		if p.writeClosed {
			p.mu.Unlock()
			return Token{}, p.closedErr("read")
		}
		change := p.change
		p.mu.Unlock()

		select {
		case <-change:
		case <-ctx.Done():
			return Token{}, ctx.Err()
		}
	}
}

// Send appends a token, blocking while the pipe is full and still being read.
func (p *Pipe) Send(ctx context.Context, tok Token) error {
	for {
		p.mu.Lock()
		if p.writeClosed {
			p.mu.Unlock()
			return p.closedErr("write")
		}
		if p.capacity == 0 || len(p.buf) < p.capacity {
			p.buf = append(p.buf, tok)
			p.notify()
			p.mu.Unlock()
			return nil
		}
		if p.readClosed {
			p.mu.Unlock()
			return p.closedErr("write")
		}
		change := p.change
		p.mu.Unlock()

		select {
		case <-change:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Peek returns a copy of every buffered token without consuming any.
func (p *Pipe) Peek() []Token {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Token(nil), p.buf...)
}

// Drain removes and returns every buffered token, whatever the state of
// either end.
func (p *Pipe) Drain() []Token {
	p.mu.Lock()
	defer p.mu.Unlock()
	toks := p.buf
	p.buf = nil
	p.notify()
	return toks
}

// CloseRead closes the read end.
func (p *Pipe) CloseRead() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.readClosed {
		p.readClosed = true
		p.notify()
	}
}

// CloseWrite closes the write end.
func (p *Pipe) CloseWrite() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.writeClosed {
		p.writeClosed = true
		p.notify()
	}
}

// Closed returns true once both ends are closed.
func (p *Pipe) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.readClosed && p.writeClosed
}

// notify wakes every blocked Recv and Send; must hold p.mu.
func (p *Pipe) notify() {
	close(p.change)
	p.change = make(chan struct{})
}

func (p *Pipe) closedErr(op string) error {
	return fmt.Errorf("%v %v: %w", p.name, op, ErrClosed)
}

// Reader returns the read end of the pipe.
func (p *Pipe) Reader() *End { return &End{p, readSide} }

// Writer returns the write end of the pipe.
func (p *Pipe) Writer() *End { return &End{p, writeSide} }

type side bool

const (
	readSide  side = false
	writeSide side = true
)

// End is one end of a Pipe, usable as a machine's input or output device.
// Reading through a write end, or writing through a read end, fails.
type End struct {
	p    *Pipe
	side side
}

// Pipe returns the pipe that this is an end of.
func (e *End) Pipe() *Pipe { return e.p }

// Read receives the next token through a read end.
func (e *End) Read(ctx context.Context) (Token, error) {
	if e.side != readSide {
		return Token{}, fmt.Errorf("%v: cannot read from write end", e.ID())
	}
	return e.p.Recv(ctx)
}

// Write sends a token through a write end.
func (e *End) Write(ctx context.Context, tok Token) error {
	if e.side != writeSide {
		return fmt.Errorf("%v: cannot write to read end", e.ID())
	}
	return e.p.Send(ctx, tok)
}

// Prompt does nothing beyond failing once this end has been closed.
func (e *End) Prompt(mess string) error {
	if !e.IsOpen() {
		return e.p.closedErr("prompt")
	}
	return nil
}

// Close closes this end of the pipe.
func (e *End) Close() error {
	if e.side == readSide {
		e.p.CloseRead()
	} else {
		e.p.CloseWrite()
	}
	return nil
}

// IsOpen returns false once this end has been closed.
func (e *End) IsOpen() bool {
	e.p.mu.Lock()
	defer e.p.mu.Unlock()
	if e.side == readSide {
		return !e.p.readClosed
	}
	return !e.p.writeClosed
}

// ID names the pipe and which end this is.
func (e *End) ID() string {
	if e.side == readSide {
		return e.p.name + "<"
	}
	return e.p.name + ">"
}
