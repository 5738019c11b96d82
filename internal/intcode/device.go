package intcode

import (
	"context"
	"fmt"
	"sync"

	"github.com/jcorbin/intcode/internal/pipe"
)

// Device is anything a VM reads input from or writes output to.
//
// Read blocks until a token is available; it fails once the device is
// closed. Prompt is called before every input and output instruction, so that
// a device may announce or observe the request. Reactive devices compute the
// token handed out by Read from the state built up by earlier Writes, rather
// than from a stored queue.
type Device interface {
	Read(ctx context.Context) (pipe.Token, error)
	Write(ctx context.Context, tok pipe.Token) error
	Prompt(mess string) error
	Close() error
	IsOpen() bool
	ID() string
}

var (
	_ Device = (*pipe.End)(nil)
	_ Device = (*Queue)(nil)
	_ Device = discard{}
)

// Discard is a device that accepts and drops every write, and has nothing
// to read.
var Discard Device = discard{}

type discard struct{}

func (discard) Read(context.Context) (pipe.Token, error) {
	return pipe.Token{}, fmt.Errorf("discard read: %w", pipe.ErrClosed)
}
func (discard) Write(context.Context, pipe.Token) error { return nil }
func (discard) Prompt(string) error                     { return nil }
func (discard) Close() error                            { return nil }
func (discard) IsOpen() bool                            { return true }
func (discard) ID() string                              { return "discard" }

// Queue is an unbounded in-memory buffered device. It may be pre-loaded with
// input values, used to collect output values, or both.
type Queue struct {
	p  *pipe.Pipe
	id string

	mu      sync.Mutex
	prompts []string
}

// NewQueue creates a queue holding the given values.
func NewQueue(id string, values ...int64) *Queue {
	return &Queue{p: pipe.New(id, 0, pipe.Ints(values...)...), id: id}
}

// Read removes the oldest value, blocking until one is written.
func (q *Queue) Read(ctx context.Context) (pipe.Token, error) { return q.p.Recv(ctx) }

// Write appends a value.
func (q *Queue) Write(ctx context.Context, tok pipe.Token) error { return q.p.Send(ctx, tok) }

// Prompt records mess, failing only if the queue has been closed.
func (q *Queue) Prompt(mess string) error {
	if !q.IsOpen() {
		return fmt.Errorf("%v prompt: %w", q.id, pipe.ErrClosed)
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.prompts = append(q.prompts, mess)
	return nil
}

// Prompts returns every message passed to Prompt so far.
func (q *Queue) Prompts() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.prompts...)
}

// CloseWrite stops further writes; readers drain what is left and then see
// pipe.ErrClosed rather than blocking.
func (q *Queue) CloseWrite() { q.p.CloseWrite() }

// Close closes the queue for both reading and writing; any unread values
// remain available through Values.
func (q *Queue) Close() error {
	q.p.CloseRead()
	q.p.CloseWrite()
	return nil
}

// IsOpen returns false once Close has been called.
func (q *Queue) IsOpen() bool { return !q.p.Closed() }

// ID returns the queue's name.
func (q *Queue) ID() string { return q.id }

// Len returns the number of unread values.
func (q *Queue) Len() int { return q.p.Len() }

// Values returns every unread integer value without consuming any.
func (q *Queue) Values() []int64 {
	toks := q.p.Peek()
	vals := make([]int64, 0, len(toks))
	for _, tok := range toks {
		if n, ok := tok.Int(); ok {
			vals = append(vals, n)
		}
	}
	return vals
}

// Last returns the most recent unread value.
func (q *Queue) Last() (int64, bool) {
	vals := q.Values()
	if len(vals) == 0 {
		return 0, false
	}
	return vals[len(vals)-1], true
}
