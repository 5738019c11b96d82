package intcode

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jcorbin/intcode/internal/pipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	t.Run("fifo", func(t *testing.T) {
		q := NewQueue("q", 1, 2)
		require.NoError(t, q.Write(ctx, pipe.Int(3)))
		assert.Equal(t, []int64{1, 2, 3}, q.Values())
		last, ok := q.Last()
		assert.True(t, ok)
		assert.Equal(t, int64(3), last)

		tok, err := q.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, pipe.Int(1), tok)
		assert.Equal(t, 2, q.Len())
	})

	t.Run("blocking read", func(t *testing.T) {
		q := NewQueue("q")
		done := make(chan pipe.Token)
		go func() {
			tok, _ := q.Read(ctx)
			done <- tok
		}()
		require.NoError(t, q.Write(ctx, pipe.Int(5)))
		assert.Equal(t, pipe.Int(5), <-done)
	})

	t.Run("close", func(t *testing.T) {
		q := NewQueue("q", 7)
		assert.True(t, q.IsOpen())
		require.NoError(t, q.Prompt("output"))
		require.NoError(t, q.Close())
		assert.False(t, q.IsOpen())
		assert.Equal(t, []int64{7}, q.Values(), "values must survive close")
		assert.True(t, errors.Is(q.Prompt("input"), pipe.ErrClosed))
		assert.True(t, errors.Is(q.Write(ctx, pipe.Int(1)), pipe.ErrClosed))
		assert.Equal(t, []string{"output"}, q.Prompts())
	})

	t.Run("close write drains", func(t *testing.T) {
		q := NewQueue("q", 7)
		q.CloseWrite()
		tok, err := q.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, pipe.Int(7), tok)
		_, err = q.Read(ctx)
		assert.True(t, errors.Is(err, pipe.ErrClosed))
	})

	t.Run("empty last", func(t *testing.T) {
		_, ok := NewQueue("q").Last()
		assert.False(t, ok)
	})
}

func TestDiscard(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, Discard.Write(ctx, pipe.Int(1)))
	_, err := Discard.Read(ctx)
	assert.True(t, errors.Is(err, pipe.ErrClosed))
	assert.Equal(t, "discard", Discard.ID())
}

func TestVM_pipeIO(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// doubler feeds adder through a bounded pipe
	ab := pipe.New("ab", 1)
	in := NewQueue("in", 1, 2, 3)
	in.CloseWrite()
	out := NewQueue("out")
	doubler := New(MustParse("3,11,1002,11,2,11,4,11,1105,1,0"), WithName("doubler"), WithInput(in), WithOutput(ab.Writer()))
	adder := New(MustParse("3,11,1001,11,1,11,4,11,1105,1,0"), WithName("adder"), WithInput(ab.Reader()), WithOutput(out))

	errs := make(chan error, 1)
	go func() { errs <- doubler.Run(ctx) }()
	err := adder.Run(ctx)

	// doubler faults reading its exhausted input, which closes the pipe and
	// in turn the adder
	assert.True(t, errors.Is(<-errs, pipe.ErrClosed))
	assert.True(t, errors.Is(err, pipe.ErrClosed))
	assert.Equal(t, []int64{3, 5, 7}, out.Values())
}
