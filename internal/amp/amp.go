// Package amp runs amplifier sessions: copies of one Intcode program, each
// first given a phase setting, then passing a signal from one to the next.
package amp

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"

	"github.com/jcorbin/intcode/internal/intcode"
	"github.com/jcorbin/intcode/internal/pipe"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultCapacity is the default number of tokens each pipe between
// amplifiers may hold.
const DefaultCapacity = 4

var (
	// ErrNoPhases is returned when a session is asked to run no amplifiers.
	ErrNoPhases = errors.New("no phase settings")

	// ErrNoSignal is returned when a session ends without an output signal.
	ErrNoSignal = errors.New("no output signal")
)

// Runner runs one session for a phase setting sequence, returning its output
// signal. Loop and Chain are Runners.
type Runner func(ctx context.Context, prog intcode.Program, phases []int64, opts ...Option) (int64, error)

// Option configures a session.
type Option interface{ apply(sess *session) }

// WithLogger sets where session and machine logs go; defaults to the logrus
// standard logger.
func WithLogger(logger log.FieldLogger) Option { return loggerOption{logger} }

// WithCapacity sets how many tokens each pipe may hold; 0 is unbounded.
// Pipes always have room for at least the seeded phase and initial signal.
func WithCapacity(capacity int) Option { return capacityOption(capacity) }

// WithVMOptions adds options to every machine in a session.
func WithVMOptions(opts ...intcode.VMOption) Option { return vmOptions(opts) }

type loggerOption struct{ log.FieldLogger }
type capacityOption int
type vmOptions []intcode.VMOption

func (o loggerOption) apply(sess *session)   { sess.logger = o.FieldLogger }
func (c capacityOption) apply(sess *session) { sess.capacity = int(c) }
func (opts vmOptions) apply(sess *session)   { sess.vmOpts = append(sess.vmOpts, opts...) }

// Loop runs one amplifier per phase setting, connected in a feedback ring:
// the pipe feeding amplifier i is written by amplifier i-1, and the first
// amplifier is fed by the last. Each pipe starts with its reader's phase, and
// the first pipe then carries the initial signal 0. Once every amplifier has
// halted, the last signal left in the first pipe is the session's output.
func Loop(ctx context.Context, prog intcode.Program, phases []int64, opts ...Option) (int64, error) {
	sess := newSession(prog, phases, true, opts...)
	return sess.run(ctx)
}

// Chain runs one amplifier per phase setting, connected in a line: the
// first amplifier receives the initial signal 0, and the last amplifier's
// final output is the session's output.
func Chain(ctx context.Context, prog intcode.Program, phases []int64, opts ...Option) (int64, error) {
	sess := newSession(prog, phases, false, opts...)
	return sess.run(ctx)
}

// Max runs a session for every permutation of alphabet, returning the highest
// output signal and the phase settings that produced it. Ties go to the
// lexically least phase settings. Sessions run in parallel; the first error
// cancels the rest and is returned.
func Max(ctx context.Context, prog intcode.Program, alphabet []int64, run Runner, opts ...Option) (int64, []int64, error) {
	if len(alphabet) == 0 {
		return 0, nil, ErrNoPhases
	}

	var (
		mu         sync.Mutex
		bestSignal int64
		bestPhases []int64
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	Permutations(alphabet, func(perm []int64) bool {
		if ctx.Err() != nil {
			return false
		}
		phases := append([]int64(nil), perm...)
		eg.Go(func() error {
			signal, err := run(ctx, prog, phases, opts...)
			if err != nil {
				return fmt.Errorf("phases %v: %w", phases, err)
			}
			mu.Lock()
			defer mu.Unlock()
			if bestPhases == nil || signal > bestSignal ||
				(signal == bestSignal && slices.Compare(phases, bestPhases) < 0) {
				bestSignal, bestPhases = signal, phases
			}
			return nil
		})
		return true
	})
	if err := eg.Wait(); err != nil {
		return 0, nil, err
	}
	return bestSignal, bestPhases, nil
}

type session struct {
	prog     intcode.Program
	phases   []int64
	ring     bool
	logger   log.FieldLogger
	capacity int
	vmOpts   []intcode.VMOption

	pipes []*pipe.Pipe
}

func newSession(prog intcode.Program, phases []int64, ring bool, opts ...Option) *session {
	sess := &session{
		prog:     prog,
		phases:   phases,
		ring:     ring,
		logger:   log.StandardLogger(),
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		opt.apply(sess)
	}
	if sess.capacity > 0 && sess.capacity < 2 {
		sess.capacity = 2
	}
	return sess
}

// ampName names the i-th amplifier: a, b, c, and so on.
func ampName(i int) string {
	if i < 26 {
		return string(rune('a' + i))
	}
	return fmt.Sprintf("amp%d", i)
}

// connect builds the pipes: pipe i feeds amplifier i. A chain has one more
// pipe, unbounded, that collects the last amplifier's output.
func (sess *session) connect() {
	n := len(sess.phases)
	if sess.ring {
		sess.pipes = make([]*pipe.Pipe, n)
		for i := range sess.pipes {
			sess.pipes[i] = pipe.New(ampName((i+n-1)%n)+ampName(i), sess.capacity)
		}
		return
	}
	sess.pipes = make([]*pipe.Pipe, n+1)
	for i := range sess.pipes {
		var from, to string
		if i > 0 {
			from = ampName(i - 1)
		}
		if i < n {
			to = ampName(i)
		}
		capacity := sess.capacity
		if i == n {
			capacity = 0
		}
		sess.pipes[i] = pipe.New(from+to, capacity)
	}
}

// seed queues each amplifier's phase setting, then the initial signal.
func (sess *session) seed(ctx context.Context) error {
	for i, phase := range sess.phases {
		if err := sess.pipes[i].Send(ctx, pipe.Int(phase)); err != nil {
			return err
		}
	}
	return sess.pipes[0].Send(ctx, pipe.Int(0))
}

func (sess *session) output() *pipe.Pipe {
	if sess.ring {
		return sess.pipes[0]
	}
	return sess.pipes[len(sess.pipes)-1]
}

func (sess *session) run(ctx context.Context) (int64, error) {
	n := len(sess.phases)
	if n == 0 {
		return 0, ErrNoPhases
	}
	sess.connect()
	if err := sess.seed(ctx); err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}

	logger := sess.logger.WithField("phases", sess.phases)
	logger.Debugf("start %v amplifiers, ring:%v", n, sess.ring)

	eg, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		in := sess.pipes[i]
		out := sess.pipes[(i+1)%len(sess.pipes)]
		vm := intcode.New(sess.prog, append([]intcode.VMOption{
			intcode.WithName(ampName(i)),
			intcode.WithInput(in.Reader()),
			intcode.WithOutput(out.Writer()),
			intcode.WithLogger(logger),
		}, sess.vmOpts...)...)
		eg.Go(func() error { return vm.Run(ctx) })
	}
	if err := eg.Wait(); err != nil {
		logger.Debugf("failed: %v", err)
		return 0, err
	}

	toks := sess.output().Drain()
	for i := len(toks) - 1; i >= 0; i-- {
		if signal, ok := toks[i].Int(); ok {
			logger.Debugf("output signal %v", signal)
			return signal, nil
		}
	}
	return 0, ErrNoSignal
}
