// Package runner drives a tetris.Game from a single goroutine. Gravity ticks
// and host intents are serialized onto that goroutine, and every change
// publishes a fresh snapshot for renderers running elsewhere.
package runner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/plus3/blockfall/tetris"
	"github.com/rs/zerolog"
)

var (
	ErrStopped        = errors.New("runner stopped")
	ErrAlreadyRunning = errors.New("runner already running")
)

// tickerSource is the wall-clock TickSource. It is only touched by the
// goroutine that owns the game, so it needs no locking. A stopped source has
// a nil channel, which blocks forever in a select.
type tickerSource struct {
	ticker *time.Ticker
}

func (t *tickerSource) Start(interval time.Duration) {
	if interval <= 0 {
		t.Stop()
		return
	}
	if t.ticker == nil {
		t.ticker = time.NewTicker(interval)
		return
	}
	t.ticker.Reset(interval)
}

func (t *tickerSource) Stop() {
	if t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}
}

func (t *tickerSource) C() <-chan time.Time {
	if t.ticker == nil {
		return nil
	}
	return t.ticker.C
}

type request struct {
	intent tetris.Intent
	reply  chan bool
}

// Runner owns a game and the goroutine that mutates it.
type Runner struct {
	game     *tetris.Game
	ticks    *tickerSource
	log      zerolog.Logger
	requests chan request
	done     chan struct{}
	started  atomic.Bool

	mu       sync.Mutex
	snapshot tetris.Snapshot
	ops      []*opStatsInternal
}

// New builds a game on a wall-clock gravity timer. Options are passed to
// tetris.NewGame after the runner's own, so they may override the logger.
func New(cfg tetris.Config, log zerolog.Logger, opts ...tetris.Option) (*Runner, error) {
	r := &Runner{
		ticks:    &tickerSource{},
		log:      log,
		requests: make(chan request, 64),
		done:     make(chan struct{}),
		ops:      newOpStats(),
	}

	base := []tetris.Option{tetris.WithLogger(log), tetris.WithTickSource(r.ticks)}
	g, err := tetris.NewGame(cfg, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	r.game = g
	r.snapshot = g.Snapshot()
	return r, nil
}

// Run owns the game until ctx is cancelled. It may be called once.
func (r *Runner) Run(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(r.done)
	defer r.game.Close()

	r.log.Info().
		Int("width", r.game.Config().BoardWidth).
		Int("height", r.game.Config().BoardHeight).
		Msg("runner started")

	for {
		select {
		case <-ctx.Done():
			r.log.Info().Int("score", r.game.Score()).Msg("runner stopped")
			return ctx.Err()
		case <-r.ticks.C():
			r.exec(tickOp, r.game.Tick)
		case req := <-r.requests:
			ok := r.exec(opIndex(req.intent), func() bool { return r.game.Apply(req.intent) })
			if req.reply != nil {
				req.reply <- ok
			}
		}
	}
}

func (r *Runner) exec(op int, fn func() bool) bool {
	start := time.Now()
	ok := fn()
	duration := time.Since(start)
	snap := r.game.Snapshot()

	r.mu.Lock()
	r.ops[op].record(duration, ok)
	r.snapshot = snap
	r.mu.Unlock()
	return ok
}

// Send forwards an intent and waits for the game to apply it. It reports
// whether the intent took effect. Unknown intents are rejected without
// reaching the game.
func (r *Runner) Send(ctx context.Context, in tetris.Intent) (bool, error) {
	if !known(in) {
		return false, nil
	}
	req := request{intent: in, reply: make(chan bool, 1)}
	select {
	case r.requests <- req:
	case <-r.done:
		return false, ErrStopped
	case <-ctx.Done():
		return false, ctx.Err()
	}

	select {
	case ok := <-req.reply:
		return ok, nil
	case <-r.done:
		return false, ErrStopped
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// TrySend queues an intent without waiting. It returns false when the queue is
// full, the runner has stopped or the intent is unknown.
func (r *Runner) TrySend(in tetris.Intent) bool {
	if !known(in) {
		return false
	}
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case r.requests <- request{intent: in}:
		return true
	default:
		r.log.Warn().Stringer("intent", in).Msg("intent queue full, dropping")
		return false
	}
}

// Snapshot returns the state published after the most recent operation. The
// result is shared between callers and must be treated as read-only.
func (r *Runner) Snapshot() tetris.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot
}

// Done is closed when Run returns.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// GetStats returns statistics about operation execution.
func (r *Runner) GetStats() *Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &Stats{
		OpCount: len(r.ops),
		Ops:     make([]OpStats, len(r.ops)),
	}
	for i, internal := range r.ops {
		stats.Ops[i] = internal.export()
		stats.TotalExecutions += internal.executionCount
		stats.Rejected += internal.rejected
	}
	stats.Accepted = stats.TotalExecutions - stats.Rejected
	return stats
}
