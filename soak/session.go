package soak

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/plus3/blockfall/tetris"
)

// ErrForbiddenIntent is returned when a bot tries to pause or reset.
var ErrForbiddenIntent = errors.New("bots may not pause or reset")

// SessionConfig shapes a single headless game.
type SessionConfig struct {
	Game tetris.Config
	// Frame is the simulated time between bot turns.
	Frame time.Duration
	// ActionsPerFrame caps how many intents a bot may apply per frame.
	ActionsPerFrame int
	// MaxPieces stops the session after this many locks. Zero plays until game over.
	MaxPieces int
	// MaxFrames bounds sessions whose bot never lets the stack grow.
	MaxFrames int
}

func (c SessionConfig) withDefaults() SessionConfig {
	if c.Frame <= 0 {
		c.Frame = 16 * time.Millisecond
	}
	if c.ActionsPerFrame <= 0 {
		c.ActionsPerFrame = 2
	}
	if c.MaxFrames <= 0 {
		c.MaxFrames = 1_000_000
	}
	return c
}

// Result is the outcome of one session.
type Result struct {
	Score    int
	Level    int
	Lines    int
	Pieces   int
	Frames   int
	GameOver bool
	Stats    tetris.StatsView
	// Latency holds one sample per applied intent or gravity tick.
	Latency []time.Duration
}

// Session plays one game on a FrameClock.
type Session struct {
	cfg   SessionConfig
	bot   Bot
	game  *tetris.Game
	clock *tetris.FrameClock
}

func NewSession(cfg SessionConfig, bot Bot, opts ...tetris.Option) (*Session, error) {
	cfg = cfg.withDefaults()
	clock := &tetris.FrameClock{}
	g, err := tetris.NewGame(cfg.Game, append([]tetris.Option{tetris.WithTickSource(clock)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	return &Session{cfg: cfg, bot: bot, game: g, clock: clock}, nil
}

func (s *Session) Game() *tetris.Game { return s.game }

func (s *Session) done() bool {
	if s.game.GameOver() {
		return true
	}
	return s.cfg.MaxPieces > 0 && s.game.Stats().Locks() >= s.cfg.MaxPieces
}

// Run plays until game over, the piece limit, the frame limit or ctx is done.
func (s *Session) Run(ctx context.Context) (Result, error) {
	defer s.game.Close()

	var res Result
	timed := func(fn func() bool) {
		start := time.Now()
		fn()
		res.Latency = append(res.Latency, time.Since(start))
	}

	for res.Frames = 0; res.Frames < s.cfg.MaxFrames && !s.done(); res.Frames++ {
		if res.Frames%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return s.result(res), err
			}
		}

		for range s.cfg.ActionsPerFrame {
			in, ok, err := s.bot.Decide(s.game.Snapshot())
			if err != nil {
				return s.result(res), err
			}
			if !ok {
				break
			}
			if in == tetris.TogglePause || in == tetris.Reset {
				return s.result(res), fmt.Errorf("%w: %v", ErrForbiddenIntent, in)
			}
			timed(func() bool { return s.game.Apply(in) })
			if s.done() {
				break
			}
		}

		if !s.done() {
			s.clock.Advance(s.cfg.Frame, func() { timed(s.game.Tick) })
		}
	}
	return s.result(res), nil
}

func (s *Session) result(res Result) Result {
	snap := s.game.Snapshot()
	res.Score = snap.Score
	res.Level = snap.Level
	res.Lines = snap.Lines
	res.Pieces = snap.Stats.Locks
	res.GameOver = snap.GameOver
	res.Stats = snap.Stats
	return res
}
