package soak

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/plus3/blockfall/tetris"
	"github.com/rs/zerolog"
)

// ErrZeroSeed is returned for a zero base seed, which would let game 0 seed
// itself from the clock.
var ErrZeroSeed = errors.New("soak: seed must be non-zero")

// Options configures a batch of sessions.
type Options struct {
	Session SessionConfig
	Games   int
	Seed    uint64
	// BotName labels the report.
	BotName string
	// NewBot returns the player for game i. Bots with a Close method are closed
	// when their game ends.
	NewBot func(i int) (Bot, error)
}

// Run plays opts.Games sessions in sequence. Game i uses seed Seed+i for both
// the piece randomizer and any seeded bot, so a batch is reproducible.
func Run(ctx context.Context, opts Options, log zerolog.Logger) (*Report, error) {
	if opts.Seed == 0 {
		return nil, ErrZeroSeed
	}
	cfg := opts.Session.Game
	report := &Report{
		Games:      opts.Games,
		PieceLimit: opts.Session.MaxPieces,
		Seed:       opts.Seed,
		Bot:        opts.BotName,
		Kicks:      cfg.Kicks,
		Randomizer: cfg.Randomizer,
	}

	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

	for i := range opts.Games {
		bot, err := opts.NewBot(i)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i, err)
		}

		sessionCfg := opts.Session
		sessionCfg.Game.Seed = opts.Seed + uint64(i)
		res, err := playOne(ctx, sessionCfg, bot)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i, err)
		}
		report.Add(res)

		log.Info().
			Int("game", i+1).
			Int("score", res.Score).
			Int("lines", res.Lines).
			Int("pieces", res.Pieces).
			Bool("over", res.GameOver).
			Msg("game finished")
	}

	report.TotalTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Finalize()
	return report, nil
}

func playOne(ctx context.Context, cfg SessionConfig, bot Bot) (Result, error) {
	if c, ok := bot.(interface{ Close() }); ok {
		defer c.Close()
	}
	s, err := NewSession(cfg, bot)
	if err != nil {
		return Result{}, err
	}
	return s.Run(ctx)
}

// HardDropBot drops every piece where it spawns.
var HardDropBot = BotFunc(func(tetris.Snapshot) (tetris.Intent, bool, error) {
	return tetris.HardDrop, true, nil
})
