// Package soak drives games headlessly with scripted or random players on
// simulated time and reports latency and outcome statistics.
package soak

import (
	"github.com/plus3/blockfall/tetris"
	"golang.org/x/exp/rand"
)

// Bot picks the next intent for a game. ok is false when the bot wants to
// wait for the next frame.
type Bot interface {
	Decide(snap tetris.Snapshot) (in tetris.Intent, ok bool, err error)
}

// BotFunc adapts a function to the Bot interface.
type BotFunc func(tetris.Snapshot) (tetris.Intent, bool, error)

func (f BotFunc) Decide(snap tetris.Snapshot) (tetris.Intent, bool, error) { return f(snap) }

type weightedIntent struct {
	intent tetris.Intent
	idle   bool
	weight int
}

// RandomBot mashes buttons. It never pauses or resets.
type RandomBot struct {
	rng     *rand.Rand
	choices []weightedIntent
	total   int
}

func NewRandomBot(seed uint64) *RandomBot {
	b := &RandomBot{
		rng: rand.New(rand.NewSource(seed)),
		choices: []weightedIntent{
			{intent: tetris.MoveLeft, weight: 3},
			{intent: tetris.MoveRight, weight: 3},
			{intent: tetris.Rotate, weight: 2},
			{intent: tetris.SoftDrop, weight: 2},
			{intent: tetris.HardDrop, weight: 1},
			{intent: tetris.Hold, weight: 1},
			{idle: true, weight: 4},
		},
	}
	for _, c := range b.choices {
		b.total += c.weight
	}
	return b
}

func (b *RandomBot) Decide(tetris.Snapshot) (tetris.Intent, bool, error) {
	n := b.rng.Intn(b.total)
	for _, c := range b.choices {
		if n < c.weight {
			return c.intent, !c.idle, nil
		}
		n -= c.weight
	}
	return 0, false, nil
}
