package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockfall/tetris"
)

// keyState reports how long keys have been held, in ticks.
type keyState interface {
	JustPressed(key ebiten.Key) bool
	Duration(key ebiten.Key) int
}

type ebitenKeys struct{}

func (ebitenKeys) JustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }
func (ebitenKeys) Duration(key ebiten.Key) int     { return inpututil.KeyPressDuration(key) }

type binding struct {
	keys   []ebiten.Key
	intent tetris.Intent
	repeat bool
}

var bindings = []binding{
	{keys: []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, intent: tetris.MoveLeft, repeat: true},
	{keys: []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, intent: tetris.MoveRight, repeat: true},
	{keys: []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, intent: tetris.SoftDrop, repeat: true},
	{keys: []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyX, ebiten.KeyW}, intent: tetris.Rotate},
	{keys: []ebiten.Key{ebiten.KeySpace}, intent: tetris.HardDrop},
	{keys: []ebiten.Key{ebiten.KeyC, ebiten.KeyShiftLeft}, intent: tetris.Hold},
	{keys: []ebiten.Key{ebiten.KeyP, ebiten.KeyEscape}, intent: tetris.TogglePause},
	{keys: []ebiten.Key{ebiten.KeyR}, intent: tetris.Reset},
}

// inputMapper turns key state into intents with delayed auto repeat on
// movement keys.
type inputMapper struct {
	keys  keyState
	delay int
	rate  int
}

func newInputMapper(keys keyState, delay, rate int) *inputMapper {
	return &inputMapper{keys: keys, delay: delay, rate: max(rate, 1)}
}

func (m *inputMapper) fires(key ebiten.Key, repeat bool) bool {
	if m.keys.JustPressed(key) {
		return true
	}
	if !repeat {
		return false
	}
	d := m.keys.Duration(key)
	return d > m.delay && (d-m.delay)%m.rate == 0
}

// Poll returns the intents triggered during this tick, in binding order.
func (m *inputMapper) Poll() []tetris.Intent {
	var out []tetris.Intent
	for _, b := range bindings {
		for _, key := range b.keys {
			if m.fires(key, b.repeat) {
				out = append(out, b.intent)
				break
			}
		}
	}
	return out
}
