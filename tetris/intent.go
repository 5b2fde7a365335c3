package tetris

import "fmt"

// Intent is a discrete player action forwarded by the host's input layer.
type Intent uint8

const (
	MoveLeft Intent = iota
	MoveRight
	SoftDrop
	Rotate
	HardDrop
	Hold
	TogglePause
	Reset
)

// Intents lists every intent in declaration order.
var Intents = []Intent{MoveLeft, MoveRight, SoftDrop, Rotate, HardDrop, Hold, TogglePause, Reset}

var intentNames = [...]string{
	MoveLeft:    "moveLeft",
	MoveRight:   "moveRight",
	SoftDrop:    "softDrop",
	Rotate:      "rotate",
	HardDrop:    "hardDrop",
	Hold:        "hold",
	TogglePause: "togglePause",
	Reset:       "reset",
}

func (i Intent) String() string {
	if int(i) < len(intentNames) {
		return intentNames[i]
	}
	return fmt.Sprintf("Intent(%d)", uint8(i))
}

// ParseIntent resolves an intent by its String name.
func ParseIntent(name string) (Intent, error) {
	for i, n := range intentNames {
		if n == name {
			return Intent(i), nil
		}
	}
	return 0, fmt.Errorf("unknown intent %q", name)
}

// Apply dispatches an intent and reports whether it took effect.
func (g *Game) Apply(in Intent) bool {
	switch in {
	case MoveLeft:
		return g.MoveLeft()
	case MoveRight:
		return g.MoveRight()
	case SoftDrop:
		return g.SoftDrop()
	case Rotate:
		return g.Rotate()
	case HardDrop:
		return g.HardDrop()
	case Hold:
		return g.Hold()
	case TogglePause:
		return g.TogglePause()
	case Reset:
		return g.Reset()
	}
	return false
}
