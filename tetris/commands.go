package tetris

// IntentBuffer collects intents while a host polls its input devices and
// applies them to a game in one go at a well-defined point of the frame.
type IntentBuffer struct {
	intents []Intent
	defers  []func()
}

// Push queues an intent.
func (b *IntentBuffer) Push(in Intent) {
	b.intents = append(b.intents, in)
}

// Defer queues a function to run after the intents are applied.
func (b *IntentBuffer) Defer(fn func()) {
	b.defers = append(b.defers, fn)
}

// Len returns the number of queued intents.
func (b *IntentBuffer) Len() int {
	return len(b.intents)
}

// Flush applies the queued intents in order, runs deferred functions and
// resets the buffer. It returns how many intents took effect.
func (b *IntentBuffer) Flush(g *Game) int {
	applied := 0
	for _, in := range b.intents {
		if g.Apply(in) {
			applied++
		}
	}
	for _, fn := range b.defers {
		fn()
	}

	b.intents = b.intents[:0]
	b.defers = b.defers[:0]
	return applied
}
