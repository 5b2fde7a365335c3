package tetris_test

import (
	"testing"
	"time"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/require"
)

// sequence deals the given kinds in a loop.
type sequence struct {
	kinds []tetris.Kind
	i     int
}

func (s *sequence) Draw([]tetris.Kind) tetris.Kind {
	k := s.kinds[s.i%len(s.kinds)]
	s.i++
	return k
}

func deal(kinds ...tetris.Kind) tetris.Option {
	return tetris.WithRandomizer(&sequence{kinds: kinds})
}

func kindOf(r rune) tetris.Kind {
	for _, k := range tetris.AllKinds {
		if k.String() == string(r) {
			return k
		}
	}
	return tetris.Empty
}

// boardFrom builds a board from rows of kind letters; '.' is empty.
func boardFrom(t *testing.T, rows ...string) *tetris.Board {
	t.Helper()
	b := tetris.NewBoard(len(rows[0]), len(rows))
	for r, row := range rows {
		require.Len(t, row, b.Width(), "row %d", r)
		for c, ch := range row {
			b.Set(r, c, kindOf(ch))
		}
	}
	return b
}

func newGame(t *testing.T, cfg tetris.Config, opts ...tetris.Option) (*tetris.Game, *tetris.FrameClock) {
	t.Helper()
	clock := &tetris.FrameClock{}
	g, err := tetris.NewGame(cfg, append([]tetris.Option{tetris.WithTickSource(clock)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return g, clock
}

func smallConfig(width, height int) tetris.Config {
	cfg := tetris.DefaultConfig()
	cfg.BoardWidth = width
	cfg.BoardHeight = height
	return cfg
}

func advance(clock *tetris.FrameClock, g *tetris.Game, d time.Duration) int {
	return clock.Advance(d, func() { g.Tick() })
}
