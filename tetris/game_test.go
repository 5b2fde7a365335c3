package tetris_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/blockfall/tetris"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	g, clock := newGame(t, tetris.DefaultConfig(), deal(tetris.T, tetris.O, tetris.I, tetris.S))

	require.NotNil(t, g.Active())
	assert.Equal(t, tetris.T, g.Active().Kind())
	assert.Equal(t, tetris.Point{X: 3, Y: 0}, g.Active().Position)
	assert.Equal(t, []tetris.Kind{tetris.O, tetris.I, tetris.S}, kindsOf(g.Next()))
	assert.Nil(t, g.Held())
	assert.True(t, g.CanHold())
	assert.Zero(t, g.Score())
	assert.Zero(t, g.Level())
	assert.Zero(t, g.Lines())
	assert.False(t, g.GameOver())
	assert.False(t, g.Paused())

	assert.True(t, clock.Running())
	assert.Equal(t, time.Second, clock.Interval())
	assert.Equal(t, time.Second, g.Speed())

	require.NotNil(t, g.Ghost())
	assert.Equal(t, tetris.Point{X: 3, Y: 18}, g.Ghost().Position)
	assert.Equal(t, 1, g.Stats().TotalDealt())
}

func TestNewGameRejectsOversizedCatalog(t *testing.T) {
	wide, err := tetris.NewTemplate(tetris.I, tetris.MustShape([][]int{
		{0, 0, 0, 0, 0},
		{1, 1, 1, 1, 1},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	}))
	require.NoError(t, err)
	catalog, err := tetris.NewCatalog(wide)
	require.NoError(t, err)

	_, err = tetris.NewGame(smallConfig(4, 20), tetris.WithCatalog(catalog))
	assert.ErrorIs(t, err, tetris.ErrInvalidConfig)
}

func TestMoves(t *testing.T) {
	g, _ := newGame(t, tetris.DefaultConfig(), deal(tetris.T))

	for range 3 {
		require.True(t, g.MoveLeft())
	}
	assert.False(t, g.MoveLeft())
	assert.Equal(t, 0, g.Active().Position.X)
	assert.Equal(t, 0, g.Ghost().Position.X, "ghost follows the active piece")

	assert.True(t, g.MoveRight())
	assert.Equal(t, 1, g.Active().Position.X)

	assert.True(t, g.Rotate())
	assert.Equal(t, 1, g.Active().Rotation())
	assert.Equal(t, 1, g.Ghost().Rotation())

	assert.True(t, g.SoftDrop())
	assert.Equal(t, 1, g.Active().Position.Y)
}

func TestGravity(t *testing.T) {
	g, clock := newGame(t, tetris.DefaultConfig(), deal(tetris.O))

	assert.Equal(t, 0, advance(clock, g, 999*time.Millisecond))
	assert.Equal(t, 1, advance(clock, g, time.Millisecond))
	assert.Equal(t, 1, g.Active().Position.Y)

	assert.Equal(t, 17, advance(clock, g, 17*time.Second))
	assert.Equal(t, 18, g.Active().Position.Y)
	assert.Nil(t, g.Ghost(), "no ghost once the piece rests on the floor")

	advance(clock, g, time.Second)
	assert.Equal(t, 1, g.Stats().Locks())
	assert.Equal(t, 0, g.Active().Position.Y, "a fresh piece spawned")
	assert.True(t, g.Board().IsOccupied(19, 4))
}

func TestSoftDropLocks(t *testing.T) {
	g, _ := newGame(t, smallConfig(4, 4), deal(tetris.O))
	assert.True(t, g.SoftDrop())
	assert.True(t, g.SoftDrop())
	assert.False(t, g.SoftDrop(), "locks instead of moving")
	assert.Equal(t, 1, g.Stats().Locks())
	assert.True(t, g.Board().IsOccupied(3, 1))
}

func TestHardDropScoring(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		g, _ := newGame(t, smallConfig(4, 6), deal(tetris.I))
		require.True(t, g.HardDrop())

		assert.Equal(t, 100, g.Score())
		assert.Equal(t, 1, g.Lines())
		assert.Equal(t, 0, g.Level())
		assert.Equal(t, 1, g.Stats().Clears(1))
		assert.Equal(t, 1, g.Stats().HardDrops())
		for c := 0; c < 4; c++ {
			assert.False(t, g.Board().IsOccupied(5, c))
		}
	})

	t.Run("four at once", func(t *testing.T) {
		g, _ := newGame(t, smallConfig(4, 6), deal(tetris.I))
		for r := 2; r < 6; r++ {
			for _, c := range []int{0, 1, 3} {
				g.Board().Set(r, c, tetris.L)
			}
		}

		require.True(t, g.Rotate())
		require.True(t, g.HardDrop())

		assert.Equal(t, 800, g.Score())
		assert.Equal(t, 4, g.Lines())
		assert.Equal(t, 1, g.Stats().Clears(4))
		assertEmpty(t, g.Board())
	})
}

func assertEmpty(t *testing.T, b *tetris.Board) {
	t.Helper()
	for r := 0; r < b.Height(); r++ {
		for c := 0; c < b.Width(); c++ {
			assert.False(t, b.IsOccupied(r, c), "cell %d,%d", r, c)
		}
	}
}

func TestLevelUpRearmsGravity(t *testing.T) {
	cfg := smallConfig(4, 6)
	cfg.LinesPerLevel = 1

	var logs bytes.Buffer
	g, clock := newGame(t, cfg, deal(tetris.I), tetris.WithLogger(zerolog.New(&logs)))
	require.Equal(t, 1, clock.Starts())

	require.True(t, g.HardDrop())
	assert.Equal(t, 100, g.Score(), "scored at the level the lines were cleared on")
	assert.Equal(t, 1, g.Level())
	assert.Equal(t, cfg.Speed.Interval(1), clock.Interval())
	assert.Equal(t, cfg.Speed.Interval(1), g.Speed())
	assert.Equal(t, 2, clock.Starts())
	assert.Contains(t, logs.String(), `"message":"level up"`)

	require.True(t, g.HardDrop())
	assert.Equal(t, 100+200, g.Score())
	assert.Equal(t, 2, g.Level())
}

func TestHold(t *testing.T) {
	g, _ := newGame(t, tetris.DefaultConfig(), deal(tetris.T, tetris.O, tetris.I, tetris.S, tetris.Z))

	require.True(t, g.Hold())
	assert.Equal(t, tetris.T, g.Held().Kind())
	assert.Equal(t, tetris.O, g.Active().Kind())
	assert.Equal(t, []tetris.Kind{tetris.I, tetris.S, tetris.Z}, kindsOf(g.Next()))
	assert.False(t, g.CanHold())

	before := g.Snapshot()
	assert.False(t, g.Hold(), "only one hold until the next lock")
	assert.Equal(t, before, g.Snapshot())

	require.True(t, g.HardDrop())
	assert.True(t, g.CanHold())
	assert.Equal(t, tetris.I, g.Active().Kind())

	require.True(t, g.Hold())
	assert.Equal(t, tetris.T, g.Active().Kind())
	assert.Equal(t, tetris.Point{X: 3, Y: 0}, g.Active().Position)
	assert.Equal(t, tetris.I, g.Held().Kind())
	assert.Equal(t, 2, g.Stats().Holds())
}

func TestHoldOntoBlockedSpawnEndsGame(t *testing.T) {
	g, clock := newGame(t, tetris.DefaultConfig(), deal(tetris.T, tetris.O))
	require.True(t, clock.Running())

	for r := range 2 {
		for c := range g.Board().Width() {
			g.Board().Set(r, c, tetris.Z)
		}
	}

	require.True(t, g.Hold())
	assert.True(t, g.GameOver())
	assert.False(t, clock.Running())
	assert.Nil(t, g.Ghost())
	assert.Equal(t, tetris.T, g.Held().Kind())
	assert.Equal(t, tetris.O, g.Active().Kind())
	assert.False(t, g.Tick())
	assert.False(t, g.MoveLeft())
}

func TestGameOver(t *testing.T) {
	var logs bytes.Buffer
	g, clock := newGame(t, smallConfig(4, 4), deal(tetris.O), tetris.WithLogger(zerolog.New(&logs)))

	require.True(t, g.HardDrop())
	require.False(t, g.GameOver())
	require.True(t, g.HardDrop())

	assert.True(t, g.GameOver())
	assert.False(t, clock.Running())
	assert.Nil(t, g.Ghost())
	assert.Contains(t, logs.String(), `"message":"game over"`)

	before := g.Snapshot()
	for _, in := range []tetris.Intent{
		tetris.MoveLeft, tetris.MoveRight, tetris.SoftDrop,
		tetris.Rotate, tetris.HardDrop, tetris.Hold, tetris.TogglePause,
	} {
		assert.False(t, g.Apply(in), "%v after game over", in)
	}
	assert.False(t, g.Tick())
	assert.Equal(t, before, g.Snapshot())

	require.True(t, g.Reset())
	assert.False(t, g.GameOver())
	assert.True(t, clock.Running())
	assert.Zero(t, g.Score())
	assert.Zero(t, g.Stats().Locks())
	assertEmpty(t, g.Board())
}

func TestPause(t *testing.T) {
	g, clock := newGame(t, tetris.DefaultConfig(), deal(tetris.J))

	require.True(t, g.TogglePause())
	assert.True(t, g.Paused())
	assert.False(t, clock.Running())

	assert.False(t, g.MoveLeft())
	assert.False(t, g.Rotate())
	assert.False(t, g.Hold())
	assert.False(t, g.Tick())
	assert.Equal(t, 0, advance(clock, g, 10*time.Second))
	assert.Equal(t, 0, g.Active().Position.Y)

	require.True(t, g.TogglePause())
	assert.False(t, g.Paused())
	assert.True(t, clock.Running())
	assert.Equal(t, time.Second, clock.Interval())
	assert.Equal(t, 1, advance(clock, g, time.Second))
}

func TestResetWhilePaused(t *testing.T) {
	g, clock := newGame(t, tetris.DefaultConfig(), deal(tetris.S))
	require.True(t, g.TogglePause())
	require.True(t, g.Reset())
	assert.False(t, g.Paused())
	assert.True(t, clock.Running())
}

func TestApplyAndIntentBuffer(t *testing.T) {
	g, _ := newGame(t, tetris.DefaultConfig(), deal(tetris.T, tetris.O))

	var buf tetris.IntentBuffer
	buf.Push(tetris.MoveLeft)
	buf.Push(tetris.MoveLeft)
	buf.Push(tetris.Hold)
	buf.Push(tetris.Hold)

	deferred := false
	buf.Defer(func() { deferred = true })
	assert.Equal(t, 4, buf.Len())

	assert.Equal(t, 3, buf.Flush(g))
	assert.True(t, deferred)
	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, tetris.O, g.Active().Kind())

	assert.False(t, g.Apply(tetris.Intent(200)))
}

func TestParseIntent(t *testing.T) {
	for _, in := range tetris.Intents {
		got, err := tetris.ParseIntent(in.String())
		require.NoError(t, err)
		assert.Equal(t, in, got)
	}
	_, err := tetris.ParseIntent("spin")
	assert.Error(t, err)
	assert.Equal(t, "Intent(42)", tetris.Intent(42).String())
}

func TestSRSConfig(t *testing.T) {
	cfg := tetris.DefaultConfig()
	cfg.Kicks = "srs"
	cfg.Randomizer = "bag"
	cfg.Seed = 11
	g, _ := newGame(t, cfg)

	seen := map[tetris.Kind]bool{g.Active().Kind(): true}
	for _, p := range g.Next() {
		seen[p.Kind()] = true
	}
	assert.Len(t, seen, 4, "a bag never repeats within its first seven pieces")
}
