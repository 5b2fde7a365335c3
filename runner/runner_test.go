package runner_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/plus3/blockfall/runner"
	"github.com/plus3/blockfall/tetris"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func start(t *testing.T, cfg tetris.Config) (*runner.Runner, context.CancelFunc) {
	t.Helper()
	r, err := runner.New(cfg, zerolog.Nop(), tetris.WithRandomizer(tetris.NewBagRandomizer(5)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- r.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		assert.ErrorIs(t, <-errc, context.Canceled)
	})
	return r, cancel
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := tetris.DefaultConfig()
	cfg.NextPieces = 0
	_, err := runner.New(cfg, zerolog.Nop())
	assert.ErrorIs(t, err, tetris.ErrInvalidConfig)
}

func TestSnapshotBeforeRun(t *testing.T) {
	r, err := runner.New(tetris.DefaultConfig(), zerolog.Nop())
	require.NoError(t, err)
	snap := r.Snapshot()
	require.NotNil(t, snap.Active)
	assert.Equal(t, 0, snap.Active.Position.Y)
}

func TestSend(t *testing.T) {
	r, _ := start(t, tetris.DefaultConfig())
	ctx := context.Background()

	x := r.Snapshot().Active.Position.X
	ok, err := r.Send(ctx, tetris.MoveLeft)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, x-1, r.Snapshot().Active.Position.X)

	ok, err = r.Send(ctx, tetris.Hold)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.Send(ctx, tetris.Hold)
	require.NoError(t, err)
	assert.False(t, ok, "second hold before a lock is rejected")

	stats := r.GetStats()
	assert.Equal(t, len(tetris.Intents)+1, stats.OpCount)
	assert.Equal(t, int64(1), stats.Rejected)
	for _, op := range stats.Ops {
		if op.Name == "hold" {
			assert.Equal(t, int64(2), op.ExecutionCount)
			assert.Equal(t, int64(1), op.Rejected)
			assert.LessOrEqual(t, op.MinDuration, op.MaxDuration)
		}
	}
}

func TestGravityTicks(t *testing.T) {
	cfg := tetris.DefaultConfig()
	cfg.Speed = tetris.SpeedCurve{DefaultMS: 2, MinMS: 1, Factor: 0.5}
	r, _ := start(t, cfg)

	require.Eventually(t, func() bool {
		return r.GetStats().Ops[0].ExecutionCount >= 3
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "tick", r.GetStats().Ops[0].Name)
}

func TestPauseStopsGravity(t *testing.T) {
	cfg := tetris.DefaultConfig()
	cfg.Speed = tetris.SpeedCurve{DefaultMS: 2, MinMS: 1, Factor: 0.5}
	r, _ := start(t, cfg)

	ok, err := r.Send(context.Background(), tetris.TogglePause)
	require.NoError(t, err)
	require.True(t, ok)

	ticks := r.GetStats().Ops[0].ExecutionCount
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, ticks, r.GetStats().Ops[0].ExecutionCount)
	assert.True(t, r.Snapshot().Paused)
}

func TestTrySend(t *testing.T) {
	r, _ := start(t, tetris.DefaultConfig())
	require.True(t, r.TrySend(tetris.HardDrop))

	require.Eventually(t, func() bool {
		return r.Snapshot().Stats.Locks == 1
	}, time.Second, time.Millisecond)
}

func TestUnknownIntent(t *testing.T) {
	r, _ := start(t, tetris.DefaultConfig())
	before := r.Snapshot()

	ok, err := r.Send(context.Background(), tetris.Intent(42))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, r.TrySend(tetris.Intent(42)))

	ok, err = r.Send(context.Background(), tetris.MoveRight)
	require.NoError(t, err)
	assert.True(t, ok, "runner keeps serving after an unknown intent")
	assert.Equal(t, before.Active.Position.X+1, r.Snapshot().Active.Position.X)
	assert.Zero(t, r.GetStats().Rejected)
}

func TestStopped(t *testing.T) {
	r, err := runner.New(tetris.DefaultConfig(), zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.Run(ctx), context.Canceled)
	assert.ErrorIs(t, r.Run(ctx), runner.ErrAlreadyRunning)

	<-r.Done()
	_, err = r.Send(context.Background(), tetris.MoveLeft)
	assert.True(t, errors.Is(err, runner.ErrStopped))
	assert.False(t, r.TrySend(tetris.MoveLeft))
}
