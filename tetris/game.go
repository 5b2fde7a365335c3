package tetris

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Option customizes a Game at construction.
type Option func(*Game)

// WithRandomizer overrides the randomizer named by the config.
func WithRandomizer(r Randomizer) Option {
	return func(g *Game) { g.rng = r }
}

// WithTickSource hands the gravity timer to the game. The default is a
// FrameClock nobody advances, which suits hosts that call Tick themselves.
func WithTickSource(ts TickSource) Option {
	return func(g *Game) { g.clock = ts }
}

// WithLogger sets the logger for game events. The default discards them.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Game) { g.log = log }
}

// WithCatalog replaces the standard tetrominoes.
func WithCatalog(c *Catalog) Option {
	return func(g *Game) { g.catalog = c }
}

// WithKicks overrides the kick table named by the config.
func WithKicks(k KickTable) Option {
	return func(g *Game) { g.kicks = k }
}

// Game is the orchestrator: it owns the board, the active and ghost pieces,
// the queue, the score and the gravity timer, and applies intents and ticks.
//
// Rejected actions return false and leave the state untouched. A Game is not
// safe for concurrent use.
type Game struct {
	cfg     Config
	catalog *Catalog
	kicks   KickTable
	rng     Randomizer
	clock   TickSource
	log     zerolog.Logger
	stats   *Stats

	board  *Board
	queue  *Queue
	active *Piece
	ghost  *Piece

	score    int
	level    int
	lines    int
	gameOver bool
	paused   bool
	speed    time.Duration
}

// NewGame validates cfg and starts a game.
func NewGame(cfg Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		cfg:     cfg,
		catalog: StandardCatalog(),
		log:     zerolog.Nop(),
		stats:   newStats(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.catalog.MaxSize() > cfg.BoardWidth || g.catalog.MaxSize() > cfg.BoardHeight {
		return nil, fmt.Errorf("%w: board %dx%d cannot hold a %d-wide piece",
			ErrInvalidConfig, cfg.BoardWidth, cfg.BoardHeight, g.catalog.MaxSize())
	}
	if g.kicks == nil {
		g.kicks, _ = KickTableByName(cfg.Kicks)
	}
	if g.rng == nil {
		g.rng, _ = cfg.newRandomizer()
	}
	if g.clock == nil {
		g.clock = &FrameClock{}
	}

	g.board = NewBoard(cfg.BoardWidth, cfg.BoardHeight)
	g.queue = NewQueue(g.catalog, g.rng, cfg.NextPieces, cfg.BoardWidth)
	g.start()
	return g, nil
}

func (g *Game) start() {
	g.board.Reset()
	g.queue.Reset()
	g.stats.reset()
	g.score = 0
	g.lines = 0
	g.level = g.cfg.StartLevel
	g.speed = g.cfg.Speed.Interval(g.level)
	g.gameOver = false
	g.paused = false
	g.active = nil
	g.ghost = nil

	if g.spawn(g.deal()) {
		g.arm()
	}
}

func (g *Game) arm() {
	g.clock.Stop()
	g.clock.Start(g.speed)
}

func (g *Game) deal() *Piece {
	p := g.queue.Next()
	g.stats.recordDealt(p.Kind())
	return p
}

// spawn makes p the active piece, ending the game if it does not fit.
func (g *Game) spawn(p *Piece) bool {
	g.active = p
	if Collides(p, g.board) {
		g.gameOver = true
		g.ghost = nil
		g.clock.Stop()
		g.log.Info().
			Int("score", g.score).
			Int("level", g.level).
			Int("lines", g.lines).
			Stringer("kind", p.Kind()).
			Msg("game over")
		return false
	}
	g.updateGhost()
	return true
}

func (g *Game) updateGhost() {
	if g.active == nil || g.gameOver {
		g.ghost = nil
		return
	}
	d := DropDistance(g.active, g.board)
	if d == 0 {
		g.ghost = nil
		return
	}
	ghost := g.active.Clone()
	ghost.Translate(0, d)
	g.ghost = ghost
}

func (g *Game) canAct() bool {
	return g.active != nil && !g.gameOver && !g.paused
}

// moveDown drops the active piece one row, locking it when it cannot fall.
func (g *Game) moveDown() bool {
	if TryMove(g.active, g.board, 0, 1) {
		g.updateGhost()
		return true
	}
	g.lock()
	return false
}

func (g *Game) lock() {
	g.board.WriteCells(g.active)
	cleared := g.board.ClearFullRows()
	g.stats.recordLock(cleared)
	g.award(cleared)
	g.queue.Unlock()

	g.log.Debug().
		Stringer("kind", g.active.Kind()).
		Int("x", g.active.Position.X).
		Int("y", g.active.Position.Y).
		Int("cleared", cleared).
		Msg("piece locked")

	g.spawn(g.deal())
}

func (g *Game) award(cleared int) {
	if cleared == 0 {
		return
	}
	g.score += g.cfg.LinePoints(cleared, g.level)
	g.lines += cleared

	if level := g.lines / g.cfg.LinesPerLevel; level > g.level {
		g.level = level
		g.speed = g.cfg.Speed.Interval(level)
		g.arm()
		g.log.Info().
			Int("level", level).
			Dur("interval", g.speed).
			Msg("level up")
	}
}

// Tick applies one gravity step.
func (g *Game) Tick() bool {
	if !g.canAct() {
		return false
	}
	return g.moveDown()
}

func (g *Game) move(dx int) bool {
	if !g.canAct() || !TryMove(g.active, g.board, dx, 0) {
		return false
	}
	g.updateGhost()
	return true
}

func (g *Game) MoveLeft() bool  { return g.move(-1) }
func (g *Game) MoveRight() bool { return g.move(1) }

// SoftDrop moves the active piece down one row. When it cannot fall it locks
// and SoftDrop returns false.
func (g *Game) SoftDrop() bool {
	if !g.canAct() {
		return false
	}
	return g.moveDown()
}

// Rotate advances the active piece to its next rotation, trying kicks.
func (g *Game) Rotate() bool {
	if !g.canAct() || !TryRotate(g.active, g.board, g.kicks) {
		return false
	}
	g.updateGhost()
	return true
}

// HardDrop repeats the gravity step until the piece locks.
func (g *Game) HardDrop() bool {
	if !g.canAct() {
		return false
	}
	g.stats.hardDrops++
	for g.moveDown() {
	}
	return true
}

// Hold swaps the active piece with the held one, or parks it and deals the
// next piece when nothing is held. Allowed once per lock.
func (g *Game) Hold() bool {
	if !g.canAct() {
		return false
	}
	kind := g.active.Kind()
	previous, ok := g.queue.Hold(g.active)
	if !ok {
		return false
	}
	if previous == nil {
		previous = g.deal()
	}
	g.stats.holds++
	g.log.Debug().Stringer("held", kind).Stringer("active", previous.Kind()).Msg("hold")
	g.spawn(previous)
	return true
}

// TogglePause suspends or resumes gravity and movement. Rejected after game over.
func (g *Game) TogglePause() bool {
	if g.gameOver {
		return false
	}
	g.paused = !g.paused
	if g.paused {
		g.clock.Stop()
	} else {
		g.arm()
	}
	g.log.Debug().Bool("paused", g.paused).Msg("pause toggled")
	return true
}

// Reset discards the current game and starts a fresh one. Always accepted.
func (g *Game) Reset() bool {
	g.clock.Stop()
	g.start()
	g.log.Info().Msg("game reset")
	return true
}

// Close cancels the gravity timer. Call it when the host disposes of the game.
func (g *Game) Close() {
	g.clock.Stop()
}

func (g *Game) Config() Config       { return g.cfg }
func (g *Game) Catalog() *Catalog    { return g.catalog }
func (g *Game) Board() *Board        { return g.board }
func (g *Game) Active() *Piece       { return g.active }
func (g *Game) Ghost() *Piece        { return g.ghost }
func (g *Game) Held() *Piece         { return g.queue.Held() }
func (g *Game) Next() []*Piece       { return g.queue.Peek() }
func (g *Game) CanHold() bool        { return g.queue.CanHold() }
func (g *Game) Score() int           { return g.score }
func (g *Game) Level() int           { return g.level }
func (g *Game) Lines() int           { return g.lines }
func (g *Game) GameOver() bool       { return g.gameOver }
func (g *Game) Paused() bool         { return g.paused }
func (g *Game) Stats() *Stats        { return g.stats }
func (g *Game) Speed() time.Duration { return g.speed }
