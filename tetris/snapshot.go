package tetris

import "time"

// PieceView is a detached copy of a piece for presentation.
type PieceView struct {
	Kind     Kind
	Shape    [][]bool
	Position Point
	Rotation int
}

func viewOf(p *Piece) *PieceView {
	if p == nil {
		return nil
	}
	return &PieceView{
		Kind:     p.Kind(),
		Shape:    p.Shape().Rows(),
		Position: p.Position,
		Rotation: p.Rotation(),
	}
}

// StatsView is a detached copy of Stats.
type StatsView struct {
	Dealt     map[Kind]int
	Clears    map[int]int
	Locks     int
	Holds     int
	HardDrops int
}

// View copies the counters for kinds and for clears of 1 to maxClear rows.
func (s *Stats) View(kinds []Kind, maxClear int) StatsView {
	v := StatsView{
		Dealt:     make(map[Kind]int, len(kinds)),
		Clears:    make(map[int]int, maxClear),
		Locks:     s.locks,
		Holds:     s.holds,
		HardDrops: s.hardDrops,
	}
	for _, k := range kinds {
		v.Dealt[k] = s.Dealt(k)
	}
	for n := 1; n <= maxClear; n++ {
		v.Clears[n] = s.Clears(n)
	}
	return v
}

// Snapshot is a read-only copy of the game state. It shares no memory with the
// game, so it may be handed to another goroutine.
type Snapshot struct {
	Width    int
	Height   int
	Board    [][]Kind
	Active   *PieceView
	Ghost    *PieceView
	Hold     *PieceView
	Next     []PieceView
	CanHold  bool
	Score    int
	Level    int
	Lines    int
	GameOver bool
	Paused   bool
	Speed    time.Duration
	Stats    StatsView
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	next := g.queue.Peek()
	s := Snapshot{
		Width:    g.board.Width(),
		Height:   g.board.Height(),
		Board:    g.board.Rows(),
		Active:   viewOf(g.active),
		Ghost:    viewOf(g.ghost),
		Hold:     viewOf(g.queue.Held()),
		Next:     make([]PieceView, len(next)),
		CanHold:  g.queue.CanHold(),
		Score:    g.score,
		Level:    g.level,
		Lines:    g.lines,
		GameOver: g.gameOver,
		Paused:   g.paused,
		Speed:    g.speed,
		Stats:    g.stats.View(g.catalog.kinds, g.catalog.MaxSize()),
	}
	for i, p := range next {
		s.Next[i] = *viewOf(p)
	}
	return s
}

// Layer tells a renderer what put a cell in the composed view.
type Layer uint8

const (
	LayerEmpty Layer = iota
	LayerLocked
	LayerGhost
	LayerActive
)

// Cell is one entry of the composed render view.
type Cell struct {
	Kind  Kind
	Layer Layer
}

// Compose overlays the ghost and the active piece on the locked cells. The
// active piece wins over the ghost, and both win over locked cells.
func (s Snapshot) Compose() [][]Cell {
	grid := make([][]Cell, s.Height)
	for r := range grid {
		grid[r] = make([]Cell, s.Width)
		for c := range grid[r] {
			if k := s.Board[r][c]; k != Empty {
				grid[r][c] = Cell{Kind: k, Layer: LayerLocked}
			}
		}
	}
	overlay := func(p *PieceView, layer Layer) {
		if p == nil {
			return
		}
		for r, row := range p.Shape {
			for c, filled := range row {
				y, x := p.Position.Y+r, p.Position.X+c
				if !filled || y < 0 || y >= s.Height || x < 0 || x >= s.Width {
					continue
				}
				grid[y][x] = Cell{Kind: p.Kind, Layer: layer}
			}
		}
	}
	overlay(s.Ghost, LayerGhost)
	overlay(s.Active, LayerActive)
	return grid
}

// ColumnHeights returns the height of the locked stack in each column.
func (s Snapshot) ColumnHeights() []int {
	heights := make([]int, s.Width)
	for c := 0; c < s.Width; c++ {
		for r := 0; r < s.Height; r++ {
			if s.Board[r][c] != Empty {
				heights[c] = s.Height - r
				break
			}
		}
	}
	return heights
}
