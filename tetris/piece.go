package tetris

import "iter"

// Point is a board coordinate; X is the column and Y the row, growing downward.
type Point struct {
	X, Y int
}

// Piece is an instance of a template at a board position. Position is the top
// left corner of the bounding box and may be above the board.
type Piece struct {
	template *Template
	rotation int
	Position Point
}

// NewPiece places a template at pos in its canonical rotation.
func NewPiece(t *Template, pos Point) *Piece {
	return &Piece{template: t, Position: pos}
}

// SpawnPiece places a template at the horizontal center of the top row.
func SpawnPiece(t *Template, boardWidth int) *Piece {
	return NewPiece(t, Point{X: (boardWidth - t.Size()) / 2, Y: 0})
}

func (p *Piece) Template() *Template { return p.template }
func (p *Piece) Kind() Kind          { return p.template.kind }

// Rotation returns the index into the template rotation list.
func (p *Piece) Rotation() int { return p.rotation }

// Shape returns the grid of the current rotation.
func (p *Piece) Shape() Shape {
	return p.template.Rotation(p.rotation)
}

// Translate moves the piece. Legality is the caller's concern.
func (p *Piece) Translate(dx, dy int) {
	p.Position.X += dx
	p.Position.Y += dy
}

// AdvanceRotation switches to the next rotation state, wrapping to 0.
func (p *Piece) AdvanceRotation() {
	p.rotation = (p.rotation + 1) % p.template.Rotations()
}

func (p *Piece) Clone() *Piece {
	c := *p
	return &c
}

// Cells yields the board coordinates of every occupied cell.
func (p *Piece) Cells() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for off := range p.Shape().Cells() {
			if !yield(Point{X: p.Position.X + off.X, Y: p.Position.Y + off.Y}) {
				return
			}
		}
	}
}
