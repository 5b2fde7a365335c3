// Package tetris implements a falling-block puzzle engine: a fixed board, the
// seven tetromino templates with precomputed rotations, collision and wall-kick
// resolution, line clearing, scoring and a lookahead/hold queue.
//
// The engine is single-threaded. A Game must only be driven from one goroutine;
// see the runner package for a loop that serializes gravity ticks and intents.
package tetris

import (
	"fmt"
	"iter"
)

// Kind identifies a piece type. It doubles as the board marker of a locked cell.
type Kind uint8

const (
	Empty Kind = iota
	I
	O
	T
	S
	Z
	J
	L
)

// AllKinds lists the seven standard kinds in marker order.
var AllKinds = []Kind{I, O, T, S, Z, J, L}

func (k Kind) String() string {
	switch k {
	case Empty:
		return "."
	case I:
		return "I"
	case O:
		return "O"
	case T:
		return "T"
	case S:
		return "S"
	case Z:
		return "Z"
	case J:
		return "J"
	case L:
		return "L"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Shape is an immutable square occupancy grid for one rotation state.
type Shape struct {
	size  int
	cells []bool
}

// NewShape builds a shape from a square 0/1 grid.
func NewShape(grid [][]int) (Shape, error) {
	size := len(grid)
	if size == 0 {
		return Shape{}, fmt.Errorf("shape: empty grid")
	}

	s := Shape{size: size, cells: make([]bool, size*size)}
	filled := 0
	for r, row := range grid {
		if len(row) != size {
			return Shape{}, fmt.Errorf("shape: row %d has %d columns, want %d", r, len(row), size)
		}
		for c, v := range row {
			if v != 0 {
				s.cells[r*size+c] = true
				filled++
			}
		}
	}
	if filled == 0 {
		return Shape{}, fmt.Errorf("shape: no occupied cells")
	}
	return s, nil
}

// MustShape is like NewShape but panics on a malformed grid.
func MustShape(grid [][]int) Shape {
	s, err := NewShape(grid)
	if err != nil {
		panic(err)
	}
	return s
}

// Size returns the edge length of the bounding box.
func (s Shape) Size() int {
	return s.size
}

// Occupied reports whether the cell at row, col of the bounding box is filled.
func (s Shape) Occupied(row, col int) bool {
	if row < 0 || col < 0 || row >= s.size || col >= s.size {
		return false
	}
	return s.cells[row*s.size+col]
}

// Cells yields the offsets of occupied cells, row-major.
func (s Shape) Cells() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for i, filled := range s.cells {
			if !filled {
				continue
			}
			if !yield(Point{X: i % s.size, Y: i / s.size}) {
				return
			}
		}
	}
}

// Rows returns a copy of the grid.
func (s Shape) Rows() [][]bool {
	rows := make([][]bool, s.size)
	for r := range rows {
		rows[r] = make([]bool, s.size)
		copy(rows[r], s.cells[r*s.size:(r+1)*s.size])
	}
	return rows
}

// Equal reports whether two shapes have the same occupancy.
func (s Shape) Equal(other Shape) bool {
	if s.size != other.size {
		return false
	}
	for i := range s.cells {
		if s.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

func (s Shape) String() string {
	buf := make([]byte, 0, s.size*(s.size+1))
	for r := 0; r < s.size; r++ {
		for c := 0; c < s.size; c++ {
			if s.Occupied(r, c) {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

func (s Shape) rotateClockwise() Shape {
	rotated := Shape{size: s.size, cells: make([]bool, len(s.cells))}
	for i := 0; i < s.size; i++ {
		for j := 0; j < s.size; j++ {
			rotated.cells[j*s.size+(s.size-1-i)] = s.cells[i*s.size+j]
		}
	}
	return rotated
}
