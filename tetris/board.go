package tetris

import "strings"

// Board is the persistent grid of locked cells. The active piece never lives
// here; it is written in only when it locks.
type Board struct {
	width  int
	height int
	cells  []Kind
}

// NewBoard returns an empty board. It panics on non-positive dimensions.
func NewBoard(width, height int) *Board {
	if width <= 0 || height <= 0 {
		panic("tetris: board dimensions must be positive")
	}
	return &Board{
		width:  width,
		height: height,
		cells:  make([]Kind, width*height),
	}
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// Reset empties every cell.
func (b *Board) Reset() {
	clear(b.cells)
}

// InBounds reports whether row, col addresses a cell of the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

// IsOccupied reports whether the cell holds a locked piece. Callers must bounds
// check first; out-of-range coordinates panic.
func (b *Board) IsOccupied(row, col int) bool {
	return b.At(row, col) != Empty
}

// At returns the marker stored at row, col.
func (b *Board) At(row, col int) Kind {
	if !b.InBounds(row, col) {
		panic("tetris: board access out of range")
	}
	return b.cells[row*b.width+col]
}

// Set stores a marker directly. Used for setups and garbage rows.
func (b *Board) Set(row, col int, kind Kind) {
	if !b.InBounds(row, col) {
		panic("tetris: board access out of range")
	}
	b.cells[row*b.width+col] = kind
}

// WriteCells locks p into the board. Cells above the top row are dropped.
func (b *Board) WriteCells(p *Piece) {
	for cell := range p.Cells() {
		if cell.Y < 0 {
			continue
		}
		b.Set(cell.Y, cell.X, p.Kind())
	}
}

func (b *Board) rowFull(row int) bool {
	for _, c := range b.cells[row*b.width : (row+1)*b.width] {
		if c == Empty {
			return false
		}
	}
	return true
}

// FullRows returns the indexes of every full row, top to bottom.
func (b *Board) FullRows() []int {
	var rows []int
	for r := 0; r < b.height; r++ {
		if b.rowFull(r) {
			rows = append(rows, r)
		}
	}
	return rows
}

// ClearFullRows removes every full row, shifts the rows above it down keeping
// their order, and refills the top with empty rows. It returns the number of
// rows removed.
func (b *Board) ClearFullRows() int {
	write := b.height - 1
	for read := b.height - 1; read >= 0; read-- {
		if b.rowFull(read) {
			continue
		}
		if write != read {
			copy(b.cells[write*b.width:(write+1)*b.width], b.cells[read*b.width:(read+1)*b.width])
		}
		write--
	}
	cleared := write + 1
	clear(b.cells[:cleared*b.width])
	return cleared
}

// Rows returns a copy of the grid, row 0 first.
func (b *Board) Rows() [][]Kind {
	rows := make([][]Kind, b.height)
	for r := range rows {
		rows[r] = make([]Kind, b.width)
		copy(rows[r], b.cells[r*b.width:(r+1)*b.width])
	}
	return rows
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.height; r++ {
		for c := 0; c < b.width; c++ {
			sb.WriteString(b.At(r, c).String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
