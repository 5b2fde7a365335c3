package tetris_test

import (
	"fmt"
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	b := tetris.NewBoard(10, 20)
	assert.Equal(t, 10, b.Width())
	assert.Equal(t, 20, b.Height())
	for r := 0; r < b.Height(); r++ {
		for c := 0; c < b.Width(); c++ {
			require.False(t, b.IsOccupied(r, c))
		}
	}

	assert.Panics(t, func() { tetris.NewBoard(0, 20) })
	assert.Panics(t, func() { tetris.NewBoard(10, -1) })
	assert.Panics(t, func() { b.IsOccupied(20, 0) }, "callers must bounds check")
}

func TestWriteCellsSquare(t *testing.T) {
	b := tetris.NewBoard(5, 5)
	o := tetris.StandardCatalog().TemplateFor(tetris.O)
	b.WriteCells(tetris.NewPiece(o, tetris.Point{X: 1, Y: 2}))

	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			want := tetris.Empty
			if r >= 2 && r <= 3 && c >= 1 && c <= 2 {
				want = tetris.O
			}
			assert.Equal(t, want, b.At(r, c), "cell %d,%d", r, c)
		}
	}
}

func TestWriteCellsAboveTop(t *testing.T) {
	b := tetris.NewBoard(10, 20)
	i := tetris.StandardCatalog().TemplateFor(tetris.I)
	p := tetris.NewPiece(i, tetris.Point{X: 0, Y: -2})
	p.AdvanceRotation() // vertical in column 2, rows -2..1

	b.WriteCells(p)
	assert.Equal(t, tetris.I, b.At(0, 2))
	assert.Equal(t, tetris.I, b.At(1, 2))
	assert.Equal(t, tetris.Empty, b.At(2, 2))
}

func TestLockWritesExactlyTheShape(t *testing.T) {
	c := tetris.StandardCatalog()
	for _, k := range tetris.AllKinds {
		tmpl := c.TemplateFor(k)
		for rot := 0; rot < tmpl.Rotations(); rot++ {
			b := tetris.NewBoard(10, 20)
			p := tetris.NewPiece(tmpl, tetris.Point{X: 3, Y: 7})
			for i := 0; i < rot; i++ {
				p.AdvanceRotation()
			}
			require.False(t, tetris.Collides(p, b))

			b.WriteCells(p)

			want := map[tetris.Point]bool{}
			for cell := range p.Cells() {
				want[cell] = true
				assert.Equal(t, k, b.At(cell.Y, cell.X))
			}
			filled := 0
			for r := 0; r < b.Height(); r++ {
				for col := 0; col < b.Width(); col++ {
					if b.IsOccupied(r, col) {
						filled++
						assert.True(t, want[tetris.Point{X: col, Y: r}])
					}
				}
			}
			assert.Equal(t, len(want), filled, "kind %v rotation %d", k, rot)
		}
	}
}

func TestClearFullRows(t *testing.T) {
	tests := []struct {
		name    string
		before  []string
		after   []string
		cleared int
	}{
		{
			name:    "nothing full",
			before:  []string{"....", "J...", "JJ.L"},
			after:   []string{"....", "J...", "JJ.L"},
			cleared: 0,
		},
		{
			name:    "bottom row",
			before:  []string{"....", "T...", "ZZZZ"},
			after:   []string{"....", "....", "T..."},
			cleared: 1,
		},
		{
			name:    "non adjacent rows keep order",
			before:  []string{"S...", "IIII", ".L..", "OOOO", "..J."},
			after:   []string{"....", "....", "S...", ".L..", "..J."},
			cleared: 2,
		},
		{
			name:    "whole board",
			before:  []string{"IIII", "TTTT"},
			after:   []string{"....", "...."},
			cleared: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardFrom(t, tt.before...)
			assert.Equal(t, tt.cleared, b.ClearFullRows())
			assert.Equal(t, boardFrom(t, tt.after...).Rows(), b.Rows())
			assert.Equal(t, len(tt.before), b.Height())
			assert.Equal(t, len(tt.before[0]), b.Width())
		})
	}
}

func TestClearAfterFillingGap(t *testing.T) {
	b := boardFrom(t,
		".....",
		".....",
		".....",
		".....",
		"JJJ..",
	)
	o := tetris.NewPiece(tetris.StandardCatalog().TemplateFor(tetris.O), tetris.Point{X: 3, Y: 0})
	for tetris.TryMove(o, b, 0, 1) {
	}
	require.Equal(t, 3, o.Position.Y)

	b.WriteCells(o)
	assert.Equal(t, []int{4}, b.FullRows())
	assert.Equal(t, 1, b.ClearFullRows())
	assert.Equal(t, boardFrom(t,
		".....",
		".....",
		".....",
		".....",
		"...OO",
	).Rows(), b.Rows())
}

func TestBoardRowsIsACopy(t *testing.T) {
	b := tetris.NewBoard(4, 4)
	rows := b.Rows()
	rows[0][0] = tetris.I
	assert.False(t, b.IsOccupied(0, 0))
}

func ExampleBoard_ClearFullRows() {
	b := tetris.NewBoard(4, 3)
	for c := 0; c < 4; c++ {
		b.Set(2, c, tetris.I)
	}
	b.Set(1, 0, tetris.T)

	fmt.Println(b.ClearFullRows())
	fmt.Print(b)
	// Output:
	// 1
	// ....
	// ....
	// T...
}

func BenchmarkClearFullRows(b *testing.B) {
	board := tetris.NewBoard(10, 20)
	for i := 0; i < b.N; i++ {
		for r := 16; r < 20; r++ {
			for c := 0; c < 10; c++ {
				board.Set(r, c, tetris.I)
			}
		}
		board.ClearFullRows()
	}
}
