package debugui

import (
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
)

func TestFrameHistory(t *testing.T) {
	h := newFrameHistory(4)
	assert.Zero(t, h.average())

	h.push(10)
	h.push(20)
	assert.InDelta(t, 15, h.average(), 0.001, "unwritten slots are ignored")

	for range 4 {
		h.push(5)
	}
	assert.InDelta(t, 5, h.average(), 0.001)
	assert.Len(t, h.samples, 4)

	assert.Len(t, newFrameHistory(0).samples, 1)
}

func TestKindCounts(t *testing.T) {
	stats := tetris.StatsView{Dealt: map[tetris.Kind]int{
		tetris.I: 2,
		tetris.O: 6,
		tetris.T: 0,
	}}

	rows := kindCounts(stats)
	assert.Equal(t, []tetris.Kind{tetris.I, tetris.O, tetris.T}, []tetris.Kind{rows[0].Kind, rows[1].Kind, rows[2].Kind})
	assert.InDelta(t, 0.75, rows[1].Share, 0.001)

	sortKindCounts(rows, 1, false)
	assert.Equal(t, tetris.O, rows[0].Kind)
	assert.Equal(t, tetris.T, rows[2].Kind)

	assert.Zero(t, kindCounts(tetris.StatsView{Dealt: map[tetris.Kind]int{tetris.S: 0}})[0].Share)
}

func TestShapeText(t *testing.T) {
	assert.Equal(t, "[][]\n[][]", shapeText([][]bool{{true, true}, {true, true}}))
	assert.Equal(t, " .[]\n[] .", shapeText([][]bool{{false, true}, {true, false}}))
	assert.Equal(t, " 0  3 12", heightsText([]int{0, 3, 12}))
}

func TestStateLabel(t *testing.T) {
	assert.Equal(t, "playing", stateLabel(tetris.Snapshot{}))
	assert.Equal(t, "paused", stateLabel(tetris.Snapshot{Paused: true}))
	assert.Equal(t, "game over", stateLabel(tetris.Snapshot{GameOver: true, Paused: true}))
}
