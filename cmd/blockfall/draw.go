package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/tetris"
)

const (
	cellSize    = 28
	boardMargin = 20
	sideWidth   = 6 * cellSize
	previewCell = 16
)

var (
	backgroundColor = color.RGBA{R: 18, G: 18, B: 24, A: 255}
	wellColor       = color.RGBA{R: 32, G: 32, B: 40, A: 255}
	gridColor       = color.RGBA{R: 44, G: 44, B: 54, A: 255}
)

var kindColors = map[tetris.Kind]color.RGBA{
	tetris.I: {R: 0, G: 240, B: 240, A: 255},
	tetris.O: {R: 240, G: 240, B: 0, A: 255},
	tetris.T: {R: 160, G: 0, B: 240, A: 255},
	tetris.S: {R: 0, G: 240, B: 0, A: 255},
	tetris.Z: {R: 240, G: 0, B: 0, A: 255},
	tetris.J: {R: 0, G: 0, B: 240, A: 255},
	tetris.L: {R: 240, G: 160, B: 0, A: 255},
}

func kindColor(k tetris.Kind) color.RGBA {
	if c, ok := kindColors[k]; ok {
		return c
	}
	return color.RGBA{R: 200, G: 200, B: 200, A: 255}
}

func ghostColor(k tetris.Kind) color.RGBA {
	c := kindColor(k)
	return color.RGBA{R: c.R / 4, G: c.G / 4, B: c.B / 4, A: 96}
}

func screenSize(cfg tetris.Config) (int, int) {
	w := boardMargin*3 + cfg.BoardWidth*cellSize + sideWidth
	h := boardMargin*2 + cfg.BoardHeight*cellSize
	return w, h
}

func drawCell(dst *ebiten.Image, x, y, size float32, clr color.Color) {
	vector.DrawFilledRect(dst, x+1, y+1, size-2, size-2, clr, false)
}

func drawBoard(dst *ebiten.Image, snap tetris.Snapshot) {
	w := float32(snap.Width * cellSize)
	h := float32(snap.Height * cellSize)
	vector.DrawFilledRect(dst, boardMargin, boardMargin, w, h, wellColor, false)

	for r, row := range snap.Compose() {
		for c, cell := range row {
			x := float32(boardMargin + c*cellSize)
			y := float32(boardMargin + r*cellSize)
			switch cell.Layer {
			case tetris.LayerEmpty:
				vector.StrokeRect(dst, x, y, cellSize, cellSize, 1, gridColor, false)
			case tetris.LayerGhost:
				drawCell(dst, x, y, cellSize, ghostColor(cell.Kind))
			default:
				drawCell(dst, x, y, cellSize, kindColor(cell.Kind))
			}
		}
	}
}

func drawPreview(dst *ebiten.Image, p *tetris.PieceView, x, y int) {
	if p == nil {
		return
	}
	for r, row := range p.Shape {
		for c, filled := range row {
			if filled {
				drawCell(dst, float32(x+c*previewCell), float32(y+r*previewCell), previewCell, kindColor(p.Kind))
			}
		}
	}
}

func drawSidebar(dst *ebiten.Image, snap tetris.Snapshot) {
	x := boardMargin*2 + snap.Width*cellSize
	y := boardMargin

	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("SCORE %d\nLEVEL %d\nLINES %d", snap.Score, snap.Level, snap.Lines), x, y)
	y += 60

	ebitenutil.DebugPrintAt(dst, "HOLD", x, y)
	drawPreview(dst, snap.Hold, x, y+18)
	y += 18 + 4*previewCell + 12

	ebitenutil.DebugPrintAt(dst, "NEXT", x, y)
	y += 18
	for i := range snap.Next {
		drawPreview(dst, &snap.Next[i], x, y)
		y += 4*previewCell + 4
	}

	switch {
	case snap.GameOver:
		ebitenutil.DebugPrintAt(dst, "GAME OVER\nR to restart", x, y+12)
	case snap.Paused:
		ebitenutil.DebugPrintAt(dst, "PAUSED\nP to resume", x, y+12)
	}
}
