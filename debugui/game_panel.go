package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/tetris"
)

func NewGamePanel(source SnapshotSource) *GamePanel {
	return &GamePanel{source: source}
}

// Item wraps the panel for an Overlay.
func (gp *GamePanel) Item() Item {
	return Item{Render: gp.Render}
}

func (gp *GamePanel) Render() {
	if !imgui.BeginV("Game", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	snap := gp.source()

	imgui.Text(fmt.Sprintf("Score: %d", snap.Score))
	imgui.Text(fmt.Sprintf("Level: %d", snap.Level))
	imgui.Text(fmt.Sprintf("Lines: %d", snap.Lines))
	imgui.Text(fmt.Sprintf("Gravity: %s", snap.Speed))
	imgui.Text(fmt.Sprintf("State: %s", stateLabel(snap)))

	imgui.Separator()
	if snap.Active != nil {
		imgui.Text(fmt.Sprintf("Active: %v at (%d, %d) rot %d",
			snap.Active.Kind, snap.Active.Position.X, snap.Active.Position.Y, snap.Active.Rotation))
	}
	if snap.Ghost != nil {
		imgui.Text(fmt.Sprintf("Ghost row: %d", snap.Ghost.Position.Y))
	}

	if imgui.TreeNodeStr("Hold") {
		if snap.Hold == nil {
			imgui.Text("empty")
		} else {
			imgui.Text(shapeText(snap.Hold.Shape))
		}
		if !snap.CanHold {
			imgui.Text("(locked until the next piece)")
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Next") {
		for i, p := range snap.Next {
			imgui.BulletText(fmt.Sprintf("%d: %v", i+1, p.Kind))
			imgui.Text(shapeText(p.Shape))
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Column Heights") {
		imgui.Text(heightsText(snap.ColumnHeights()))
		imgui.TreePop()
	}

	imgui.End()
}

func stateLabel(snap tetris.Snapshot) string {
	switch {
	case snap.GameOver:
		return "game over"
	case snap.Paused:
		return "paused"
	}
	return "playing"
}

// shapeText renders a shape grid with one text line per row.
func shapeText(rows [][]bool) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, filled := range row {
			if filled {
				b.WriteString("[]")
			} else {
				b.WriteString(" .")
			}
		}
	}
	return b.String()
}

func heightsText(heights []int) string {
	parts := make([]string, len(heights))
	for i, h := range heights {
		parts[i] = fmt.Sprintf("%2d", h)
	}
	return strings.Join(parts, " ")
}
