package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/tetris"
)

type kindCount struct {
	Kind  tetris.Kind
	Dealt int
	Share float32
}

func NewPieceStatsPanel(source SnapshotSource) *PieceStatsPanel {
	return &PieceStatsPanel{
		source:        source,
		sortColumn:    0,
		sortAscending: true,
	}
}

func (ps *PieceStatsPanel) Item() Item {
	return Item{Render: ps.Render}
}

func (ps *PieceStatsPanel) Render() {
	if !imgui.BeginV("Piece Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	snap := ps.source()
	rows := kindCounts(snap.Stats)

	imgui.Text(fmt.Sprintf("Locks: %d  Holds: %d  Hard drops: %d",
		snap.Stats.Locks, snap.Stats.Holds, snap.Stats.HardDrops))
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable
	if imgui.BeginTableV("DealtTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Dealt")
		imgui.TableSetupColumn("Share")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			ps.sortColumn = int(spec.ColumnIndex())
			ps.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}
		sortKindCounts(rows, ps.sortColumn, ps.sortAscending)

		for _, row := range rows {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(row.Kind.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Dealt))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%5.1f%%", row.Share*100))

			imgui.SameLine()
			drawList := imgui.WindowDrawList()
			pos := imgui.CursorScreenPos()
			color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
			drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+row.Share*80, pos.Y+10), color)
		}

		imgui.EndTable()
	}

	if imgui.TreeNodeStr("Line Clears") {
		if imgui.BeginTableV("ClearsTable", 2, imgui.TableFlagsBorders|imgui.TableFlagsRowBg, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Rows")
			imgui.TableSetupColumn("Locks")
			imgui.TableHeadersRow()

			for n := 1; n <= len(snap.Stats.Clears); n++ {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", n))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", snap.Stats.Clears[n]))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// kindCounts flattens the dealt counters into table rows in kind order.
func kindCounts(stats tetris.StatsView) []kindCount {
	total := 0
	for _, n := range stats.Dealt {
		total += n
	}

	rows := make([]kindCount, 0, len(stats.Dealt))
	for k, n := range stats.Dealt {
		row := kindCount{Kind: k, Dealt: n}
		if total > 0 {
			row.Share = float32(n) / float32(total)
		}
		rows = append(rows, row)
	}
	sortKindCounts(rows, 0, true)
	return rows
}

func sortKindCounts(rows []kindCount, column int, ascending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less bool

		switch column {
		case 1, 2:
			less = a.Dealt < b.Dealt
			if a.Dealt == b.Dealt {
				less = a.Kind < b.Kind
			}
		default:
			less = a.Kind < b.Kind
		}

		if !ascending {
			return !less
		}
		return less
	})
}
