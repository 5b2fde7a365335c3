package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
)

// frameHistory is a ring buffer of frame times in milliseconds.
type frameHistory struct {
	samples []float32
	index   int
	filled  int
}

func newFrameHistory(frames int) *frameHistory {
	return &frameHistory{samples: make([]float32, max(frames, 1))}
}

func (h *frameHistory) push(ms float32) {
	h.samples[h.index] = ms
	h.index = (h.index + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// average ignores slots that were never written.
func (h *frameHistory) average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, ms := range h.samples {
		sum += ms
	}
	return sum / float32(h.filled)
}

func NewRunnerPanel(source StatsSource, historyFrames int) *RunnerPanel {
	return &RunnerPanel{
		source:  source,
		history: newFrameHistory(historyFrames),
		timer:   NewFrameTimer(),
	}
}

func (rp *RunnerPanel) Item() Item {
	return Item{Render: rp.Render}
}

func (rp *RunnerPanel) Render() {
	rp.history.push(rp.timer.GetDeltaTime() * 1000.0)

	if !imgui.BeginV("Runner", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := rp.history.average()
	fps := float32(0)
	if avg > 0 {
		fps = 1000.0 / avg
	}
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, fps))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &rp.history.samples[0], int32(len(rp.history.samples)))

	if rp.source == nil {
		imgui.End()
		return
	}
	stats := rp.source()

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Operations: %d  Accepted: %d  Rejected: %d",
		stats.TotalExecutions, stats.Accepted, stats.Rejected))

	if imgui.TreeNodeStr("Operation Timings") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("OpStatsTable", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Operation")
			imgui.TableSetupColumn("Count")
			imgui.TableSetupColumn("Rejected")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableSetupColumn("Last")
			imgui.TableHeadersRow()

			for _, op := range stats.Ops {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(op.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", op.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", op.Rejected))
				imgui.TableNextColumn()
				imgui.Text(op.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(op.MaxDuration.String())
				imgui.TableNextColumn()
				imgui.Text(op.LastDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
