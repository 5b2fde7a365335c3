// Package debugui provides Dear ImGui panels for inspecting a running game.
// Panels pull their data through source functions each frame, so they work
// the same against a runner or a game driven directly by the host.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/runner"
	"github.com/plus3/blockfall/tetris"
)

// Item holds a Dear ImGui render function.
type Item struct {
	Render func()
}

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
// Hosts should stop forwarding keys to the game while WantCaptureKeyboard is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// SnapshotSource returns the state a panel should display this frame.
type SnapshotSource func() tetris.Snapshot

// StatsSource returns runner statistics for the current frame.
type StatsSource func() *runner.Stats

// Overlay renders a list of items between the backend's BeginFrame and
// EndFrame calls.
type Overlay struct {
	items []Item
	input InputState
}

func NewOverlay(items ...Item) *Overlay {
	return &Overlay{items: items}
}

// Add appends items rendered after the existing ones.
func (o *Overlay) Add(items ...Item) {
	o.items = append(o.items, items...)
}

// Render records the input capture state and runs every item in order.
func (o *Overlay) Render() {
	io := imgui.CurrentIO()
	o.input.WantCaptureMouse = io.WantCaptureMouse()
	o.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range o.items {
		item.Render()
	}
}

// InputState returns the capture state recorded by the last Render.
func (o *Overlay) InputState() InputState {
	return o.input
}

// Len returns the number of registered items.
func (o *Overlay) Len() int {
	return len(o.items)
}
