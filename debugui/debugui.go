// Package debugui provides an immediate-mode Dear ImGui inspector for a running game.
// Windows are render functions deferred by ImguiSystem so they draw after every other
// system has finished the frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/loop"
)

// Item renders one or more ImGui windows for the given frame.
type Item func(frame *loop.Frame)

// InputState tracks Dear ImGui's input capture state.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers the render functions of its items and updates Input with the
// current capture state.
type ImguiSystem struct {
	Items []Item
	Input InputState
}

// Add appends an item to the system.
func (i *ImguiSystem) Add(items ...Item) {
	i.Items = append(i.Items, items...)
}

// WantsKeyboard reports whether ImGui captured the keyboard during the last frame.
func (i *ImguiSystem) WantsKeyboard() bool {
	return i.Input.WantCaptureKeyboard
}

func (i *ImguiSystem) Execute(frame *loop.Frame) {
	i.Input.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	i.Input.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for _, item := range i.Items {
		frame.Commands.Defer(func() { item(frame) })
	}
}
