package app

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/boxstage/internal/placement"
)

// State is a read-only snapshot of the App, shaped for JSON.
type State struct {
	Outer           Dimensions `json:"outer"`
	Boxes           []BoxState `json:"boxes"`
	Selected        string     `json:"selected,omitempty"`
	ControlsEnabled bool       `json:"controlsEnabled"`
	LastResult      string     `json:"lastResult"`
	Camera          [3]float32 `json:"camera"`
	FOV             float32    `json:"fov"` // vertical, degrees
	Viewport        [2]float32 `json:"viewport"`
}

// Dimensions are full box sizes.
type Dimensions struct {
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
	Depth  float32 `json:"depth"`
}

// BoxState describes one inner box.
type BoxState struct {
	ID       string     `json:"id"`
	Position [3]float32 `json:"position"`
	Size     [3]float32 `json:"size"`
	Color    string     `json:"color"`
}

// Snapshot captures the current state.
func (a *App) Snapshot() State {
	size := a.outer.Size()
	st := State{
		Outer:           Dimensions{Width: size.X, Height: size.Y, Depth: size.Z},
		Boxes:           make([]BoxState, 0, a.scene.Collection().Len()),
		ControlsEnabled: a.controls.Enabled(),
		LastResult:      a.lastResult.String(),
		Camera:          a.camera.Position().Array(),
		FOV:             mgl32.RadToDeg(a.camera.FovY),
		Viewport:        [2]float32{a.width, a.height},
	}
	for _, b := range a.scene.Boxes() {
		st.Boxes = append(st.Boxes, boxState(b))
	}
	if sel := a.Selected(); sel != nil {
		st.Selected = sel.ID
	}
	return st
}

func boxState(b *placement.InnerBox) BoxState {
	return BoxState{
		ID:       b.ID,
		Position: b.Position.Array(),
		Size:     b.Size().Array(),
		Color:    b.Color.Hex(),
	}
}
