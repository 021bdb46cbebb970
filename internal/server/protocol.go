package server

import "github.com/Faultbox/boxstage/internal/app"

// Message is a control websocket payload from the browser.
//
// Pointer messages (down, move, up) carry pixel coordinates in X and Y and
// optionally the viewport size in W and H. Spawn messages reuse W and H for
// the box width and height and add D for its depth. Orbit messages carry a
// right-drag delta in X and Y; zoom messages carry a wheel delta in Value.
type Message struct {
	T     string  `json:"t"`
	X     float32 `json:"x,omitempty"`
	Y     float32 `json:"y,omitempty"`
	W     float32 `json:"w,omitempty"`
	H     float32 `json:"h,omitempty"`
	D     float32 `json:"d,omitempty"`
	Axis  string  `json:"axis,omitempty"`
	Value float32 `json:"value,omitempty"`
	Color string  `json:"color,omitempty"`
	Op    string  `json:"op,omitempty"`
}

// Reply is sent after every handled message.
type Reply struct {
	T     string    `json:"t"`
	State app.State `json:"state"`
	Error string    `json:"error,omitempty"`
}
