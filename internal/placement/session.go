package placement

import (
	"github.com/Faultbox/boxstage/internal/engine/picking"
	"github.com/Faultbox/boxstage/pkg/math"
)

// Picker answers "which box is under this ray". Implementations return the
// nearest hit along the ray.
type Picker interface {
	Pick(ray picking.Ray) (*InnerBox, bool)
}

// Controls is the camera control surface. It is disabled while a box is
// being dragged so both do not react to the same pointer motion.
type Controls interface {
	SetEnabled(enabled bool)
}

// Viewpoint is the camera state needed to project the pointer into the scene.
type Viewpoint interface {
	Position() math.Vec3
	InverseViewProjection() math.Mat4
}

// Action is the kind of pointer event.
type Action int

const (
	Press Action = iota
	Move
	Release
)

// PointerEvent is a pointer action at surface-relative pixel coordinates.
type PointerEvent struct {
	Action Action
	X, Y   float32
}

// Result describes what a pointer event did.
type Result int

const (
	// Ignored means the event changed nothing (press on empty space,
	// move over empty space while idle).
	Ignored Result = iota
	// Selected means a press grabbed a box and a drag started.
	Selected
	// Moved means the dragged box was placed at a new position.
	Moved
	// Reverted means the candidate position overlapped another box and the
	// dragged box went back to its last accepted position.
	Reverted
	// Unchanged means the pointer ray missed the reference plane.
	Unchanged
	// Hover means the reference plane was re-aimed at the hovered box.
	Hover
	// Released means the drag, if any, ended.
	Released
)

var resultNames = [...]string{"ignored", "selected", "moved", "reverted", "unchanged", "hover", "released"}

// String returns a lowercase name for logs and wire messages.
func (r Result) String() string {
	if r >= 0 && int(r) < len(resultNames) {
		return resultNames[r]
	}
	return "unknown"
}

// DragSession is the state of one drag, from press to release.
type DragSession struct {
	Box      *InnerBox
	Rollback math.Vec3 // last accepted position
	Offset   math.Vec3 // plane hit minus plane position at press
}

// SessionConfig wires a Session to its collaborators.
type SessionConfig struct {
	Outer    *OuterBox
	Boxes    *Collection
	Picker   Picker
	Controls Controls
	Camera   Viewpoint
	Clamp    Clamp
	Guard    Guard
}

// Session is the press/move/release state machine. It is Idle when Drag
// returns nil and Dragging otherwise.
type Session struct {
	cfg      SessionConfig
	plane    picking.Plane
	viewport [2]float32
	drag     *DragSession
}

// NewSession creates an idle session.
func NewSession(cfg SessionConfig) *Session {
	if cfg.Controls == nil {
		cfg.Controls = nopControls{}
	}
	return &Session{
		cfg:   cfg,
		plane: picking.Plane{Normal: math.Vec3{Z: 1}},
	}
}

// SetViewport sets the rendering surface size used to normalize pointer
// coordinates.
func (s *Session) SetViewport(width, height float32) {
	s.viewport = [2]float32{width, height}
}

// Drag returns the active drag, or nil when idle.
func (s *Session) Drag() *DragSession {
	return s.drag
}

// Plane returns the current reference plane.
func (s *Session) Plane() picking.Plane {
	return s.plane
}

// Handle dispatches a pointer event.
func (s *Session) Handle(ev PointerEvent) Result {
	switch ev.Action {
	case Press:
		return s.press(ev.X, ev.Y)
	case Move:
		return s.move(ev.X, ev.Y)
	case Release:
		return s.release()
	default:
		return Ignored
	}
}

func (s *Session) ray(x, y float32) picking.Ray {
	cam := s.cfg.Camera
	return picking.ScreenToRay(x, y, s.viewport[0], s.viewport[1], cam.Position(), cam.InverseViewProjection())
}

// aim moves the reference plane to at and turns it toward the camera.
func (s *Session) aim(at math.Vec3) {
	s.plane = picking.FacingPlane(at, s.cfg.Camera.Position())
}

func (s *Session) press(x, y float32) Result {
	ray := s.ray(x, y)
	box, ok := s.cfg.Picker.Pick(ray)
	if !ok {
		return Ignored
	}

	s.cfg.Controls.SetEnabled(false)
	s.aim(box.Position)

	var offset math.Vec3
	if hit, ok := ray.IntersectPlane(s.plane); ok {
		offset = hit.Sub(s.plane.Point)
	}

	s.drag = &DragSession{
		Box:      box,
		Rollback: box.Position,
		Offset:   offset,
	}
	return Selected
}

func (s *Session) move(x, y float32) Result {
	ray := s.ray(x, y)

	if s.drag == nil {
		box, ok := s.cfg.Picker.Pick(ray)
		if !ok {
			return Ignored
		}
		s.aim(box.Position)
		return Hover
	}

	hit, ok := ray.IntersectPlane(s.plane)
	if !ok {
		return Unchanged
	}

	return s.place(hit.Sub(s.drag.Offset))
}

// place runs a candidate position through containment and overlap checks
// and commits or reverts the dragged box.
func (s *Session) place(candidate math.Vec3) Result {
	box := s.drag.Box
	half := box.HalfExtents()

	candidate = s.cfg.Clamp.Apply(candidate, half, s.cfg.Outer.HalfExtents())

	if _, hit := s.cfg.Guard.FirstOverlap(candidate, half, s.cfg.Boxes.All(), box); hit {
		box.Position = s.drag.Rollback
		return Reverted
	}

	box.Position = candidate
	s.drag.Rollback = candidate
	return Moved
}

func (s *Session) release() Result {
	s.cfg.Controls.SetEnabled(true)
	s.drag = nil
	return Released
}

type nopControls struct{}

func (nopControls) SetEnabled(bool) {}
