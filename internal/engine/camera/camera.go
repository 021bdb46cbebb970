// Package camera provides the perspective camera and orbit controls.
package camera

import (
	gomath "math"

	"github.com/chewxy/math32"

	"github.com/Faultbox/boxstage/pkg/math"
)

// PerspectiveCamera is a pinhole camera looking at a target point.
type PerspectiveCamera struct {
	FovY   float32 // vertical field of view, radians
	Aspect float32
	Near   float32
	Far    float32

	position math.Vec3
	target   math.Vec3
	up       math.Vec3
}

// NewPerspectiveCamera creates a camera at (0, 0, 1) looking at the origin.
// fovDegrees is the vertical field of view.
func NewPerspectiveCamera(fovDegrees, near, far float32) *PerspectiveCamera {
	return &PerspectiveCamera{
		FovY:     fovDegrees * gomath.Pi / 180,
		Aspect:   1,
		Near:     near,
		Far:      far,
		position: math.Vec3{Z: 1},
		up:       math.Vec3{Y: 1},
	}
}

// SetAspect updates the aspect ratio from a viewport size. A degenerate
// viewport leaves the ratio unchanged.
func (c *PerspectiveCamera) SetAspect(width, height float32) {
	if width > 0 && height > 0 {
		c.Aspect = width / height
	}
}

// SetPosition moves the camera without changing its target.
func (c *PerspectiveCamera) SetPosition(p math.Vec3) {
	c.position = p
}

// LookAt points the camera at target.
func (c *PerspectiveCamera) LookAt(target math.Vec3) {
	c.target = target
}

// Position returns the camera position in world space.
func (c *PerspectiveCamera) Position() math.Vec3 {
	return c.position
}

// Target returns the point the camera looks at.
func (c *PerspectiveCamera) Target() math.Vec3 {
	return c.target
}

// View returns the view matrix.
func (c *PerspectiveCamera) View() math.Mat4 {
	return math.LookAt(c.position, c.target, c.up)
}

// Projection returns the projection matrix.
func (c *PerspectiveCamera) Projection() math.Mat4 {
	return math.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *PerspectiveCamera) ViewProjection() math.Mat4 {
	return c.Projection().Mul(c.View())
}

// InverseViewProjection returns the matrix that takes clip space back to
// world space, used for pointer rays.
func (c *PerspectiveCamera) InverseViewProjection() math.Mat4 {
	return c.ViewProjection().Inverse()
}

// OrbitControls orbits a camera around a target point.
type OrbitControls struct {
	Target math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // vertical angle, radians
	Yaw      float32 // horizontal angle, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	enabled bool
}

// NewOrbitControls creates enabled controls orbiting the origin, starting
// from the given camera position.
func NewOrbitControls(start math.Vec3, maxDistance float32) *OrbitControls {
	c := &OrbitControls{
		MinDistance:     1,
		MaxDistance:     maxDistance,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		enabled:         true,
	}
	c.SetPosition(start)
	return c
}

// SetPosition derives distance, pitch and yaw from a world position.
func (c *OrbitControls) SetPosition(p math.Vec3) {
	offset := p.Sub(c.Target)
	c.Distance = offset.Length()
	if c.Distance > 0 {
		c.Pitch = math32.Asin(offset.Y / c.Distance)
		c.Yaw = math32.Atan2(offset.X, offset.Z)
	}
	c.clamp()
}

// SetDistanceLimits changes the zoom range and pulls the current distance
// into it. A max of zero leaves the distance unbounded above.
func (c *OrbitControls) SetDistanceLimits(minDistance, maxDistance float32) {
	c.MinDistance = minDistance
	c.MaxDistance = maxDistance
	c.clamp()
}

// SetEnabled turns pointer-driven orbiting on or off.
func (c *OrbitControls) SetEnabled(enabled bool) {
	c.enabled = enabled
}

// Enabled reports whether pointer-driven orbiting is active.
func (c *OrbitControls) Enabled() bool {
	return c.enabled
}

// Position returns the orbiting camera position in world space.
func (c *OrbitControls) Position() math.Vec3 {
	x := c.Distance * math32.Cos(c.Pitch) * math32.Sin(c.Yaw)
	y := c.Distance * math32.Sin(c.Pitch)
	z := c.Distance * math32.Cos(c.Pitch) * math32.Cos(c.Yaw)

	return c.Target.Add(math.Vec3{X: x, Y: y, Z: z})
}

// HandleDrag updates rotation based on a pointer drag delta.
func (c *OrbitControls) HandleDrag(deltaX, deltaY float32) {
	if !c.enabled {
		return
	}
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity
	c.clamp()
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitControls) HandleZoom(delta float32) {
	if !c.enabled {
		return
	}
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.clamp()
}

// DollyIn moves the camera toward the target by scale.
func (c *OrbitControls) DollyIn(scale float32) {
	if scale <= 0 {
		return
	}
	c.Distance /= scale
	c.clamp()
}

// DollyOut moves the camera away from the target by scale.
func (c *OrbitControls) DollyOut(scale float32) {
	if scale <= 0 {
		return
	}
	c.Distance *= scale
	c.clamp()
}

// RotateUp raises the camera by angle radians. Negative angles lower it.
func (c *OrbitControls) RotateUp(angle float32) {
	c.Pitch += angle
	c.clamp()
}

// RotateLeft turns the camera around the target by angle radians.
func (c *OrbitControls) RotateLeft(angle float32) {
	c.Yaw -= angle
}

// Apply moves cam to the orbit position, looking at the target.
func (c *OrbitControls) Apply(cam *PerspectiveCamera) {
	cam.SetPosition(c.Position())
	cam.LookAt(c.Target)
}

func (c *OrbitControls) clamp() {
	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.MaxDistance > 0 && c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}
