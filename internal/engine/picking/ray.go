// Package picking provides pointer projection, ray/box and ray/plane intersection.
package picking

import (
	gomath "math"

	"github.com/Faultbox/boxstage/pkg/math"
)

// parallelEpsilon is the |normal·direction| below which a ray is treated as
// parallel to a plane.
const parallelEpsilon = 1e-6

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay converts pointer coordinates to a world-space ray.
// screenX, screenY are pixel coordinates relative to the rendering surface,
// viewportW/H are its dimensions. The ray starts at the camera position eye
// and points at the far-plane point under the pointer; invViewProj is the
// inverse of the camera's view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, eye math.Vec3, invViewProj math.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	var ndcX, ndcY float32
	if viewportW > 0 && viewportH > 0 {
		ndcX = 2.0*screenX/viewportW - 1.0
		ndcY = 1.0 - 2.0*screenY/viewportH // Flip Y
	}

	far := invViewProj.Unproject(math.Vec3{X: ndcX, Y: ndcY, Z: 1})

	return Ray{
		Origin:    eye,
		Direction: far.Sub(eye).Normalize(),
	}
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABB creates an AABB from two corners, ordering each axis.
func NewAABB(a, b math.Vec3) AABB {
	box := AABB{Min: a, Max: b}
	for i := 0; i < 3; i++ {
		lo, hi := a.Axis(i), b.Axis(i)
		if lo > hi {
			lo, hi = hi, lo
		}
		box.Min = box.Min.WithAxis(i, lo)
		box.Max = box.Max.WithAxis(i, hi)
	}
	return box
}

// AABBFromCenter builds a box from its center and half-extents.
func AABBFromCenter(center, half math.Vec3) AABB {
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Center returns the box center.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		o := r.Origin.Axis(axis)
		d := r.Direction.Axis(axis)
		lo, hi := box.Min.Axis(axis), box.Max.Axis(axis)

		if d == 0 {
			// Parallel to this slab: must already be inside it
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Plane is an infinite plane through Point with unit Normal.
type Plane struct {
	Point  math.Vec3
	Normal math.Vec3
}

// FacingPlane returns a plane through at whose normal points toward eye.
// When eye coincides with at the normal falls back to +Z.
func FacingPlane(at, eye math.Vec3) Plane {
	n := eye.Sub(at).Normalize()
	if n == (math.Vec3{}) {
		n = math.Vec3{Z: 1}
	}
	return Plane{Point: at, Normal: n}
}

// IntersectPlane returns where the ray meets the plane.
// ok is false when the ray is parallel to the plane or the plane is behind it.
func (r Ray) IntersectPlane(p Plane) (point math.Vec3, ok bool) {
	denom := p.Normal.Dot(r.Direction)
	if math.Abs32(denom) < parallelEpsilon {
		return math.Vec3{}, false
	}

	t := p.Point.Sub(r.Origin).Dot(p.Normal) / denom
	if t < 0 {
		return math.Vec3{}, false
	}
	return r.At(t), true
}
