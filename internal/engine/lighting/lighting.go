// Package lighting provides the light rig used to shade the box scene.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/boxstage/pkg/math"
)

// Rig is an ambient term plus one directional light.
type Rig struct {
	Ambient [3]float32
	Color   [3]float32
}

// DefaultRig returns a dim grey ambient and a white directional light.
func DefaultRig() Rig {
	return Rig{
		Ambient: [3]float32{0x44 / 255.0, 0x44 / 255.0, 0x44 / 255.0},
		Color:   [3]float32{1, 1, 1},
	}
}

// Headlight returns the direction towards the light for a light that sits
// at the camera. Faces pointing at the viewer are lit fully.
func Headlight(eye, target math.Vec3) math.Vec3 {
	dir := eye.Sub(target).Normalize()
	if dir == (math.Vec3{}) {
		return math.Vec3{Y: 1}
	}
	return dir
}

// Sky is a vertical gradient seen in every view direction.
type Sky struct {
	Top      [3]float32
	Bottom   [3]float32
	Exponent float32
}

// DefaultSky fades from white overhead to blue at and below the horizon.
func DefaultSky() Sky {
	return Sky{
		Top:      [3]float32{1, 1, 1},
		Bottom:   [3]float32{0, 0x77 / 255.0, 1},
		Exponent: 1.5,
	}
}

// Color returns the sky colour for the height h of a unit view direction.
func (s Sky) Color(h float32) [3]float32 {
	t := math32.Pow(math32.Max(h, 0), s.Exponent)
	if t > 1 {
		t = 1
	}
	var c [3]float32
	for i := range c {
		c[i] = s.Bottom[i]*(1-t) + s.Top[i]*t
	}
	return c
}
