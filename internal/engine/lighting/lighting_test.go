package lighting

import (
	"testing"

	"github.com/Faultbox/boxstage/pkg/math"
)

func TestHeadlight(t *testing.T) {
	dir := Headlight(math.Vec3{X: 100}, math.Vec3{})
	if dir != (math.Vec3{X: 1}) {
		t.Errorf("Headlight = %v, want +X", dir)
	}
}

func TestHeadlightDegenerate(t *testing.T) {
	dir := Headlight(math.Vec3{X: 1, Y: 2, Z: 3}, math.Vec3{X: 1, Y: 2, Z: 3})
	if dir != (math.Vec3{Y: 1}) {
		t.Errorf("Headlight = %v, want +Y fallback", dir)
	}
}

func TestDefaultRig(t *testing.T) {
	r := DefaultRig()
	for i := 0; i < 3; i++ {
		if r.Ambient[i] >= r.Color[i] {
			t.Errorf("ambient[%d] = %v should be dimmer than light %v", i, r.Ambient[i], r.Color[i])
		}
	}
}

func TestSkyColor(t *testing.T) {
	sky := DefaultSky()
	tests := []struct {
		name string
		h    float32
		want [3]float32
	}{
		{"zenith", 1, sky.Top},
		{"horizon", 0, sky.Bottom},
		{"below horizon", -0.7, sky.Bottom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sky.Color(tt.h); got != tt.want {
				t.Errorf("Color(%v) = %v, want %v", tt.h, got, tt.want)
			}
		})
	}
}

func TestSkyColorFollowsExponent(t *testing.T) {
	sky := DefaultSky()
	got := sky.Color(0.25)
	// 0.25^1.5 = 0.125 of the way from bottom to top.
	want := sky.Bottom[1]*0.875 + sky.Top[1]*0.125
	if d := got[1] - want; d > 1e-5 || d < -1e-5 {
		t.Errorf("Color(0.25)[1] = %v, want %v", got[1], want)
	}
	if d := got[2] - 1; d > 1e-5 || d < -1e-5 {
		t.Errorf("blue channel = %v, want 1 for both ends", got[2])
	}
}
