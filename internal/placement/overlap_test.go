package placement

import (
	"testing"

	"github.com/Faultbox/boxstage/internal/engine/picking"
	"github.com/Faultbox/boxstage/pkg/math"
)

func bounds(center, half math.Vec3) picking.AABB {
	return picking.AABBFromCenter(center, half)
}

func TestGuardBothModes(t *testing.T) {
	tests := []struct {
		name     string
		center   math.Vec3
		half     math.Vec3
		other    picking.AABB
		interval bool
		corner   bool
	}{
		{
			name:     "separated on X",
			center:   math.Vec3{X: -15},
			half:     half5,
			other:    bounds(math.Vec3{X: 15}, half5),
			interval: false,
			corner:   false,
		},
		{
			name:     "identical",
			center:   math.Vec3{},
			half:     half5,
			other:    bounds(math.Vec3{}, half5),
			interval: true,
			corner:   true,
		},
		{
			name:     "partial overlap",
			center:   math.Vec3{X: 8, Y: 2, Z: -1},
			half:     half5,
			other:    bounds(math.Vec3{}, half5),
			interval: true,
			corner:   true,
		},
		{
			// Inclusive bounds make touching faces an overlap in corner mode.
			name:     "touching faces",
			center:   math.Vec3{X: 10},
			half:     half5,
			other:    bounds(math.Vec3{}, half5),
			interval: false,
			corner:   true,
		},
		{
			// Candidate swallows the other box: no candidate corner is inside it.
			name:     "candidate contains other",
			center:   math.Vec3{},
			half:     math.Vec3{X: 10, Y: 10, Z: 10},
			other:    bounds(math.Vec3{}, math.Vec3{X: 2, Y: 2, Z: 2}),
			interval: true,
			corner:   false,
		},
		{
			// A thin slab pushed through a thin post: the boxes cross, but
			// neither has a corner inside the other.
			name:     "crossing without corners",
			center:   math.Vec3{},
			half:     math.Vec3{X: 10, Y: 1, Z: 1},
			other:    bounds(math.Vec3{}, math.Vec3{X: 1, Y: 10, Z: 10}),
			interval: true,
			corner:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Guard{Mode: OverlapInterval}).Overlaps(tt.center, tt.half, tt.other); got != tt.interval {
				t.Errorf("interval mode = %v, want %v", got, tt.interval)
			}
			if got := (Guard{Mode: OverlapCorner}).Overlaps(tt.center, tt.half, tt.other); got != tt.corner {
				t.Errorf("corner mode = %v, want %v", got, tt.corner)
			}
		})
	}
}

// Corner mode only tests the candidate's corners. A small candidate poking
// a corner into a large box is caught even though none of the large box's
// corners lie inside the candidate.
func TestGuardCornerModeChecksCandidateCorners(t *testing.T) {
	g := Guard{Mode: OverlapCorner}
	small := math.Vec3{X: 2, Y: 2, Z: 2}
	large := math.Vec3{X: 10, Y: 10, Z: 10}

	// Small box pushed into the large box's -X face, away from its corners.
	smallCenter := math.Vec3{X: -11}
	largeCenter := math.Vec3{}

	if !g.Overlaps(smallCenter, small, bounds(largeCenter, large)) {
		t.Error("small candidate corner inside large box must overlap")
	}
	if g.Overlaps(largeCenter, large, bounds(smallCenter, small)) {
		t.Error("large candidate has no corner inside the small box; corner mode reports no overlap")
	}
}

func TestGuardFirstOverlapSkipsSelf(t *testing.T) {
	g := Guard{Mode: OverlapInterval}
	self := NewInnerBox(math.Vec3{X: 10, Y: 10, Z: 10}, math.Vec3{}, Color{})
	a := NewInnerBox(math.Vec3{X: 10, Y: 10, Z: 10}, math.Vec3{X: -20}, Color{})
	b := NewInnerBox(math.Vec3{X: 10, Y: 10, Z: 10}, math.Vec3{X: 20}, Color{})
	c := NewInnerBox(math.Vec3{X: 10, Y: 10, Z: 10}, math.Vec3{X: 22}, Color{})
	boxes := []*InnerBox{self, a, b, c}

	if _, hit := g.FirstOverlap(self.Position, self.HalfExtents(), boxes, self); hit {
		t.Error("a box must not collide with itself")
	}

	got, hit := g.FirstOverlap(math.Vec3{X: 15}, half5, boxes, self)
	if !hit || got != b {
		t.Errorf("FirstOverlap = %v, %v; want the first overlapping box in order", got, hit)
	}
}

func TestParseOverlapMode(t *testing.T) {
	for in, want := range map[string]OverlapMode{"": OverlapInterval, "interval": OverlapInterval, "corner": OverlapCorner} {
		got, err := ParseOverlapMode(in)
		if err != nil || got != want {
			t.Errorf("ParseOverlapMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseOverlapMode("sat"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if OverlapCorner.String() != "corner" {
		t.Errorf("OverlapCorner.String() = %q", OverlapCorner.String())
	}
}
