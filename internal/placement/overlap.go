package placement

import (
	"fmt"

	"github.com/Faultbox/boxstage/internal/engine/picking"
	"github.com/Faultbox/boxstage/pkg/math"
)

// OverlapMode selects how two boxes are tested against each other.
type OverlapMode int

const (
	// OverlapInterval is the exact test: boxes overlap when their
	// intervals overlap on all three axes. Touching faces do not overlap.
	OverlapInterval OverlapMode = iota
	// OverlapCorner tests whether any of the candidate's 8 corners lies
	// inside the other box, bounds inclusive. It misses a candidate that
	// fully contains the other box and boxes crossing through each other's
	// faces with no corner inside.
	OverlapCorner
)

// String returns the config name of the mode.
func (m OverlapMode) String() string {
	if m == OverlapCorner {
		return "corner"
	}
	return "interval"
}

// ParseOverlapMode converts a config value to an OverlapMode.
func ParseOverlapMode(s string) (OverlapMode, error) {
	switch s {
	case "", "interval":
		return OverlapInterval, nil
	case "corner":
		return OverlapCorner, nil
	default:
		return 0, fmt.Errorf("unknown overlap mode %q", s)
	}
}

// cornerSigns enumerates the 8 corners of a box as ± offsets per axis.
var cornerSigns = [8]math.Vec3{
	{X: 1, Y: 1, Z: 1},
	{X: 1, Y: 1, Z: -1},
	{X: 1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: 1},
	{X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1},
	{X: -1, Y: -1, Z: -1},
}

// Guard rejects placements that overlap already placed boxes.
type Guard struct {
	Mode OverlapMode
}

// Overlaps reports whether a candidate box at center with half-extents half
// overlaps other. In corner mode the test is not symmetric: only the
// candidate's corners are checked.
func (g Guard) Overlaps(center, half math.Vec3, other picking.AABB) bool {
	if g.Mode == OverlapCorner {
		return cornerInside(center, half, other)
	}
	return intervalsOverlap(center, half, other)
}

// FirstOverlap checks the candidate against every box in boxes except skip,
// in order, and returns the first one it overlaps.
func (g Guard) FirstOverlap(center, half math.Vec3, boxes []*InnerBox, skip *InnerBox) (*InnerBox, bool) {
	for _, other := range boxes {
		if other == skip {
			continue
		}
		if g.Overlaps(center, half, other.Bounds()) {
			return other, true
		}
	}
	return nil, false
}

func intervalsOverlap(center, half math.Vec3, other picking.AABB) bool {
	oc := other.Center()
	oh := other.Max.Sub(oc)
	for axis := 0; axis < 3; axis++ {
		if math.Abs32(center.Axis(axis)-oc.Axis(axis)) >= half.Axis(axis)+oh.Axis(axis) {
			return false
		}
	}
	return true
}

func cornerInside(center, half math.Vec3, other picking.AABB) bool {
	for _, sign := range cornerSigns {
		corner := center.Add(half.Mul(sign))
		if pointInside(corner, other) {
			return true
		}
	}
	return false
}

func pointInside(p math.Vec3, b picking.AABB) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
