package placement

import (
	"fmt"

	"github.com/Faultbox/boxstage/pkg/math"
)

// DepthSource selects which outer extent bounds the Z axis.
type DepthSource int

const (
	// DepthFromWidth clamps Z against the outer box's X half-extent. It is
	// the legacy default and agrees with DepthFromDepth only while the
	// container is square in X/Z.
	DepthFromWidth DepthSource = iota
	// DepthFromDepth clamps Z against the outer box's Z half-extent.
	DepthFromDepth
)

// String returns the config name of the source.
func (d DepthSource) String() string {
	if d == DepthFromDepth {
		return "depth"
	}
	return "width"
}

// ParseDepthSource converts a config value to a DepthSource.
func ParseDepthSource(s string) (DepthSource, error) {
	switch s {
	case "", "width":
		return DepthFromWidth, nil
	case "depth":
		return DepthFromDepth, nil
	default:
		return 0, fmt.Errorf("unknown depth clamp axis %q", s)
	}
}

// Clamp keeps a box inside the outer box.
type Clamp struct {
	Depth DepthSource
}

// Apply moves center, per axis, just enough that center ± half lies within
// ± outer. outer is the container's half-extents.
func (c Clamp) Apply(center, half, outer math.Vec3) math.Vec3 {
	bounds := outer
	if c.Depth == DepthFromWidth {
		bounds.Z = outer.X
	}

	for axis := 0; axis < 3; axis++ {
		p := center.Axis(axis)
		h := half.Axis(axis)
		limit := bounds.Axis(axis)

		if p-h < -limit {
			p = -limit + h
		}
		if p+h > limit {
			p = limit - h
		}
		center = center.WithAxis(axis, p)
	}
	return center
}

// Contains reports whether center ± half lies within ± outer, using the same
// depth source as Apply.
func (c Clamp) Contains(center, half, outer math.Vec3) bool {
	return c.Apply(center, half, outer) == center
}
