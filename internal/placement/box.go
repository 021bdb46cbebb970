// Package placement implements the interactive box placement core: pointer
// driven drags constrained to a container, overlap rejection and spawning.
//
// Everything in this package runs synchronously on the caller's goroutine.
// Hosts must deliver events one at a time.
package placement

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Faultbox/boxstage/internal/engine/picking"
	"github.com/Faultbox/boxstage/pkg/math"
)

// Axis selects one of the three box dimensions.
type Axis int

const (
	AxisWidth  Axis = iota // X
	AxisHeight             // Y
	AxisDepth              // Z
)

// String returns the dimension name used in config and wire messages.
func (a Axis) String() string {
	switch a {
	case AxisWidth:
		return "width"
	case AxisHeight:
		return "height"
	case AxisDepth:
		return "depth"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ParseAxis converts a dimension name to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "width", "x":
		return AxisWidth, nil
	case "height", "y":
		return AxisHeight, nil
	case "depth", "length", "z":
		return AxisDepth, nil
	default:
		return 0, fmt.Errorf("unknown axis %q", s)
	}
}

// OuterBox is the container all inner boxes must stay inside. It is centered
// at the origin. Renderers draw it as a fixed base geometry times a per-axis
// scale; the committed dimensions are kept as entered so that placement
// checks compare against exact values.
type OuterBox struct {
	base math.Vec3
	size math.Vec3
}

// NewOuterBox creates a container with the given full base dimensions.
func NewOuterBox(width, height, depth float32) *OuterBox {
	base := math.Vec3{X: width, Y: height, Z: depth}
	return &OuterBox{base: base, size: base}
}

// Base returns the unscaled full dimensions.
func (o *OuterBox) Base() math.Vec3 {
	return o.base
}

// Scale returns the current per-axis scale factor relative to the base.
func (o *OuterBox) Scale() math.Vec3 {
	var s math.Vec3
	for i := 0; i < 3; i++ {
		if b := o.base.Axis(i); b != 0 {
			s = s.WithAxis(i, o.size.Axis(i)/b)
		}
	}
	return s
}

// Size returns the current full dimensions, exactly as last committed.
func (o *OuterBox) Size() math.Vec3 {
	return o.size
}

// HalfExtents returns half the current dimensions.
func (o *OuterBox) HalfExtents() math.Vec3 {
	return o.size.Scale(0.5)
}

// SetDimension sets the full size on one axis. Negative values and a zero
// base are ignored; the return value reports whether the box changed.
// Inner boxes are not revalidated.
func (o *OuterBox) SetDimension(axis Axis, value float32) bool {
	if value < 0 || o.base.Axis(int(axis)) == 0 {
		return false
	}
	o.size = o.size.WithAxis(int(axis), value)
	return true
}

// Color is a linear RGB triple in [0, 1].
type Color [3]float32

// InnerBox is a movable box. Its identity is the pointer; ID is a stable
// string form of that identity for hosts that talk over the wire.
type InnerBox struct {
	ID       string
	Position math.Vec3
	Color    Color

	half math.Vec3
}

// NewInnerBox creates a box of the given full size centered at pos.
func NewInnerBox(size math.Vec3, pos math.Vec3, color Color) *InnerBox {
	return &InnerBox{
		ID:       uuid.NewString(),
		Position: pos,
		Color:    color,
		half:     size.Scale(0.5),
	}
}

// HalfExtents returns the half-size set at creation.
func (b *InnerBox) HalfExtents() math.Vec3 {
	return b.half
}

// Size returns the full dimensions.
func (b *InnerBox) Size() math.Vec3 {
	return b.half.Scale(2)
}

// Bounds returns the box's world-space AABB.
func (b *InnerBox) Bounds() picking.AABB {
	return picking.AABBFromCenter(b.Position, b.half)
}

// Collection is the insertion-ordered set of placed boxes.
type Collection struct {
	boxes []*InnerBox
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Add appends b unless it is already present.
func (c *Collection) Add(b *InnerBox) bool {
	if b == nil || c.Contains(b) {
		return false
	}
	c.boxes = append(c.boxes, b)
	return true
}

// Contains reports whether b (by identity) is in the collection.
func (c *Collection) Contains(b *InnerBox) bool {
	for _, item := range c.boxes {
		if item == b {
			return true
		}
	}
	return false
}

// Find returns the box with the given ID.
func (c *Collection) Find(id string) (*InnerBox, bool) {
	for _, item := range c.boxes {
		if item.ID == id {
			return item, true
		}
	}
	return nil, false
}

// Len returns the number of boxes.
func (c *Collection) Len() int {
	return len(c.boxes)
}

// All returns the boxes in insertion order. The slice must not be modified.
func (c *Collection) All() []*InnerBox {
	return c.boxes
}
