// Package scene holds the boxes the viewer draws and answers pick queries
// against them.
package scene

import (
	"github.com/Faultbox/boxstage/internal/engine/picking"
	"github.com/Faultbox/boxstage/internal/placement"
)

// Scene is the outer container plus the inner boxes in insertion order.
// Renderers only read it.
type Scene struct {
	outer *placement.OuterBox
	boxes *placement.Collection
}

// New creates an empty scene around outer.
func New(outer *placement.OuterBox) *Scene {
	return &Scene{
		outer: outer,
		boxes: placement.NewCollection(),
	}
}

// Outer returns the container.
func (s *Scene) Outer() *placement.OuterBox {
	return s.outer
}

// Collection returns the backing collection, shared with the spawner and
// the drag session.
func (s *Scene) Collection() *placement.Collection {
	return s.boxes
}

// Add appends a box. It reports false if the box is already present.
func (s *Scene) Add(box *placement.InnerBox) bool {
	return s.boxes.Add(box)
}

// Boxes returns the inner boxes in insertion order.
func (s *Scene) Boxes() []*placement.InnerBox {
	return s.boxes.All()
}

// Pick returns the nearest box hit by ray. On equal distance the box added
// first wins.
func (s *Scene) Pick(ray picking.Ray) (*placement.InnerBox, bool) {
	var (
		nearest *placement.InnerBox
		bestT   float32
	)
	for _, box := range s.boxes.All() {
		t, hit := ray.IntersectAABB(box.Bounds())
		if !hit {
			continue
		}
		if nearest == nil || t < bestT {
			nearest, bestT = box, t
		}
	}
	return nearest, nearest != nil
}
