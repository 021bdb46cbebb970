// Package debug builds line geometry for overlays and captures screenshots.
package debug

import (
	"github.com/Faultbox/boxstage/internal/engine/picking"
	"github.com/Faultbox/boxstage/pkg/math"
)

// BBoxWireframeVertexCount is 12 edges with two endpoints each.
const BBoxWireframeVertexCount = 24

// DefaultBBoxPadding keeps the selection outline off the box faces.
const DefaultBBoxPadding = 0.25

// Box corners are indexed by bits: 1 selects max X, 2 max Y, 4 max Z.
var boxEdges = [12][2]int{
	{0, 1}, {1, 5}, {5, 4}, {4, 0}, // bottom
	{2, 3}, {3, 7}, {7, 6}, {6, 2}, // top
	{0, 2}, {1, 3}, {5, 7}, {4, 6}, // vertical
}

func corner(box picking.AABB, i int) math.Vec3 {
	c := box.Min
	if i&1 != 0 {
		c.X = box.Max.X
	}
	if i&2 != 0 {
		c.Y = box.Max.Y
	}
	if i&4 != 0 {
		c.Z = box.Max.Z
	}
	return c
}

// WireframeFromAABB returns GL_LINES vertices (x, y, z each) outlining box
// grown by padding on every side.
func WireframeFromAABB(box picking.AABB, padding float32) []float32 {
	pad := math.Vec3{X: padding, Y: padding, Z: padding}
	box = picking.AABB{Min: box.Min.Sub(pad), Max: box.Max.Add(pad)}

	verts := make([]float32, 0, BBoxWireframeVertexCount*3)
	for _, e := range boxEdges {
		a, b := corner(box, e[0]), corner(box, e[1])
		verts = append(verts, a.X, a.Y, a.Z, b.X, b.Y, b.Z)
	}
	return verts
}
