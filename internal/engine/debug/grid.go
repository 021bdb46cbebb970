package debug

import "github.com/Faultbox/boxstage/pkg/math"

// FloorGridVertices returns line vertices for a grid on the floor of a box
// centered at the origin with the given full size. Lines run every step
// units from the floor center outward and stop at the walls. Format is
// [x, y, z] per vertex, two vertices per line.
func FloorGridVertices(size math.Vec3, step float32) []float32 {
	if step <= 0 || size.X <= 0 || size.Z <= 0 {
		return nil
	}

	hx, hz := size.X/2, size.Z/2
	y := -size.Y / 2

	var verts []float32
	// Lines parallel to Z, stepping along X
	for _, x := range gridOffsets(hx, step) {
		verts = append(verts, x, y, -hz, x, y, hz)
	}
	// Lines parallel to X, stepping along Z
	for _, z := range gridOffsets(hz, step) {
		verts = append(verts, -hx, y, z, hx, y, z)
	}
	return verts
}

// gridOffsets returns 0, ±step, ±2·step, ... up to and including ±half.
func gridOffsets(half, step float32) []float32 {
	offsets := []float32{0}
	for d := step; d <= half; d += step {
		offsets = append(offsets, d, -d)
	}
	return offsets
}
