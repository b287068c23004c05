// Package debug exposes intermediate voxelization quantities for inspection.
package debug

import (
	"gonum.org/v1/gonum/spatial/r3"

	vmath "github.com/Faultbox/voxelsmith/pkg/math"
)

// WireframeVertexCount is the number of vertices for a box wireframe (12 edges x 2).
const WireframeVertexCount = 24

// BoxWireframe returns line-list vertices for the 12 edges of b.
func BoxWireframe(b r3.Box) []r3.Vec {
	lo, hi := b.Min, b.Max
	c := func(x, y, z float64) r3.Vec { return r3.Vec{X: x, Y: y, Z: z} }
	return []r3.Vec{
		// Bottom face
		c(lo.X, lo.Y, lo.Z), c(hi.X, lo.Y, lo.Z),
		c(hi.X, lo.Y, lo.Z), c(hi.X, lo.Y, hi.Z),
		c(hi.X, lo.Y, hi.Z), c(lo.X, lo.Y, hi.Z),
		c(lo.X, lo.Y, hi.Z), c(lo.X, lo.Y, lo.Z),
		// Top face
		c(lo.X, hi.Y, lo.Z), c(hi.X, hi.Y, lo.Z),
		c(hi.X, hi.Y, lo.Z), c(hi.X, hi.Y, hi.Z),
		c(hi.X, hi.Y, hi.Z), c(lo.X, hi.Y, hi.Z),
		c(lo.X, hi.Y, hi.Z), c(lo.X, hi.Y, lo.Z),
		// Vertical edges
		c(lo.X, lo.Y, lo.Z), c(lo.X, hi.Y, lo.Z),
		c(hi.X, lo.Y, lo.Z), c(hi.X, hi.Y, lo.Z),
		c(hi.X, lo.Y, hi.Z), c(hi.X, hi.Y, hi.Z),
		c(lo.X, lo.Y, hi.Z), c(lo.X, hi.Y, hi.Z),
	}
}

// PaddedWireframe grows b by padding on every side.
func PaddedWireframe(b r3.Box, padding float64) []r3.Vec {
	return BoxWireframe(vmath.Pad(b, padding))
}
