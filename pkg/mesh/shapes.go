package mesh

import "gonum.org/v1/gonum/spatial/r3"

// boxIndices lists 12 outward-facing triangles over the corner order used by BoxPrimitive.
var boxIndices = []uint32{
	0, 2, 1, 0, 3, 2, // -Z
	4, 5, 6, 4, 6, 7, // +Z
	0, 1, 5, 0, 5, 4, // -Y
	3, 7, 6, 3, 6, 2, // +Y
	0, 4, 7, 0, 7, 3, // -X
	1, 2, 6, 1, 6, 5, // +X
}

// BoxPrimitive returns a closed axis-aligned box spanning min..max.
func BoxPrimitive(min, max r3.Vec, mat ColorSource) Primitive {
	return Primitive{
		Positions: []r3.Vec{
			{X: min.X, Y: min.Y, Z: min.Z},
			{X: max.X, Y: min.Y, Z: min.Z},
			{X: max.X, Y: max.Y, Z: min.Z},
			{X: min.X, Y: max.Y, Z: min.Z},
			{X: min.X, Y: min.Y, Z: max.Z},
			{X: max.X, Y: min.Y, Z: max.Z},
			{X: max.X, Y: max.Y, Z: max.Z},
			{X: min.X, Y: max.Y, Z: max.Z},
		},
		Indices:  append([]uint32(nil), boxIndices...),
		Material: mat,
	}
}

// BoxDocument wraps a single box in a one-node document.
func BoxDocument(min, max r3.Vec, mat ColorSource) *Document {
	return &Document{Nodes: []Node{{
		Name:       "box",
		Primitives: []Primitive{BoxPrimitive(min, max, mat)},
	}}}
}
