package rebuild

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/voxelsmith/internal/voxel"
)

// Cube geometry: 6 faces of 4 vertices, two triangles each.
const (
	CubeVertexCount = 24
	CubeIndexCount  = 36
)

type cubeFace struct {
	normal  r3.Vec
	corners [4]r3.Vec
}

// cubeFaces lists unit cube corners at +-1, counter-clockwise seen from outside.
var cubeFaces = [6]cubeFace{
	{r3.Vec{X: 1}, [4]r3.Vec{{X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: 1}}},
	{r3.Vec{X: -1}, [4]r3.Vec{{X: -1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: -1}}},
	{r3.Vec{Y: 1}, [4]r3.Vec{{X: -1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: -1}}},
	{r3.Vec{Y: -1}, [4]r3.Vec{{X: -1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: 1}}},
	{r3.Vec{Z: 1}, [4]r3.Vec{{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1}}},
	{r3.Vec{Z: -1}, [4]r3.Vec{{X: 1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1}}},
}

var quadIndices = [6]uint32{0, 1, 2, 0, 2, 3}

// appendCube emits a box of the given half extent around center.
func appendCube(m *Mesh, center r3.Vec, half float64, color voxel.Color) {
	for _, f := range cubeFaces {
		base := uint32(len(m.Vertices))
		for _, c := range f.corners {
			m.Vertices = append(m.Vertices, Vertex{
				Position: r3.Add(center, r3.Scale(half, c)),
				Normal:   f.normal,
				Color:    color,
			})
		}
		for _, i := range quadIndices {
			m.Indices = append(m.Indices, base+i)
		}
	}
	m.Cubes++
}
