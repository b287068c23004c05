package rebuild

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/voxelsmith/pkg/mesh"
)

// ToDocument wraps the mesh as a single-node document with vertex colors.
// Normals are dropped; the document format has none.
func (m *Mesh) ToDocument(name string) *mesh.Document {
	prim := mesh.Primitive{
		Positions: make([]r3.Vec, len(m.Vertices)),
		Colors:    make([][3]float64, len(m.Vertices)),
		Indices:   append([]uint32(nil), m.Indices...),
	}
	for i, v := range m.Vertices {
		prim.Positions[i] = v.Position
		prim.Colors[i] = [3]float64{v.Color.R, v.Color.G, v.Color.B}
	}
	return &mesh.Document{Nodes: []mesh.Node{{Name: name, Primitives: []mesh.Primitive{prim}}}}
}
