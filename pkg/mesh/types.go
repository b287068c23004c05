// Package mesh holds the in-memory mesh document consumed by the voxelizer
// and flattens it into a world-space triangle soup.
package mesh

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

// Document is a scene of nodes, each carrying primitives in node-local space.
type Document struct {
	Nodes []Node
}

// Node places its primitives in the world.
// A zero Transform is treated as the identity.
type Node struct {
	Name       string
	Transform  mgl64.Mat4
	Primitives []Primitive
}

// Primitive is a triangle list.
type Primitive struct {
	Positions []r3.Vec
	// Colors is optional. When present it has one RGB entry per position, unit range.
	Colors [][3]float64
	// Indices is optional. Nil means Positions is read three at a time.
	Indices  []uint32
	Material ColorSource
}

// ColorSource is anything a primitive can use as its material.
type ColorSource interface {
	// MaterialColor returns the material's flat RGB color, if it defines one.
	MaterialColor() (rgb [3]float64, ok bool)
}

// Material is a minimal PBR-style material.
type Material struct {
	Name string
	// BaseColor is the RGBA base color factor; nil when the material has none.
	BaseColor *[4]float64
	// Emissive is added on top of the base color when set.
	Emissive    *[3]float64
	DoubleSided bool
}

// MaterialColor returns the base color plus emissive, alpha dropped.
func (m *Material) MaterialColor() ([3]float64, bool) {
	if m == nil || m.BaseColor == nil {
		return [3]float64{}, false
	}
	rgb := [3]float64{m.BaseColor[0], m.BaseColor[1], m.BaseColor[2]}
	if m.Emissive != nil {
		for i := range rgb {
			rgb[i] += m.Emissive[i]
		}
	}
	return rgb, true
}

// MaterialColor is a material color resolved once at ingestion.
type MaterialColor struct {
	RGB   [3]float64
	Valid bool
}

// Resolve reads src once. A nil source yields an invalid color.
func Resolve(src ColorSource) MaterialColor {
	if src == nil {
		return MaterialColor{}
	}
	rgb, ok := src.MaterialColor()
	return MaterialColor{RGB: rgb, Valid: ok}
}

// VertexCount returns the number of positions across all primitives.
func (d *Document) VertexCount() int {
	n := 0
	for i := range d.Nodes {
		for j := range d.Nodes[i].Primitives {
			n += len(d.Nodes[i].Primitives[j].Positions)
		}
	}
	return n
}

// NewMaterial returns an opaque material with the given RGB base color.
func NewMaterial(name string, r, g, b float64) *Material {
	return &Material{Name: name, BaseColor: &[4]float64{r, g, b, 1}}
}
