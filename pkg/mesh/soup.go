package mesh

import (
	"errors"
	"fmt"
	gomath "math"

	"gonum.org/v1/gonum/spatial/r3"

	vmath "github.com/Faultbox/voxelsmith/pkg/math"
)

var (
	ErrColorCount         = errors.New("color count does not match position count")
	ErrIndexRange         = errors.New("vertex index out of range")
	ErrIncompleteTriangle = errors.New("triangle list length is not a multiple of 3")
	ErrPositionRange      = errors.New("vertex position is not finite or out of range")
)

// MaxCoordinate bounds the magnitude of every world-space coordinate.
const MaxCoordinate = 1e9

// Vertex is a world-space vertex with its optional color and material.
type Vertex struct {
	Position r3.Vec
	Color    [3]float64
	HasColor bool
	Material MaterialColor
}

// Triangle is a world-space triangle. Owned by a Soup, never persisted.
type Triangle struct {
	V [3]r3.Vec
	// Vertices holds indices into Soup.Vertices.
	Vertices [3]int
	// HasColor is true when all three vertices carry a color.
	HasColor    bool
	Colors      [3][3]float64
	Material    MaterialColor
	DoubleSided bool
}

// Soup is a flattened document: every vertex once, every triangle once.
type Soup struct {
	Vertices  []Vertex
	Triangles []Triangle
}

// Flatten applies node transforms and resolves material colors.
// Material lookup happens once per primitive, never per triangle.
func (d *Document) Flatten() (*Soup, error) {
	soup := &Soup{}

	for ni := range d.Nodes {
		node := &d.Nodes[ni]
		m := vmath.OrIdentity(node.Transform)

		for pi := range node.Primitives {
			prim := &node.Primitives[pi]
			if err := prim.validate(); err != nil {
				return nil, fmt.Errorf("node %q primitive %d: %w", node.Name, pi, err)
			}

			mat := Resolve(prim.Material)
			doubleSided := false
			if pm, ok := prim.Material.(*Material); ok && pm != nil {
				doubleSided = pm.DoubleSided
			}

			base := len(soup.Vertices)
			hasColor := len(prim.Colors) > 0
			for i, p := range prim.Positions {
				v := Vertex{
					Position: vmath.TransformPoint(m, p),
					HasColor: hasColor,
					Material: mat,
				}
				if !inRange(v.Position) {
					return nil, fmt.Errorf("node %q primitive %d vertex %d: %w: %v",
						node.Name, pi, i, ErrPositionRange, v.Position)
				}
				if hasColor {
					v.Color = prim.Colors[i]
				}
				soup.Vertices = append(soup.Vertices, v)
			}

			emit := func(a, b, c int) {
				tri := Triangle{
					Vertices:    [3]int{base + a, base + b, base + c},
					HasColor:    hasColor,
					Material:    mat,
					DoubleSided: doubleSided,
				}
				for k, vi := range tri.Vertices {
					tri.V[k] = soup.Vertices[vi].Position
					tri.Colors[k] = soup.Vertices[vi].Color
				}
				soup.Triangles = append(soup.Triangles, tri)
			}

			if prim.Indices == nil {
				for i := 0; i+2 < len(prim.Positions); i += 3 {
					emit(i, i+1, i+2)
				}
				continue
			}
			for i := 0; i+2 < len(prim.Indices); i += 3 {
				emit(int(prim.Indices[i]), int(prim.Indices[i+1]), int(prim.Indices[i+2]))
			}
		}
	}

	return soup, nil
}

func inRange(p r3.Vec) bool {
	for _, c := range [3]float64{p.X, p.Y, p.Z} {
		if !(gomath.Abs(c) <= MaxCoordinate) {
			return false
		}
	}
	return true
}

func (p *Primitive) validate() error {
	if len(p.Colors) > 0 && len(p.Colors) != len(p.Positions) {
		return fmt.Errorf("%w: %d colors, %d positions", ErrColorCount, len(p.Colors), len(p.Positions))
	}
	if p.Indices == nil {
		if len(p.Positions)%3 != 0 {
			return fmt.Errorf("%w: %d positions", ErrIncompleteTriangle, len(p.Positions))
		}
		return nil
	}
	if len(p.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrIncompleteTriangle, len(p.Indices))
	}
	for _, idx := range p.Indices {
		if int(idx) >= len(p.Positions) {
			return fmt.Errorf("%w: %d >= %d", ErrIndexRange, idx, len(p.Positions))
		}
	}
	return nil
}

// Positions returns the three corners of every triangle, for BVH building.
func (s *Soup) Positions() [][3]r3.Vec {
	out := make([][3]r3.Vec, len(s.Triangles))
	for i := range s.Triangles {
		out[i] = s.Triangles[i].V
	}
	return out
}
