package debug

import "gonum.org/v1/gonum/spatial/r3"

// LineVertex is a colored line-list vertex.
type LineVertex struct {
	Position r3.Vec
	Color    [3]float64
}

var gridColor = [3]float64{0.5, 0.5, 0.5}

// LayerGrid describes one Z layer of a voxel lattice.
type LayerGrid struct {
	Origin r3.Vec
	Step   float64
	Dims   [3]int
}

// Extent is the box spanned by the sample points.
func (g LayerGrid) Extent() r3.Box {
	span := func(n int) float64 { return float64(max(n-1, 0)) * g.Step }
	return r3.Box{
		Min: g.Origin,
		Max: r3.Add(g.Origin, r3.Vec{X: span(g.Dims[0]), Y: span(g.Dims[1]), Z: span(g.Dims[2])}),
	}
}

// Lines returns the lattice lines of layer z, one line per sample column and row.
// Layers outside the grid produce nothing.
func (g LayerGrid) Lines(z int) []LineVertex {
	nx, ny := g.Dims[0], g.Dims[1]
	if z < 0 || z >= g.Dims[2] || nx < 1 || ny < 1 {
		return nil
	}

	depth := g.Origin.Z + float64(z)*g.Step
	x0, x1 := g.Origin.X, g.Origin.X+float64(nx-1)*g.Step
	y0, y1 := g.Origin.Y, g.Origin.Y+float64(ny-1)*g.Step

	vertices := make([]LineVertex, 0, 2*(nx+ny))
	for x := 0; x < nx; x++ {
		wx := g.Origin.X + float64(x)*g.Step
		vertices = append(vertices,
			LineVertex{r3.Vec{X: wx, Y: y0, Z: depth}, gridColor},
			LineVertex{r3.Vec{X: wx, Y: y1, Z: depth}, gridColor},
		)
	}
	for y := 0; y < ny; y++ {
		wy := g.Origin.Y + float64(y)*g.Step
		vertices = append(vertices,
			LineVertex{r3.Vec{X: x0, Y: wy, Z: depth}, gridColor},
			LineVertex{r3.Vec{X: x1, Y: wy, Z: depth}, gridColor},
		)
	}
	return vertices
}

// Occupancy returns two triangles per occupied cell of layer z, centered on the
// sample point and colored by occupied.
func (g LayerGrid) Occupancy(z int, occupied func(x, y int) ([3]float64, bool)) []LineVertex {
	if z < 0 || z >= g.Dims[2] {
		return nil
	}

	depth := g.Origin.Z + float64(z)*g.Step
	half := g.Step / 2

	var vertices []LineVertex
	for y := 0; y < g.Dims[1]; y++ {
		for x := 0; x < g.Dims[0]; x++ {
			color, ok := occupied(x, y)
			if !ok {
				continue
			}
			cx := g.Origin.X + float64(x)*g.Step
			cy := g.Origin.Y + float64(y)*g.Step
			p00 := r3.Vec{X: cx - half, Y: cy - half, Z: depth}
			p10 := r3.Vec{X: cx + half, Y: cy - half, Z: depth}
			p11 := r3.Vec{X: cx + half, Y: cy + half, Z: depth}
			p01 := r3.Vec{X: cx - half, Y: cy + half, Z: depth}
			vertices = append(vertices,
				LineVertex{p00, color}, LineVertex{p10, color}, LineVertex{p11, color},
				LineVertex{p00, color}, LineVertex{p11, color}, LineVertex{p01, color},
			)
		}
	}
	return vertices
}
