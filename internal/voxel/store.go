package voxel

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Grid is the voxel store: one optional color per cell, flat-indexed.
// A pass owns its Grid exclusively until it finishes.
type Grid struct {
	spec  GridSpec
	color []Color
	set   []bool
	count int
}

// NewGrid allocates an empty grid for spec.
func NewGrid(spec GridSpec) *Grid {
	n := spec.Total()
	return &Grid{
		spec:  spec,
		color: make([]Color, n),
		set:   make([]bool, n),
	}
}

// NewGridDims allocates an empty grid with unit step at the origin.
func NewGridDims(nx, ny, nz int) *Grid {
	return NewGrid(GridSpec{Step: 1, Dims: [3]int{nx, ny, nz}})
}

// Spec returns the grid layout.
func (g *Grid) Spec() GridSpec { return g.spec }

// Dims returns [nx, ny, nz].
func (g *Grid) Dims() [3]int { return g.spec.Dims }

// Set stores c at (x, y, z). It panics when out of range.
func (g *Grid) Set(x, y, z int, c Color) {
	g.setIndex(g.mustIndex(x, y, z), c)
}

func (g *Grid) setIndex(idx int, c Color) {
	if !g.set[idx] {
		g.count++
	}
	g.set[idx] = true
	g.color[idx] = c.Clamp()
}

// At returns the color at (x, y, z) and whether the cell is occupied.
// Out-of-range coordinates report unoccupied.
func (g *Grid) At(x, y, z int) (Color, bool) {
	if !g.inRange(x, y, z) {
		return Color{}, false
	}
	idx := g.spec.Index(x, y, z)
	return g.color[idx], g.set[idx]
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int { return g.count }

// Each visits occupied cells in index order.
func (g *Grid) Each(fn func(x, y, z int, c Color)) {
	for idx, ok := range g.set {
		if !ok {
			continue
		}
		x, y, z := g.spec.Coords(idx)
		fn(x, y, z, g.color[idx])
	}
}

// Snapshot returns a read-only view sharing the grid's storage.
// The grid must not be mutated afterwards.
func (g *Grid) Snapshot() Snapshot {
	return Snapshot{g: g}
}

func (g *Grid) inRange(x, y, z int) bool {
	d := g.spec.Dims
	return x >= 0 && y >= 0 && z >= 0 && x < d[0] && y < d[1] && z < d[2]
}

func (g *Grid) mustIndex(x, y, z int) int {
	if !g.inRange(x, y, z) {
		panic(fmt.Sprintf("voxel: cell (%d,%d,%d) outside %v", x, y, z, g.spec.Dims))
	}
	return g.spec.Index(x, y, z)
}

// Snapshot is an immutable view of a finished grid.
type Snapshot struct {
	g *Grid
}

// Spec returns the grid layout.
func (s Snapshot) Spec() GridSpec { return s.g.spec }

// Dims returns [nx, ny, nz].
func (s Snapshot) Dims() [3]int { return s.g.spec.Dims }

// At returns the color at (x, y, z) and whether the cell is occupied.
func (s Snapshot) At(x, y, z int) (Color, bool) { return s.g.At(x, y, z) }

// Count returns the number of occupied cells.
func (s Snapshot) Count() int { return s.g.count }

// Each visits occupied cells in index order.
func (s Snapshot) Each(fn func(x, y, z int, c Color)) { s.g.Each(fn) }

// WorldPosition returns the sample point of (x, y, z).
func (s Snapshot) WorldPosition(x, y, z int) r3.Vec { return s.g.spec.Cell(x, y, z) }

// RGB255 exports the grid as [x][y][z] with nil for empty cells.
func (s Snapshot) RGB255() [][][]*[3]uint8 {
	d := s.g.spec.Dims
	out := make([][][]*[3]uint8, d[0])
	for x := range out {
		out[x] = make([][]*[3]uint8, d[1])
		for y := range out[x] {
			out[x][y] = make([]*[3]uint8, d[2])
		}
	}
	s.Each(func(x, y, z int, c Color) {
		r, g, b := c.RGB255()
		out[x][y][z] = &[3]uint8{r, g, b}
	})
	return out
}
