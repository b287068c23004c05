package voxel

import (
	"fmt"
	gomath "math"

	"gonum.org/v1/gonum/spatial/r3"

	vmath "github.com/Faultbox/voxelsmith/pkg/math"
)

// MaxCells bounds the total cell count of a planned grid (512^3).
const MaxCells = 1 << 27

// GridSpec describes a regular lattice anchored at the bounds minimum.
type GridSpec struct {
	Origin r3.Vec
	Step   float64
	Dims   [3]int
}

// PlanGrid sizes a grid over box with the given step.
// Each axis gets ceil(size/step)+1 cells, so both box faces are sampled.
func PlanGrid(box r3.Box, step float64) (GridSpec, error) {
	if !(step > 0) || gomath.IsInf(step, 0) {
		return GridSpec{}, fmt.Errorf("%w: step %v", ErrInvalidStep, step)
	}
	size := vmath.Size(box)
	if !vmath.IsFinite(size) {
		return GridSpec{}, fmt.Errorf("%w: bounds size %v", ErrInvalidStep, size)
	}

	spec := GridSpec{Origin: box.Min, Step: step}
	total := 1.0
	for a := 0; a < 3; a++ {
		n := gomath.Ceil(vmath.Axis(size, a)/step) + 1
		if n < 1 {
			n = 1
		}
		if n > gomath.MaxInt32 {
			return GridSpec{}, fmt.Errorf("%w: step %v yields %v cells on axis %d", ErrInvalidStep, step, n, a)
		}
		spec.Dims[a] = int(n)
		total *= n
	}
	if total > MaxCells {
		return GridSpec{}, fmt.Errorf("%w: step %v yields %v cells, limit %d", ErrInvalidStep, step, total, MaxCells)
	}
	return spec, nil
}

// StepForResolution derives a step so the largest axis spans res cells.
// A zero-extent box falls back to a step of 1.
func StepForResolution(box r3.Box, res int) (float64, error) {
	if res <= 0 {
		return 0, fmt.Errorf("%w: resolution %d", ErrInvalidStep, res)
	}
	longest := vmath.MaxComponent(vmath.Size(box))
	if gomath.IsNaN(longest) || gomath.IsInf(longest, 0) {
		return 0, fmt.Errorf("%w: bounds size %v", ErrInvalidStep, longest)
	}
	if longest <= 0 {
		return 1, nil
	}
	return longest / float64(res), nil
}

// Cell maps a grid index to its world-space sample point.
func (g GridSpec) Cell(i, j, k int) r3.Vec {
	return r3.Vec{
		X: g.Origin.X + float64(i)*g.Step,
		Y: g.Origin.Y + float64(j)*g.Step,
		Z: g.Origin.Z + float64(k)*g.Step,
	}
}

// Index flattens (x, y, z) to x + y*nx + z*nx*ny.
func (g GridSpec) Index(x, y, z int) int {
	return x + y*g.Dims[0] + z*g.Dims[0]*g.Dims[1]
}

// Coords inverts Index.
func (g GridSpec) Coords(idx int) (x, y, z int) {
	layer := g.Dims[0] * g.Dims[1]
	z = idx / layer
	rem := idx % layer
	return rem % g.Dims[0], rem / g.Dims[0], z
}

// Total is nx*ny*nz.
func (g GridSpec) Total() int {
	return g.Dims[0] * g.Dims[1] * g.Dims[2]
}

// LayerSize is the cell count of one Z layer.
func (g GridSpec) LayerSize() int {
	return g.Dims[0] * g.Dims[1]
}

func (g GridSpec) String() string {
	return fmt.Sprintf("%dx%dx%d step=%g", g.Dims[0], g.Dims[1], g.Dims[2], g.Step)
}
