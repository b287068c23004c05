// Package rebuild turns a finished voxel grid back into renderable geometry.
package rebuild

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/voxelsmith/internal/voxel"
)

var (
	ErrInvalidVoxelSize = errors.New("voxel size must be positive and finite")
	ErrInvalidInset     = errors.New("inset must be in [0, voxelSize/2)")
)

// Vertex is a flat-shaded cube vertex.
type Vertex struct {
	Position r3.Vec
	Normal   r3.Vec
	Color    voxel.Color
}

// Mesh is a merged triangle mesh ready for a vertex-color pipeline.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	// Cubes is the number of voxels the mesh was built from.
	Cubes int
	// Bounds is measured after recentering.
	Bounds r3.Box
	// Offset is the translation applied to recenter, the negated original center.
	Offset r3.Vec
}

// InstanceTransform places one copy of the shared cube.
type InstanceTransform struct {
	Cell      [3]int
	Transform mgl64.Mat4
	Color     voxel.Color
}

// Instanced is a shared unit cube plus one transform and color per voxel.
type Instanced struct {
	// Cube is a white unit cube centered on the origin.
	Cube      *Mesh
	Instances []InstanceTransform
	Bounds    r3.Box
	Offset    r3.Vec
}

// Voxel is an occupied cell placed in output space, before recentering.
type Voxel struct {
	Cell     [3]int
	Position r3.Vec
	Color    voxel.Color
}

// Mode selects the output form.
type Mode int

const (
	ModeMerged Mode = iota
	ModeInstanced
)

func (m Mode) String() string {
	if m == ModeInstanced {
		return "instanced"
	}
	return "merged"
}

// ParseMode maps "merged" or "instanced" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "merged":
		return ModeMerged, nil
	case "instanced":
		return ModeInstanced, nil
	}
	return 0, fmt.Errorf("unknown rebuild mode %q", s)
}

// Options controls cube size and style.
type Options struct {
	VoxelSize float64
	// Inset shrinks every cube face by this much, leaving visible seams.
	Inset float64
	Mode  Mode
}

// DefaultOptions matches the viewer's default voxel look.
func DefaultOptions() Options {
	return Options{
		VoxelSize: 0.24,
		Inset:     0.03,
		Mode:      ModeMerged,
	}
}

// Output holds whichever form Options.Mode selected.
type Output struct {
	Mesh      *Mesh
	Instanced *Instanced
}

// Offset returns the recentering translation of the built form.
func (o *Output) Offset() r3.Vec {
	if o.Instanced != nil {
		return o.Instanced.Offset
	}
	return o.Mesh.Offset
}

// Cubes returns the number of cubes emitted.
func (o *Output) Cubes() int {
	if o.Instanced != nil {
		return len(o.Instanced.Instances)
	}
	return o.Mesh.Cubes
}
