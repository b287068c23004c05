package rebuild

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/voxelsmith/internal/voxel"
	vmath "github.com/Faultbox/voxelsmith/pkg/math"
)

func (o Options) validate() error {
	if !(o.VoxelSize > 0) || gomath.IsInf(o.VoxelSize, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidVoxelSize, o.VoxelSize)
	}
	if !(o.Inset >= 0) || o.Inset*2 >= o.VoxelSize {
		return fmt.Errorf("%w: inset %v, voxel size %v", ErrInvalidInset, o.Inset, o.VoxelSize)
	}
	return nil
}

func (o Options) half() float64 {
	return o.VoxelSize/2 - o.Inset
}

// Voxels lists occupied cells in index order, placed at index*voxelSize.
func Voxels(grid voxel.Snapshot, voxelSize float64) []Voxel {
	out := make([]Voxel, 0, grid.Count())
	grid.Each(func(x, y, z int, c voxel.Color) {
		out = append(out, Voxel{
			Cell:     [3]int{x, y, z},
			Position: r3.Vec{X: float64(x) * voxelSize, Y: float64(y) * voxelSize, Z: float64(z) * voxelSize},
			Color:    c,
		})
	})
	return out
}

// Build emits the form selected by opts.Mode.
func Build(grid voxel.Snapshot, opts Options) (*Output, error) {
	switch opts.Mode {
	case ModeInstanced:
		inst, err := Instance(grid, opts)
		if err != nil {
			return nil, err
		}
		return &Output{Instanced: inst}, nil
	case ModeMerged:
		m, err := Merge(grid, opts)
		if err != nil {
			return nil, err
		}
		return &Output{Mesh: m}, nil
	}
	return nil, fmt.Errorf("unknown rebuild mode %d", int(opts.Mode))
}

// Merge emits one flat-shaded cube per occupied cell into a single mesh and
// recenters it on the origin. An empty grid yields an empty mesh.
func Merge(grid voxel.Snapshot, opts Options) (*Mesh, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	voxels := Voxels(grid, opts.VoxelSize)
	m := &Mesh{
		Vertices: make([]Vertex, 0, len(voxels)*CubeVertexCount),
		Indices:  make([]uint32, 0, len(voxels)*CubeIndexCount),
	}
	half := opts.half()
	for _, v := range voxels {
		appendCube(m, v.Position, half, v.Color)
	}

	m.Recenter()
	return m, nil
}

// Recenter translates every vertex so the bounds center sits at the origin.
// It returns the translation applied, also stored in Offset.
func (m *Mesh) Recenter() r3.Vec {
	bounds := vmath.EmptyBox()
	for i := range m.Vertices {
		bounds = vmath.Extend(bounds, m.Vertices[i].Position)
	}
	if vmath.IsEmpty(bounds) {
		m.Bounds = r3.Box{}
		m.Offset = r3.Vec{}
		return m.Offset
	}

	offset := r3.Scale(-1, vmath.Center(bounds))

	for i := range m.Vertices {
		m.Vertices[i].Position = r3.Add(m.Vertices[i].Position, offset)
	}

	m.Bounds = vmath.Translate(bounds, offset)
	m.Offset = r3.Add(m.Offset, offset)
	return offset
}

// UnitCube returns a white cube of edge 1 centered on the origin.
func UnitCube() *Mesh {
	m := &Mesh{}
	appendCube(m, r3.Vec{}, 0.5, voxel.White)
	m.Bounds = r3.Box{Min: vmath.Splat(-0.5), Max: vmath.Splat(0.5)}
	return m
}

// Instance emits one transform and color per occupied cell over a shared unit
// cube, recentered the same way as Merge.
func Instance(grid voxel.Snapshot, opts Options) (*Instanced, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	voxels := Voxels(grid, opts.VoxelSize)
	out := &Instanced{
		Cube:      UnitCube(),
		Instances: make([]InstanceTransform, 0, len(voxels)),
	}
	if len(voxels) == 0 {
		return out, nil
	}

	half := opts.half()
	bounds := vmath.EmptyBox()
	for _, v := range voxels {
		cube := r3.Box{Min: r3.Sub(v.Position, vmath.Splat(half)), Max: r3.Add(v.Position, vmath.Splat(half))}
		bounds = vmath.Union(bounds, cube)
	}
	out.Offset = r3.Scale(-1, vmath.Center(bounds))
	out.Bounds = vmath.Translate(bounds, out.Offset)

	scale := mgl64.Scale3D(2*half, 2*half, 2*half)
	for _, v := range voxels {
		out.Instances = append(out.Instances, InstanceTransform{
			Cell:      v.Cell,
			Transform: vmath.TranslationOf(r3.Add(v.Position, out.Offset)).Mul4(scale),
			Color:     v.Color,
		})
	}
	return out, nil
}

// Expand bakes every instance into a merged mesh with the same appearance.
func (in *Instanced) Expand() *Mesh {
	m := &Mesh{
		Vertices: make([]Vertex, 0, len(in.Instances)*len(in.Cube.Vertices)),
		Indices:  make([]uint32, 0, len(in.Instances)*len(in.Cube.Indices)),
		Cubes:    len(in.Instances),
		Bounds:   in.Bounds,
		Offset:   in.Offset,
	}
	for _, inst := range in.Instances {
		base := uint32(len(m.Vertices))
		for _, v := range in.Cube.Vertices {
			m.Vertices = append(m.Vertices, Vertex{
				Position: vmath.TransformPoint(inst.Transform, v.Position),
				Normal:   v.Normal,
				Color:    inst.Color,
			})
		}
		for _, i := range in.Cube.Indices {
			m.Indices = append(m.Indices, base+i)
		}
	}
	return m
}
