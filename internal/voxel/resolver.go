package voxel

import "github.com/Faultbox/voxelsmith/pkg/mesh"

// NearestVertexThreshold is the largest distance at which a vertex color is
// taken as the surface color in nearest-vertex mode, in world units.
const NearestVertexThreshold = 0.01

// Resolver picks a surface color: vertex color, then material color, then white.
// It is pure and safe for concurrent use.
type Resolver struct {
	Threshold float64
}

// NewResolver returns a resolver using NearestVertexThreshold.
func NewResolver() Resolver {
	return Resolver{Threshold: NearestVertexThreshold}
}

// Barycentric interpolates the triangle's vertex colors with weights summing to 1,
// falling back to the material color.
func (r Resolver) Barycentric(tri *mesh.Triangle, w [3]float64) Color {
	if tri.HasColor {
		var c Color
		for i := 0; i < 3; i++ {
			c.R += tri.Colors[i][0] * w[i]
			c.G += tri.Colors[i][1] * w[i]
			c.B += tri.Colors[i][2] * w[i]
		}
		return c.Clamp()
	}
	return Material(tri.Material)
}

// NearestVertex uses v's own color when it is closer than the threshold,
// falling back to its material color.
func (r Resolver) NearestVertex(v *mesh.Vertex, dist float64) Color {
	if v.HasColor && dist < r.Threshold {
		return FromArray(v.Color).Clamp()
	}
	return Material(v.Material)
}

// Material returns the material color with alpha dropped, or white.
func Material(mc mesh.MaterialColor) Color {
	if mc.Valid {
		return FromArray(mc.RGB).Clamp()
	}
	return White
}
