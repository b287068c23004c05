// Package math provides vector, box and transform helpers for voxel work.
//
// Vectors and boxes are gonum r3 values; node transforms are mathgl matrices.
package math

import (
	gomath "math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Axis returns component i of v (0 = X, 1 = Y, 2 = Z).
func Axis(v r3.Vec, i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Min returns the componentwise minimum of a and b.
func Min(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: gomath.Min(a.X, b.X), Y: gomath.Min(a.Y, b.Y), Z: gomath.Min(a.Z, b.Z)}
}

// Max returns the componentwise maximum of a and b.
func Max(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: gomath.Max(a.X, b.X), Y: gomath.Max(a.Y, b.Y), Z: gomath.Max(a.Z, b.Z)}
}

// MaxComponent returns the largest of v's components.
func MaxComponent(v r3.Vec) float64 {
	return gomath.Max(v.X, gomath.Max(v.Y, v.Z))
}

// Splat returns a vector with every component set to f.
func Splat(f float64) r3.Vec {
	return r3.Vec{X: f, Y: f, Z: f}
}

// IsFinite reports whether no component of v is NaN or infinite.
func IsFinite(v r3.Vec) bool {
	for _, f := range [3]float64{v.X, v.Y, v.Z} {
		if gomath.IsNaN(f) || gomath.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// ApproxEqual reports whether a and b differ by at most eps on every axis.
func ApproxEqual(a, b r3.Vec, eps float64) bool {
	return gomath.Abs(a.X-b.X) <= eps &&
		gomath.Abs(a.Y-b.Y) <= eps &&
		gomath.Abs(a.Z-b.Z) <= eps
}
