package math

import (
	gomath "math"

	"gonum.org/v1/gonum/spatial/r3"
)

// EmptyBox returns an inverted box that the first Extend call collapses onto a point.
func EmptyBox() r3.Box {
	inf := gomath.Inf(1)
	return r3.Box{
		Min: r3.Vec{X: inf, Y: inf, Z: inf},
		Max: r3.Vec{X: -inf, Y: -inf, Z: -inf},
	}
}

// Extend grows b to include p.
func Extend(b r3.Box, p r3.Vec) r3.Box {
	return r3.Box{Min: Min(b.Min, p), Max: Max(b.Max, p)}
}

// Union returns the smallest box holding both a and b.
func Union(a, b r3.Box) r3.Box {
	return r3.Box{Min: Min(a.Min, b.Min), Max: Max(a.Max, b.Max)}
}

// IsEmpty reports whether b has min > max on any axis.
func IsEmpty(b r3.Box) bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Size returns the extent of b along each axis.
func Size(b r3.Box) r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// Center returns the midpoint of b.
func Center(b r3.Box) r3.Vec {
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

// Pad expands b by pad on every side.
func Pad(b r3.Box, pad float64) r3.Box {
	p := Splat(pad)
	return r3.Box{Min: r3.Sub(b.Min, p), Max: r3.Add(b.Max, p)}
}

// Translate moves b by d.
func Translate(b r3.Box, d r3.Vec) r3.Box {
	return r3.Box{Min: r3.Add(b.Min, d), Max: r3.Add(b.Max, d)}
}

// Contains reports whether p lies inside b, boundary included.
func Contains(b r3.Box, p r3.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
