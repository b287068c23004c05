package voxel

import (
	gomath "math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/voxelsmith/pkg/mesh"
)

// weldTolerance merges positions closer than this when matching edges.
const weldTolerance = 1e-6

// Closedness summarizes how the soup's edges are shared.
type Closedness struct {
	Edges            int
	OpenEdges        int
	NonManifoldEdges int
	Degenerate       int
}

// Closed reports whether every edge is shared by exactly two triangles.
func (c Closedness) Closed() bool {
	return c.OpenEdges == 0 && c.NonManifoldEdges == 0
}

type weldKey [3]int64

type edgeKey struct {
	a, b weldKey
}

func weld(p r3.Vec) weldKey {
	return weldKey{
		quantize(gomath.Round(p.X / weldTolerance)),
		quantize(gomath.Round(p.Y / weldTolerance)),
		quantize(gomath.Round(p.Z / weldTolerance)),
	}
}

// quantize converts an integral float to int64, saturating outside its range.
// NaN maps to 0.
func quantize(f float64) int64 {
	switch {
	case gomath.IsNaN(f):
		return 0
	case f >= gomath.MaxInt64:
		return gomath.MaxInt64
	case f <= gomath.MinInt64:
		return gomath.MinInt64
	}
	return int64(f)
}

func less(a, b weldKey) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// CheckClosed counts boundary and non-manifold edges after welding coincident
// positions. It reports, it does not repair.
func CheckClosed(soup *mesh.Soup) Closedness {
	var c Closedness
	edges := make(map[edgeKey]int)

	for i := range soup.Triangles {
		tri := &soup.Triangles[i]
		k := [3]weldKey{weld(tri.V[0]), weld(tri.V[1]), weld(tri.V[2])}
		if k[0] == k[1] || k[1] == k[2] || k[0] == k[2] {
			c.Degenerate++
			continue
		}
		for j := 0; j < 3; j++ {
			a, b := k[j], k[(j+1)%3]
			if less(b, a) {
				a, b = b, a
			}
			edges[edgeKey{a, b}]++
		}
	}

	c.Edges = len(edges)
	for _, n := range edges {
		switch {
		case n == 1:
			c.OpenEdges++
		case n > 2:
			c.NonManifoldEdges++
		}
	}
	return c
}
