// Package raycast provides ray queries against world-space triangles.
package raycast

import (
	"errors"
	gomath "math"

	"gonum.org/v1/gonum/spatial/r3"

	vmath "github.com/Faultbox/voxelsmith/pkg/math"
)

// ErrDegenerateRay is returned for zero-length or non-finite directions.
var ErrDegenerateRay = errors.New("degenerate ray direction")

const (
	// detEpsilon rejects rays parallel to a triangle and zero-area triangles.
	detEpsilon = 1e-12
	// baryEpsilon keeps hits exactly on shared edges.
	baryEpsilon = 1e-9
	// hitEpsilon lets a ray starting on the surface report that surface at t = 0.
	hitEpsilon = 1e-9
)

// Ray is a half-line with a unit-length direction.
type Ray struct {
	Origin    r3.Vec
	Direction r3.Vec
}

// Hit is a ray/triangle intersection.
type Hit struct {
	T        float64
	Triangle int
	// U and V are the barycentric weights of the triangle's second and third corner.
	U, V float64
}

// Weights returns the barycentric weights of all three corners.
func (h Hit) Weights() [3]float64 {
	return [3]float64{1 - h.U - h.V, h.U, h.V}
}

// NewRay normalizes dir and returns the ray.
func NewRay(origin, dir r3.Vec) (Ray, error) {
	if !vmath.IsFinite(origin) || !vmath.IsFinite(dir) {
		return Ray{}, ErrDegenerateRay
	}
	l := r3.Norm(dir)
	if l < 1e-12 {
		return Ray{}, ErrDegenerateRay
	}
	return Ray{Origin: origin, Direction: r3.Scale(1/l, dir)}, nil
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) r3.Vec {
	return r3.Add(r.Origin, r3.Scale(t, r.Direction))
}

// IntersectAABB runs the slab test against box.
// It returns the entry and exit distances; entry is negative when the origin is inside.
func (r Ray) IntersectAABB(box r3.Box) (tmin, tmax float64, hit bool) {
	tmin = gomath.Inf(-1)
	tmax = gomath.Inf(1)

	for axis := 0; axis < 3; axis++ {
		o := vmath.Axis(r.Origin, axis)
		d := vmath.Axis(r.Direction, axis)
		lo := vmath.Axis(box.Min, axis)
		hi := vmath.Axis(box.Max, axis)

		if d == 0 {
			if o < lo || o > hi {
				return 0, 0, false
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < -hitEpsilon {
		return 0, 0, false
	}
	return tmin, tmax, true
}

// IntersectTriangle is the Möller–Trumbore test. Both faces count.
// ok is false for misses, hits behind the origin, parallel rays and degenerate triangles.
func (r Ray) IntersectTriangle(a, b, c r3.Vec) (t, u, v float64, ok bool) {
	e1 := r3.Sub(b, a)
	e2 := r3.Sub(c, a)
	p := r3.Cross(r.Direction, e2)
	det := r3.Dot(e1, p)
	if gomath.Abs(det) < detEpsilon {
		return 0, 0, 0, false
	}
	inv := 1 / det

	s := r3.Sub(r.Origin, a)
	u = r3.Dot(s, p) * inv
	if u < -baryEpsilon || u > 1+baryEpsilon {
		return 0, 0, 0, false
	}

	q := r3.Cross(s, e1)
	v = r3.Dot(r.Direction, q) * inv
	if v < -baryEpsilon || u+v > 1+baryEpsilon {
		return 0, 0, 0, false
	}

	t = r3.Dot(e2, q) * inv
	if t < -hitEpsilon {
		return 0, 0, 0, false
	}
	if t < 0 {
		t = 0
	}
	return t, u, v, true
}
