package raycast

import (
	gomath "math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func randomTriangles(rng *rand.Rand, n int) [][3]r3.Vec {
	tris := make([][3]r3.Vec, n)
	for i := range tris {
		base := r3.Vec{X: rng.Float64() * 10, Y: rng.Float64() * 10, Z: rng.Float64() * 10}
		for k := range tris[i] {
			tris[i][k] = r3.Add(base, r3.Vec{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()})
		}
	}
	return tris
}

func bruteClosest(tris [][3]r3.Vec, r Ray) (Hit, bool) {
	var best Hit
	found := false
	for i, tri := range tris {
		t, u, v, ok := r.IntersectTriangle(tri[0], tri[1], tri[2])
		if ok && (!found || t < best.T) {
			best = Hit{T: t, Triangle: i, U: u, V: v}
			found = true
		}
	}
	return best, found
}

func TestBVHMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tris := randomTriangles(rng, 300)
	bvh := NewBVH(tris)

	if bvh.Len() != 300 {
		t.Fatalf("Len() = %d, want 300", bvh.Len())
	}

	dirs := []r3.Vec{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1}}
	for i := 0; i < 200; i++ {
		origin := r3.Vec{X: rng.Float64() * 11, Y: rng.Float64() * 11, Z: rng.Float64() * 11}
		for _, d := range dirs {
			r, _ := NewRay(origin, d)

			want, wantOk := bruteClosest(tris, r)
			got, gotOk := bvh.Closest(r)
			if gotOk != wantOk {
				t.Fatalf("ray %d %v: Closest() ok = %v, want %v", i, d, gotOk, wantOk)
			}
			if gotOk && gomath.Abs(got.T-want.T) > 1e-9 {
				t.Errorf("ray %d %v: Closest() t = %v, want %v", i, d, got.T, want.T)
			}

			count := 0
			for _, tri := range tris {
				if _, _, _, ok := r.IntersectTriangle(tri[0], tri[1], tri[2]); ok {
					count++
				}
			}
			if all := bvh.All(r); len(all) != count {
				t.Errorf("ray %d %v: All() returned %d hits, want %d", i, d, len(all), count)
			}
		}
	}
}

func TestBVHAllSorted(t *testing.T) {
	var tris [][3]r3.Vec
	for z := 3; z >= 0; z-- {
		fz := float64(z)
		tris = append(tris, [3]r3.Vec{{Z: fz}, {X: 1, Z: fz}, {Y: 1, Z: fz}})
	}
	bvh := NewBVH(tris)

	r, _ := NewRay(r3.Vec{X: 0.1, Y: 0.1, Z: -1}, r3.Vec{Z: 1})
	hits := bvh.All(r)
	if len(hits) != 4 {
		t.Fatalf("All() returned %d hits, want 4", len(hits))
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].T < hits[i-1].T {
			t.Errorf("hits not sorted: %v before %v", hits[i-1].T, hits[i].T)
		}
	}
	if hits[0].Triangle != 3 {
		t.Errorf("nearest triangle = %d, want 3", hits[0].Triangle)
	}
}

func TestBVHEmpty(t *testing.T) {
	bvh := NewBVH(nil)
	r, _ := NewRay(r3.Vec{}, r3.Vec{X: 1})
	if _, ok := bvh.Closest(r); ok {
		t.Error("empty BVH should report no hit")
	}
	if hits := bvh.All(r); len(hits) != 0 {
		t.Errorf("empty BVH returned %d hits", len(hits))
	}
}
