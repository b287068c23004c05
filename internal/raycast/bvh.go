package raycast

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	vmath "github.com/Faultbox/voxelsmith/pkg/math"
)

const leafSize = 4

// BVH is a bounding volume hierarchy over a fixed triangle set.
// It is read-only after construction and safe for concurrent queries.
type BVH struct {
	tris  [][3]r3.Vec
	order []int
	nodes []bvhNode
}

// bvhNode is a leaf when count > 0; otherwise left and right index nodes.
type bvhNode struct {
	box         r3.Box
	left, right int
	start       int
	count       int
}

// NewBVH builds a hierarchy with median splits on the longest centroid axis.
func NewBVH(tris [][3]r3.Vec) *BVH {
	b := &BVH{
		tris:  tris,
		order: make([]int, len(tris)),
	}
	for i := range b.order {
		b.order[i] = i
	}
	if len(tris) > 0 {
		b.nodes = make([]bvhNode, 0, 2*len(tris)/leafSize+1)
		b.build(0, len(tris))
	}
	return b
}

// Len returns the number of triangles.
func (b *BVH) Len() int {
	return len(b.tris)
}

func (b *BVH) build(start, end int) int {
	box := vmath.EmptyBox()
	centroids := vmath.EmptyBox()
	for _, ti := range b.order[start:end] {
		tri := b.tris[ti]
		for _, p := range tri {
			box = vmath.Extend(box, p)
		}
		centroids = vmath.Extend(centroids, centroid(tri))
	}

	idx := len(b.nodes)
	b.nodes = append(b.nodes, bvhNode{box: box})

	size := vmath.Size(centroids)
	axis := 0
	if size.Y > size.X {
		axis = 1
	}
	if size.Z > vmath.Axis(size, axis) {
		axis = 2
	}

	if end-start <= leafSize || vmath.Axis(size, axis) == 0 {
		b.nodes[idx].start = start
		b.nodes[idx].count = end - start
		return idx
	}

	part := b.order[start:end]
	sort.Slice(part, func(i, j int) bool {
		return vmath.Axis(centroid(b.tris[part[i]]), axis) < vmath.Axis(centroid(b.tris[part[j]]), axis)
	})

	mid := (start + end) / 2
	left := b.build(start, mid)
	right := b.build(mid, end)
	b.nodes[idx].left = left
	b.nodes[idx].right = right
	return idx
}

func centroid(tri [3]r3.Vec) r3.Vec {
	return r3.Scale(1.0/3, r3.Add(r3.Add(tri[0], tri[1]), tri[2]))
}

// Each calls fn for every hit at t >= 0, in traversal order.
func (b *BVH) Each(r Ray, fn func(Hit)) {
	b.walk(r, func(float64) bool { return true }, fn)
}

// All returns every hit sorted by distance.
func (b *BVH) All(r Ray) []Hit {
	var hits []Hit
	b.Each(r, func(h Hit) { hits = append(hits, h) })
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].T != hits[j].T {
			return hits[i].T < hits[j].T
		}
		return hits[i].Triangle < hits[j].Triangle
	})
	return hits
}

// Closest returns the nearest hit. Equal distances resolve to the lowest triangle index.
func (b *BVH) Closest(r Ray) (Hit, bool) {
	var best Hit
	found := false
	b.walk(r,
		func(tmin float64) bool { return !found || tmin <= best.T+hitEpsilon },
		func(h Hit) {
			if !found || h.T < best.T || (h.T == best.T && h.Triangle < best.Triangle) {
				best = h
				found = true
			}
		})
	return best, found
}

func (b *BVH) walk(r Ray, visit func(tmin float64) bool, fn func(Hit)) {
	if len(b.nodes) == 0 {
		return
	}

	stack := make([]int, 0, 64)
	stack = append(stack, 0)
	for len(stack) > 0 {
		n := &b.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]

		tmin, _, hit := r.IntersectAABB(n.box)
		if !hit || !visit(tmin) {
			continue
		}

		if n.count > 0 {
			for _, ti := range b.order[n.start : n.start+n.count] {
				tri := b.tris[ti]
				t, u, v, ok := r.IntersectTriangle(tri[0], tri[1], tri[2])
				if ok {
					fn(Hit{T: t, Triangle: ti, U: u, V: v})
				}
			}
			continue
		}
		stack = append(stack, n.left, n.right)
	}
}
