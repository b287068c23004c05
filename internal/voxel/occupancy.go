package voxel

import (
	"fmt"
	gomath "math"
	"sync/atomic"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/voxelsmith/internal/raycast"
	"github.com/Faultbox/voxelsmith/pkg/mesh"
)

// Strategy selects how cells are classified.
type Strategy int

const (
	// StrategyMultiDirectional casts six axis rays and samples the closest hit.
	StrategyMultiDirectional Strategy = iota
	// StrategyParity casts one +Z ray; an odd hit count is inside.
	StrategyParity
	// StrategyNearestVertex occupies cells whose closest vertex lies within the cell.
	StrategyNearestVertex
)

var strategyNames = map[Strategy]string{
	StrategyMultiDirectional: "multi-directional",
	StrategyParity:           "parity",
	StrategyNearestVertex:    "nearest-vertex",
}

// ParseStrategy maps a configuration string to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	for k, v := range strategyNames {
		if v == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", s)
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// tieEpsilon is the distance within which two directions count as equally close.
const tieEpsilon = 1e-9

// directions is the fixed probe order. On ties the earlier entry wins.
var directions = [6]r3.Vec{
	{Y: 1}, {Y: -1},
	{X: 1}, {X: -1},
	{Z: 1}, {Z: -1},
}

var parityDirection = r3.Vec{Z: 1}

// Engine classifies probe points against a fixed triangle soup.
// Classify is safe for concurrent use.
type Engine struct {
	strategy Strategy
	soup     *mesh.Soup
	bvh      *raycast.BVH
	resolver Resolver
	vertices *vertexIndex
	radius   float64

	failures atomic.Int64
}

// NewEngine indexes soup for strategy. step sizes the nearest-vertex search.
func NewEngine(soup *mesh.Soup, strategy Strategy, step float64) (*Engine, error) {
	if soup == nil || len(soup.Vertices) == 0 {
		return nil, ErrEmptyMesh
	}
	if _, ok := strategyNames[strategy]; !ok {
		return nil, fmt.Errorf("unknown strategy %d", int(strategy))
	}

	e := &Engine{
		strategy: strategy,
		soup:     soup,
		resolver: NewResolver(),
	}
	if strategy == StrategyNearestVertex {
		if !(step > 0) || gomath.IsInf(step, 0) {
			return nil, fmt.Errorf("%w: step %v", ErrInvalidStep, step)
		}
		e.vertices = newVertexIndex(soup.Vertices, step)
		e.radius = step * gomath.Sqrt(3) / 2
	} else {
		e.bvh = raycast.NewBVH(soup.Positions())
	}
	return e, nil
}

// Strategy returns the engine's strategy.
func (e *Engine) Strategy() Strategy { return e.strategy }

// Failures returns how many probes were skipped as degenerate.
func (e *Engine) Failures() int64 { return e.failures.Load() }

// Classify reports whether p is occupied and, if so, its color.
func (e *Engine) Classify(p r3.Vec) (Color, bool) {
	switch e.strategy {
	case StrategyParity:
		return e.parity(p)
	case StrategyNearestVertex:
		return e.nearestVertex(p)
	default:
		return e.multiDirectional(p)
	}
}

func (e *Engine) ray(origin, dir r3.Vec) (raycast.Ray, bool) {
	r, err := raycast.NewRay(origin, dir)
	if err != nil {
		e.failures.Add(1)
		return raycast.Ray{}, false
	}
	return r, true
}

func (e *Engine) parity(p r3.Vec) (Color, bool) {
	r, ok := e.ray(p, parityDirection)
	if !ok {
		return Color{}, false
	}

	hits := e.bvh.All(r)
	if len(hits) == 0 {
		return Color{}, false
	}

	// A ray through a shared edge or vertex reports one hit per triangle.
	// Coincident hits are grouped and counted once, or not at all for a graze.
	crossings := 0
	for i := 0; i < len(hits); {
		j := i + 1
		for j < len(hits) && hits[j].T-hits[j-1].T <= tieEpsilon {
			j++
		}
		if e.crosses(hits[i:j], r.Direction) {
			crossings++
		}
		i = j
	}
	if crossings%2 == 0 {
		return Color{}, false
	}

	first := &e.soup.Triangles[hits[0].Triangle]
	return Material(first.Material).Soften(), true
}

// crosses reports whether a group of coincident hits passes through the
// surface. Faces seen from both sides mean the ray only touches it.
// Orientation comes from the winding, so it must be consistent.
func (e *Engine) crosses(group []raycast.Hit, dir r3.Vec) bool {
	if len(group) == 1 {
		return true
	}
	var entering, leaving bool
	for _, h := range group {
		v := &e.soup.Triangles[h.Triangle].V
		n := r3.Cross(r3.Sub(v[1], v[0]), r3.Sub(v[2], v[0]))
		switch d := r3.Dot(n, dir); {
		case d < 0:
			entering = true
		case d > 0:
			leaving = true
		}
	}
	return !(entering && leaving)
}

func (e *Engine) multiDirectional(p r3.Vec) (Color, bool) {
	var best raycast.Hit
	found := false
	for _, dir := range directions {
		r, ok := e.ray(p, dir)
		if !ok {
			continue
		}
		h, ok := e.bvh.Closest(r)
		if !ok {
			continue
		}
		if !found || h.T < best.T-tieEpsilon {
			best = h
			found = true
		}
	}
	if !found {
		return Color{}, false
	}

	tri := &e.soup.Triangles[best.Triangle]
	return e.resolver.Barycentric(tri, best.Weights()), true
}

func (e *Engine) nearestVertex(p r3.Vec) (Color, bool) {
	vi, dist, ok := e.vertices.nearest(p)
	if !ok || dist > e.radius {
		return Color{}, false
	}
	return e.resolver.NearestVertex(&e.soup.Vertices[vi], dist), true
}

// vertexIndex buckets vertices into cubes of one grid step.
type vertexIndex struct {
	cell    float64
	buckets map[[3]int64][]int
	verts   []mesh.Vertex
}

func newVertexIndex(verts []mesh.Vertex, cell float64) *vertexIndex {
	idx := &vertexIndex{
		cell:    cell,
		buckets: make(map[[3]int64][]int),
		verts:   verts,
	}
	for i := range verts {
		k := idx.key(verts[i].Position)
		idx.buckets[k] = append(idx.buckets[k], i)
	}
	return idx
}

func (v *vertexIndex) key(p r3.Vec) [3]int64 {
	return [3]int64{
		quantize(gomath.Floor(p.X / v.cell)),
		quantize(gomath.Floor(p.Y / v.cell)),
		quantize(gomath.Floor(p.Z / v.cell)),
	}
}

// nearest searches the 27 buckets around p. Only vertices within one cell
// are guaranteed to be found; ties go to the lower vertex index.
func (v *vertexIndex) nearest(p r3.Vec) (int, float64, bool) {
	k := v.key(p)
	best, bestDist := -1, gomath.Inf(1)
	for dz := int64(-1); dz <= 1; dz++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dx := int64(-1); dx <= 1; dx++ {
				for _, i := range v.buckets[[3]int64{k[0] + dx, k[1] + dy, k[2] + dz}] {
					d := r3.Norm(r3.Sub(v.verts[i].Position, p))
					if d < bestDist || (d == bestDist && i < best) {
						best, bestDist = i, d
					}
				}
			}
		}
	}
	return best, bestDist, best >= 0
}
