package debug

import (
	"sort"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// Diagnostics collects the intermediate quantities of one voxelization pass.
type Diagnostics struct {
	PassID   string
	Strategy string
	Bounds   r3.Box
	Step     float64
	Dims     [3]int

	// LayerTimings holds the wall time of each Z layer, indexed by z.
	LayerTimings []time.Duration

	// OpenEdges counts edges used by exactly one triangle.
	OpenEdges int
	// NonManifoldEdges counts edges shared by more than two triangles.
	NonManifoldEdges int

	DegenerateTriangles  int
	IntersectionFailures int64
	Occupied             int

	// Wireframe is the bounds as a line list.
	Wireframe []r3.Vec

	// Lattice is the sampled grid. LatticeWireframe outlines the cells around
	// its sample points, half a step beyond the outermost ones.
	Lattice          LayerGrid
	LatticeWireframe []r3.Vec

	// SliceZ is the layer captured by AddSlice, or -1.
	SliceZ     int
	SliceLines []LineVertex
	SliceCells []LineVertex
}

// NewDiagnostics starts diagnostics for a lattice with no captured slice.
func NewDiagnostics(lattice LayerGrid) *Diagnostics {
	return &Diagnostics{
		Step:             lattice.Step,
		Dims:             lattice.Dims,
		Lattice:          lattice,
		LatticeWireframe: PaddedWireframe(lattice.Extent(), lattice.Step/2),
		SliceZ:           -1,
	}
}

// AddSlice captures the grid lines and occupied cells of layer z.
func (d *Diagnostics) AddSlice(z int, occupied func(x, y int) ([3]float64, bool)) {
	if z < 0 || z >= d.Lattice.Dims[2] {
		return
	}
	d.SliceZ = z
	d.SliceLines = d.Lattice.Lines(z)
	d.SliceCells = d.Lattice.Occupancy(z, occupied)
}

// TimingSummary condenses per-layer timings.
type TimingSummary struct {
	Layers       int
	Total        time.Duration
	Mean         time.Duration
	Median       time.Duration
	Slowest      time.Duration
	SlowestLayer int
}

// Summarize computes a TimingSummary. The zero value is returned for no layers.
func Summarize(timings []time.Duration) TimingSummary {
	s := TimingSummary{Layers: len(timings), SlowestLayer: -1}
	if len(timings) == 0 {
		return s
	}

	for z, d := range timings {
		s.Total += d
		if s.SlowestLayer < 0 || d > s.Slowest {
			s.Slowest = d
			s.SlowestLayer = z
		}
	}
	s.Mean = s.Total / time.Duration(len(timings))

	sorted := append([]time.Duration(nil), timings...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	s.Median = sorted[len(sorted)/2]
	return s
}

// Fields returns the diagnostics as structured log fields.
func (d *Diagnostics) Fields() []zap.Field {
	t := Summarize(d.LayerTimings)
	return []zap.Field{
		zap.String("pass", d.PassID),
		zap.String("strategy", d.Strategy),
		zap.Float64s("bounds_min", []float64{d.Bounds.Min.X, d.Bounds.Min.Y, d.Bounds.Min.Z}),
		zap.Float64s("bounds_max", []float64{d.Bounds.Max.X, d.Bounds.Max.Y, d.Bounds.Max.Z}),
		zap.Float64("step", d.Step),
		zap.Ints("dims", d.Dims[:]),
		zap.Int("open_edges", d.OpenEdges),
		zap.Int("non_manifold_edges", d.NonManifoldEdges),
		zap.Int("degenerate_triangles", d.DegenerateTriangles),
		zap.Int64("intersection_failures", d.IntersectionFailures),
		zap.Int("occupied", d.Occupied),
		zap.Duration("layer_total", t.Total),
		zap.Duration("layer_mean", t.Mean),
		zap.Duration("layer_slowest", t.Slowest),
		zap.Int("layer_slowest_z", t.SlowestLayer),
		zap.Int("slice_z", d.SliceZ),
		zap.Int("slice_cells", len(d.SliceCells)/6),
	}
}
