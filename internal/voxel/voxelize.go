// Package voxel converts triangle meshes into colored voxel grids.
package voxel

import (
	"context"
	"fmt"
	gomath "math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/voxelsmith/internal/debug"
	"github.com/Faultbox/voxelsmith/internal/logger"
	vmath "github.com/Faultbox/voxelsmith/pkg/math"
	"github.com/Faultbox/voxelsmith/pkg/mesh"
)

// DefaultResolution is the cell count along the longest axis when no step is given.
const DefaultResolution = 32

// Options configures a voxelization pass.
type Options struct {
	// Step is the cell edge length. Zero derives it from Resolution.
	Step float64
	// Resolution is the target cell count along the longest axis.
	Resolution int

	Strategy    Strategy
	BatchSize   int
	Granularity Granularity
	Workers     int

	// BoundsPadding grows the bounds on every side before planning.
	BoundsPadding float64

	OnProgress func(fraction float64)
	// Yield runs between chunks. Nil uses runtime.Gosched.
	Yield func()

	// Debug fills Result.Diagnostics and logs it.
	Debug bool

	// Logger defaults to the "voxel" component logger.
	Logger *zap.Logger
}

// DefaultOptions returns the multi-directional strategy at resolution 32.
func DefaultOptions() Options {
	return Options{
		Resolution: DefaultResolution,
		Strategy:   StrategyMultiDirectional,
		BatchSize:  DefaultBatchSize,
		Workers:    1,
	}
}

// Result is a finished pass.
type Result struct {
	PassID   uuid.UUID
	Grid     Snapshot
	Spec     GridSpec
	Bounds   r3.Box
	Duration time.Duration
	// Closedness is computed for the parity strategy and in debug mode.
	Closedness *Closedness
	// Diagnostics is set when Options.Debug is true.
	Diagnostics *debug.Diagnostics
}

// Voxelize flattens doc and classifies every grid cell.
func Voxelize(ctx context.Context, doc *mesh.Document, opts Options) (*Result, error) {
	soup, err := doc.Flatten()
	if err != nil {
		return nil, fmt.Errorf("flatten mesh: %w", err)
	}
	return VoxelizeSoup(ctx, soup, opts)
}

// Plan computes the bounds and grid a pass over soup would use.
func Plan(soup *mesh.Soup, opts Options) (r3.Box, GridSpec, error) {
	box, err := Bounds(soup)
	if err != nil {
		return r3.Box{}, GridSpec{}, err
	}
	if opts.BoundsPadding != 0 {
		if gomath.IsNaN(opts.BoundsPadding) || gomath.IsInf(opts.BoundsPadding, 0) || opts.BoundsPadding < 0 {
			return r3.Box{}, GridSpec{}, fmt.Errorf("%w: bounds padding %v", ErrInvalidStep, opts.BoundsPadding)
		}
		box = vmath.Pad(box, opts.BoundsPadding)
	}

	step := opts.Step
	if step == 0 {
		step, err = StepForResolution(box, opts.Resolution)
		if err != nil {
			return r3.Box{}, GridSpec{}, err
		}
	}
	spec, err := PlanGrid(box, step)
	if err != nil {
		return r3.Box{}, GridSpec{}, err
	}
	return box, spec, nil
}

// VoxelizeSoup runs a pass over an already flattened soup.
// Precondition errors are returned before any grid is allocated.
// Cancellation returns ctx.Err() and no grid; so does a failed layer worker, with its error.
func VoxelizeSoup(ctx context.Context, soup *mesh.Soup, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Named("voxel")
	}

	box, spec, err := Plan(soup, opts)
	if err != nil {
		return nil, err
	}

	engine, err := NewEngine(soup, opts.Strategy, spec.Step)
	if err != nil {
		return nil, err
	}

	pass := NewPass(engine, spec, PassConfig{
		BatchSize:   opts.BatchSize,
		Granularity: opts.Granularity,
		Workers:     opts.Workers,
		OnProgress:  opts.OnProgress,
		Timings:     opts.Debug,
	})
	log = log.With(zap.String("pass", pass.ID.String()))

	var closed *Closedness
	if opts.Strategy == StrategyParity || opts.Debug {
		c := CheckClosed(soup)
		closed = &c
		if opts.Strategy == StrategyParity && !c.Closed() {
			log.Warn("parity strategy on a mesh that is not closed; cells near open edges may be misclassified",
				zap.Int("open_edges", c.OpenEdges),
				zap.Int("non_manifold_edges", c.NonManifoldEdges))
		}
	}

	log.Info("voxelizing",
		zap.Stringer("strategy", opts.Strategy),
		zap.Int("triangles", len(soup.Triangles)),
		zap.Ints("dims", spec.Dims[:]),
		zap.Float64("step", spec.Step))

	start := time.Now()
	if err := Run(ctx, pass, opts.Yield); err != nil {
		if ctx.Err() != nil {
			log.Info("voxelization cancelled", zap.Float64("progress", pass.Progress()), zap.Error(err))
		} else {
			log.Error("voxelization failed", zap.Float64("progress", pass.Progress()), zap.Error(err))
		}
		return nil, err
	}
	elapsed := time.Since(start)

	snap, _ := pass.Snapshot()
	res := &Result{
		PassID:     pass.ID,
		Grid:       snap,
		Spec:       spec,
		Bounds:     box,
		Duration:   elapsed,
		Closedness: closed,
	}

	if opts.Debug {
		d := debug.NewDiagnostics(debug.LayerGrid{Origin: spec.Origin, Step: spec.Step, Dims: spec.Dims})
		d.PassID = pass.ID.String()
		d.Strategy = opts.Strategy.String()
		d.Bounds = box
		d.LayerTimings = pass.Timings()
		d.OpenEdges = closed.OpenEdges
		d.NonManifoldEdges = closed.NonManifoldEdges
		d.DegenerateTriangles = closed.Degenerate
		d.IntersectionFailures = engine.Failures()
		d.Occupied = snap.Count()
		d.Wireframe = debug.BoxWireframe(box)

		mid := spec.Dims[2] / 2
		d.AddSlice(mid, func(x, y int) ([3]float64, bool) {
			c, ok := snap.At(x, y, mid)
			return [3]float64{c.R, c.G, c.B}, ok
		})
		res.Diagnostics = d
		log.Debug("diagnostics", res.Diagnostics.Fields()...)
	} else if n := engine.Failures(); n > 0 {
		log.Debug("skipped degenerate probes", zap.Int64("count", n))
	}

	log.Info("voxelized",
		zap.Int("occupied", snap.Count()),
		zap.Int("cells", spec.Total()),
		zap.Duration("elapsed", elapsed))
	return res, nil
}
