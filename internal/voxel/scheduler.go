package voxel

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchSize is the number of Z layers per chunk.
const DefaultBatchSize = 100

// Granularity is the unit of work a chunk covers.
type Granularity int

const (
	// GranularityLayer processes up to BatchSize Z layers per chunk.
	GranularityLayer Granularity = iota
	// GranularityRow processes a single row per chunk.
	GranularityRow
)

func (g Granularity) String() string {
	if g == GranularityRow {
		return "row"
	}
	return "layer"
}

// PassConfig controls chunking and progress for a Pass.
type PassConfig struct {
	BatchSize   int
	Granularity Granularity
	// Workers above 1 classify the layers of a chunk in parallel.
	// Row granularity always runs serially.
	Workers    int
	OnProgress func(fraction float64)
	// Timings records the wall time of every layer.
	Timings bool
}

// Pass is one voxelization run over a grid. It owns the grid until Done.
type Pass struct {
	ID uuid.UUID

	engine   *Engine
	spec     GridSpec
	grid     *Grid
	cfg      PassConfig
	progress *progress

	nextZ, nextY int
	layerStart   time.Time
	layerElapsed time.Duration
	timings      []time.Duration
	done         bool
	err          error
}

// NewPass prepares a pass that classifies every cell of spec with engine.
func NewPass(engine *Engine, spec GridSpec, cfg PassConfig) *Pass {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	p := &Pass{
		ID:       uuid.New(),
		engine:   engine,
		spec:     spec,
		grid:     NewGrid(spec),
		cfg:      cfg,
		progress: &progress{total: spec.Total(), fn: cfg.OnProgress},
	}
	if cfg.Timings {
		p.timings = make([]time.Duration, spec.Dims[2])
	}
	return p
}

// Done reports whether every cell has been classified.
func (p *Pass) Done() bool { return p.done }

// Progress returns the completed fraction.
func (p *Pass) Progress() float64 { return p.progress.fraction() }

// Spec returns the grid layout being filled.
func (p *Pass) Spec() GridSpec { return p.spec }

// Timings returns per-layer wall times, or nil when not recorded.
func (p *Pass) Timings() []time.Duration { return p.timings }

// Snapshot returns the finished grid. ok is false until the pass is done.
func (p *Pass) Snapshot() (Snapshot, bool) {
	if !p.done {
		return Snapshot{}, false
	}
	return p.grid.Snapshot(), true
}

// RunChunk processes the next chunk and reports whether the pass is complete.
// A failed chunk leaves the grid untouched and fails every later call.
func (p *Pass) RunChunk() (bool, error) {
	if p.err != nil {
		return false, p.err
	}
	if p.done {
		return true, nil
	}
	switch {
	case p.cfg.Granularity == GranularityRow:
		p.runRow()
	case p.cfg.Workers > 1:
		if err := p.runLayersParallel(); err != nil {
			p.err = err
			return false, err
		}
	default:
		p.runLayers()
	}
	if p.nextZ >= p.spec.Dims[2] {
		p.done = true
		p.progress.finish()
	}
	return p.done, nil
}

func (p *Pass) runRow() {
	start := time.Now()
	z, y := p.nextZ, p.nextY
	p.classifyRow(z, y, func(x int, c Color) { p.grid.Set(x, y, z, c) })
	p.progress.add(p.spec.Dims[0])

	p.layerElapsed += time.Since(start)
	p.nextY++
	if p.nextY >= p.spec.Dims[1] {
		p.recordLayer(z, p.layerElapsed)
		p.layerElapsed = 0
		p.nextY = 0
		p.nextZ++
	}
}

func (p *Pass) runLayers() {
	end := min(p.nextZ+p.cfg.BatchSize, p.spec.Dims[2])
	for z := p.nextZ; z < end; z++ {
		start := time.Now()
		for y := 0; y < p.spec.Dims[1]; y++ {
			p.classifyRow(z, y, func(x int, c Color) { p.grid.Set(x, y, z, c) })
			p.progress.add(p.spec.Dims[0])
		}
		p.recordLayer(z, time.Since(start))
	}
	p.nextZ = end
}

// layerBuffer holds one layer's results until the chunk's workers finish.
type layerBuffer struct {
	z       int
	color   []Color
	set     []bool
	elapsed time.Duration
}

func (p *Pass) runLayersParallel() error {
	end := min(p.nextZ+p.cfg.BatchSize, p.spec.Dims[2])
	nx := p.spec.Dims[0]
	buffers := make([]*layerBuffer, end-p.nextZ)

	var g errgroup.Group
	g.SetLimit(p.cfg.Workers)
	for z := p.nextZ; z < end; z++ {
		buf := &layerBuffer{
			z:     z,
			color: make([]Color, p.spec.LayerSize()),
			set:   make([]bool, p.spec.LayerSize()),
		}
		buffers[z-p.nextZ] = buf
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: layer %d: %v", ErrWorkerPanic, buf.z, r)
				}
			}()
			start := time.Now()
			for y := 0; y < p.spec.Dims[1]; y++ {
				p.classifyRow(buf.z, y, func(x int, c Color) {
					buf.color[x+y*nx] = c
					buf.set[x+y*nx] = true
				})
				p.progress.add(nx)
			}
			buf.elapsed = time.Since(start)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, buf := range buffers {
		for i, ok := range buf.set {
			if ok {
				p.grid.Set(i%nx, i/nx, buf.z, buf.color[i])
			}
		}
		p.recordLayer(buf.z, buf.elapsed)
	}
	p.nextZ = end
	return nil
}

func (p *Pass) classifyRow(z, y int, emit func(x int, c Color)) {
	for x := 0; x < p.spec.Dims[0]; x++ {
		if c, ok := p.engine.Classify(p.spec.Cell(x, y, z)); ok {
			emit(x, c)
		}
	}
}

func (p *Pass) recordLayer(z int, d time.Duration) {
	if p.timings != nil {
		p.timings[z] = d
	}
}

// progress serializes fraction reports from any number of workers.
type progress struct {
	mu    sync.Mutex
	done  int
	total int
	last  float64
	fn    func(float64)
}

func (p *progress) add(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done += n
	f := 1.0
	if p.done < p.total {
		f = float64(p.done) / float64(p.total)
	}
	p.report(f)
}

// finish reports 1.0 unless it was already the last value reported.
func (p *progress) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last < 1 {
		p.report(1)
	}
}

func (p *progress) report(f float64) {
	if f < p.last {
		f = p.last
	}
	p.last = f
	if p.fn != nil {
		p.fn(f)
	}
}

func (p *progress) fraction() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Run drives pass to completion, calling yield between chunks.
// It returns ctx.Err() on cancellation or the first chunk error.
// A nil yield uses runtime.Gosched. ctx is checked once per chunk boundary.
func Run(ctx context.Context, pass *Pass, yield func()) error {
	if yield == nil {
		yield = runtime.Gosched
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		done, err := pass.RunChunk()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		yield()
	}
}
