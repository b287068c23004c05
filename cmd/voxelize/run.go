package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/voxelsmith/internal/config"
	"github.com/Faultbox/voxelsmith/internal/debug"
	"github.com/Faultbox/voxelsmith/internal/logger"
	"github.com/Faultbox/voxelsmith/internal/rebuild"
	"github.com/Faultbox/voxelsmith/internal/voxel"
	"github.com/Faultbox/voxelsmith/pkg/mesh"
)

func cmdRun(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	output := fs.String("o", "", "Output file for the voxel mesh (default stdout)")
	slices := fs.String("slices", "", "Write one PNG per Z layer to this directory")
	quiet := fs.Bool("q", false, "Hide the progress line")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: voxelize run [options] <mesh.yaml>")
	}

	cfg, err := setup(flags)
	if err != nil {
		return err
	}
	defer logger.Sync()

	doc, err := mesh.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	opts, err := cfg.VoxelOptions()
	if err != nil {
		return err
	}
	ropts, err := cfg.RebuildOptions()
	if err != nil {
		return err
	}
	if !*quiet {
		opts.OnProgress = newProgressLine(os.Stderr).update
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := voxel.Voxelize(ctx, doc, opts)
	if !*quiet {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return fmt.Errorf("voxelize %s: %w", fs.Arg(0), err)
	}

	if *slices != "" {
		if err := writeSlices(*slices, res); err != nil {
			return err
		}
	}

	out, err := rebuild.Build(res.Grid, ropts)
	if err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}
	built := out.Mesh
	if out.Instanced != nil {
		built = out.Instanced.Expand()
	}

	logger.Info("rebuilt voxel mesh",
		zap.String("mode", ropts.Mode.String()),
		zap.Int("cubes", out.Cubes()),
		zap.Int("vertices", len(built.Vertices)),
		zap.Float64s("offset", []float64{out.Offset().X, out.Offset().Y, out.Offset().Z}))

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := mesh.EncodeYAML(w, built.ToDocument("voxels")); err != nil {
		return fmt.Errorf("writing voxel mesh: %w", err)
	}

	fmt.Fprintf(os.Stderr, "%d voxels in %v (%s)\n", res.Grid.Count(), res.Duration.Round(time.Millisecond), res.Spec)
	return nil
}

// setup loads the config and starts the logger.
func setup(flags *config.Flags) (*config.Config, error) {
	cfg, err := config.Load(flags)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, nil
}

func writeSlices(dir string, res *voxel.Result) error {
	d := res.Grid.Dims()
	w := debug.NewSliceWriter(dir, "layer", 8)
	for z := 0; z < d[2]; z++ {
		path, err := w.Write(z, d[0], d[1], func(x, y int) (uint8, uint8, uint8, bool) {
			c, ok := res.Grid.At(x, y, z)
			if !ok {
				return 0, 0, 0, false
			}
			r, g, b := c.RGB255()
			return r, g, b, true
		})
		if err != nil {
			return fmt.Errorf("writing slice %d: %w", z, err)
		}
		logger.Debug("wrote slice", zap.String("path", path))
	}
	return nil
}

// progressLine redraws a single status line, only when the percentage changes.
type progressLine struct {
	w    io.Writer
	last int
}

func newProgressLine(w io.Writer) *progressLine {
	return &progressLine{w: w, last: -1}
}

func (p *progressLine) update(fraction float64) {
	pct := int(fraction * 100)
	if pct == p.last {
		return
	}
	p.last = pct
	fmt.Fprintf(p.w, "\rProgress %d%%", pct)
}
