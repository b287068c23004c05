package config

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/voxelsmith/internal/rebuild"
	"github.com/Faultbox/voxelsmith/internal/voxel"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Validate checks that every setting can be turned into pass options.
func (c *Config) Validate() error {
	if _, err := c.VoxelOptions(); err != nil {
		return err
	}
	if _, err := c.RebuildOptions(); err != nil {
		return err
	}
	return nil
}

// VoxelOptions converts the voxelize section. Progress and logging hooks are left unset.
func (c *Config) VoxelOptions() (voxel.Options, error) {
	v := c.Voxelize
	strategy, err := voxel.ParseStrategy(v.Strategy)
	if err != nil {
		return voxel.Options{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	var gran voxel.Granularity
	switch v.Granularity {
	case "", "layer":
		gran = voxel.GranularityLayer
	case "row":
		gran = voxel.GranularityRow
	default:
		return voxel.Options{}, fmt.Errorf("%w: unknown granularity %q", ErrInvalid, v.Granularity)
	}

	switch {
	case v.Step < 0 || gomath.IsNaN(v.Step) || gomath.IsInf(v.Step, 0):
		return voxel.Options{}, fmt.Errorf("%w: step %v", ErrInvalid, v.Step)
	case v.Step == 0 && v.Resolution <= 0:
		return voxel.Options{}, fmt.Errorf("%w: resolution %d with no step", ErrInvalid, v.Resolution)
	case v.BatchSize < 0:
		return voxel.Options{}, fmt.Errorf("%w: batch size %d", ErrInvalid, v.BatchSize)
	case v.Workers < 0:
		return voxel.Options{}, fmt.Errorf("%w: workers %d", ErrInvalid, v.Workers)
	case v.BoundsPadding < 0:
		return voxel.Options{}, fmt.Errorf("%w: bounds padding %v", ErrInvalid, v.BoundsPadding)
	}

	return voxel.Options{
		Step:          v.Step,
		Resolution:    v.Resolution,
		Strategy:      strategy,
		BatchSize:     v.BatchSize,
		Granularity:   gran,
		Workers:       v.Workers,
		BoundsPadding: v.BoundsPadding,
		Debug:         v.Debug,
	}, nil
}

// RebuildOptions converts the rebuild section.
func (c *Config) RebuildOptions() (rebuild.Options, error) {
	r := c.Rebuild
	mode, err := rebuild.ParseMode(r.Mode)
	if err != nil {
		return rebuild.Options{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !(r.VoxelSize > 0) || gomath.IsInf(r.VoxelSize, 0) {
		return rebuild.Options{}, fmt.Errorf("%w: voxel size %v", ErrInvalid, r.VoxelSize)
	}
	if r.Inset < 0 || r.Inset*2 >= r.VoxelSize {
		return rebuild.Options{}, fmt.Errorf("%w: inset %v for voxel size %v", ErrInvalid, r.Inset, r.VoxelSize)
	}
	return rebuild.Options{VoxelSize: r.VoxelSize, Inset: r.Inset, Mode: mode}, nil
}
