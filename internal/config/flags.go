package config

import "flag"

// Flags holds command-line overrides. Zero values leave the config untouched.
type Flags struct {
	config     *string
	debug      *bool
	step       *float64
	resolution *int
	strategy   *string
	batch      *int
	rows       *bool
	workers    *int
	padding    *float64
	voxelSize  *float64
	inset      *float64
	mode       *string
	logFile    *string
}

// RegisterFlags defines the config flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		config:     fs.String("config", "", "Path to config file"),
		debug:      fs.Bool("debug", false, "Enable debug logging and diagnostics"),
		step:       fs.Float64("step", 0, "Grid cell size (overrides -resolution)"),
		resolution: fs.Int("resolution", 0, "Cells along the longest axis"),
		strategy:   fs.String("strategy", "", "parity, multi-directional or nearest-vertex"),
		batch:      fs.Int("batch", 0, "Z layers per chunk"),
		rows:       fs.Bool("rows", false, "Process one row per chunk"),
		workers:    fs.Int("workers", 0, "Parallel layer workers"),
		padding:    fs.Float64("padding", 0, "Grow bounds on every side"),
		voxelSize:  fs.Float64("voxel-size", 0, "Output cube size"),
		inset:      fs.Float64("inset", -1, "Output cube inset (negative keeps config)"),
		mode:       fs.String("mode", "", "Output mode: merged or instanced"),
		logFile:    fs.String("log", "", "Log file path"),
	}
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.config
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if *f.debug {
		cfg.Logging.Level = "debug"
		cfg.Voxelize.Debug = true
	}
	if *f.resolution > 0 {
		cfg.Voxelize.Resolution = *f.resolution
		cfg.Voxelize.Step = 0
	}
	if *f.step != 0 {
		cfg.Voxelize.Step = *f.step
	}
	if *f.strategy != "" {
		cfg.Voxelize.Strategy = *f.strategy
	}
	if *f.batch > 0 {
		cfg.Voxelize.BatchSize = *f.batch
	}
	if *f.rows {
		cfg.Voxelize.Granularity = "row"
	}
	if *f.workers > 0 {
		cfg.Voxelize.Workers = *f.workers
	}
	if *f.padding > 0 {
		cfg.Voxelize.BoundsPadding = *f.padding
	}
	if *f.voxelSize > 0 {
		cfg.Rebuild.VoxelSize = *f.voxelSize
	}
	if *f.inset >= 0 {
		cfg.Rebuild.Inset = *f.inset
	}
	if *f.mode != "" {
		cfg.Rebuild.Mode = *f.mode
	}
	if *f.logFile != "" {
		cfg.Logging.LogFile = *f.logFile
	}
}
