// Package config handles voxelizer configuration loading and management.
package config

// Config holds all voxelizer settings.
type Config struct {
	Voxelize VoxelizeConfig `yaml:"voxelize"`
	Rebuild  RebuildConfig  `yaml:"rebuild"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// VoxelizeConfig holds grid planning and scan settings.
type VoxelizeConfig struct {
	Step          float64 `yaml:"step"`       // Cell size; 0 derives it from resolution
	Resolution    int     `yaml:"resolution"` // Cells along the longest axis
	Strategy      string  `yaml:"strategy"`   // parity, multi-directional or nearest-vertex
	BatchSize     int     `yaml:"batch_size"`
	Granularity   string  `yaml:"granularity"` // layer or row
	Workers       int     `yaml:"workers"`
	BoundsPadding float64 `yaml:"bounds_padding"`
	Debug         bool    `yaml:"debug"`
}

// RebuildConfig holds voxel mesh output settings.
type RebuildConfig struct {
	VoxelSize float64 `yaml:"voxel_size"`
	Inset     float64 `yaml:"inset"`
	Mode      string  `yaml:"mode"` // merged or instanced
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Voxelize: VoxelizeConfig{
			Step:        0,
			Resolution:  32,
			Strategy:    "multi-directional",
			BatchSize:   100,
			Granularity: "layer",
			Workers:     1,
		},
		Rebuild: RebuildConfig{
			VoxelSize: 0.24,
			Inset:     0.03,
			Mode:      "merged",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
