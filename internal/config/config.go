// Package config handles prismgen configuration loading and management.
package config

import "github.com/Faultbox/prismgen/pkg/prism"

// Config holds all prismgen settings.
type Config struct {
	// Preset is an optional prism definition file (.yaml, .yml or .toml)
	// that replaces the prism section.
	Preset  string        `yaml:"preset"`
	Prism   PrismConfig   `yaml:"prism"`
	Compute ComputeConfig `yaml:"compute"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// PrismConfig describes one prism. Summits are generated from the polygon
// settings unless Summits lists them explicitly.
type PrismConfig struct {
	PolyCount int     `yaml:"poly_count" toml:"poly_count"`
	Size      float32 `yaml:"size" toml:"size"`
	Floret    bool    `yaml:"floret" toml:"floret"`
	// AngleOffset rotates the first summit, in degrees.
	AngleOffset float32 `yaml:"angle_offset" toml:"angle_offset"`
	// Heights are per-summit heights; missing entries use Height.
	Heights []float32 `yaml:"heights" toml:"heights"`
	Height  float32   `yaml:"height" toml:"height"`
	// SingleHeight forces every summit to max(0, Height).
	SingleHeight bool           `yaml:"single_height" toml:"single_height"`
	Summits      []prism.Summit `yaml:"summits,omitempty" toml:"summits,omitempty"`
	Sampling     prism.Sampling `yaml:"sampling" toml:"sampling"`
	Slope        float32        `yaml:"slope" toml:"slope"`
	TopOffset    [2]float32     `yaml:"top_offset" toml:"top_offset"`
}

// ComputeConfig selects and tunes the execution path.
type ComputeConfig struct {
	Parallel  bool   `yaml:"parallel"`
	Workers   int    `yaml:"workers"`
	GroupSize [3]int `yaml:"group_size"`
}

// Dispatch returns the thread grid settings for the parallel path.
func (c ComputeConfig) Dispatch() prism.DispatchConfig {
	return prism.DispatchConfig{GroupSize: c.GroupSize, Workers: c.Workers}
}

// ExportConfig holds mesh output settings.
type ExportConfig struct {
	// Format is obj or stl. Empty picks it from the Output extension.
	Format string `yaml:"format"`
	Output string `yaml:"output"`
	Name   string `yaml:"name"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DefaultPrism returns a hexagonal prism of unit size and height.
func DefaultPrism() PrismConfig {
	return PrismConfig{
		PolyCount: 6,
		Size:      1,
		Height:    1,
		Sampling:  prism.Sampling{Radial: 4, Vertical: 2},
	}
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Prism: DefaultPrism(),
		Compute: ComputeConfig{
			Parallel:  false,
			Workers:   0,
			GroupSize: prism.DefaultDispatchConfig().GroupSize,
		},
		Export: ExportConfig{
			Format: "",
			Output: "prism.obj",
			Name:   "prism",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
