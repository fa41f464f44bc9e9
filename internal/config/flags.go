package config

import (
	"flag"
	"fmt"
	"strconv"
)

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagPreset   = flag.String("preset", "", "Path to a prism preset (.yaml or .toml)")
	flagPoly     = flag.Int("poly", 0, "Polygon summit count")
	flagRadial   = flag.Int("radial", 0, "Radial cap subdivisions")
	flagVertical = flag.Int("vertical", 0, "Vertical side subdivisions")
	flagSlope    = flag.String("slope", "", "Cap slope in [-1, 1]")
	flagFloret   = flag.Bool("floret", false, "Build a floret polygon")
	flagParallel = flag.Bool("parallel", false, "Use the data-parallel path")
	flagWorkers  = flag.Int("workers", 0, "Concurrent thread groups for the parallel path")
	flagFormat   = flag.String("format", "", "Export format (obj, stl)")
	flagOutput   = flag.String("out", "", "Export file path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagPreset != "" {
		cfg.Preset = *flagPreset
	}
	if *flagPoly > 0 {
		cfg.Prism.PolyCount = *flagPoly
		cfg.Prism.Summits = nil
	}
	if *flagRadial > 0 {
		cfg.Prism.Sampling.Radial = *flagRadial
	}
	if *flagVertical > 0 {
		cfg.Prism.Sampling.Vertical = *flagVertical
	}
	if *flagSlope != "" {
		slope, err := strconv.ParseFloat(*flagSlope, 32)
		if err != nil {
			return fmt.Errorf("invalid -slope %q: %w", *flagSlope, err)
		}
		cfg.Prism.Slope = float32(slope)
	}
	if *flagFloret {
		cfg.Prism.Floret = true
	}
	if *flagParallel {
		cfg.Compute.Parallel = true
	}
	if *flagWorkers > 0 {
		cfg.Compute.Workers = *flagWorkers
	}
	if *flagFormat != "" {
		cfg.Export.Format = *flagFormat
	}
	if *flagOutput != "" {
		cfg.Export.Output = *flagOutput
	}
	return nil
}
