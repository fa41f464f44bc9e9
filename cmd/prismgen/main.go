// prismgen builds generalized prism meshes and exports them as OBJ or STL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/prismgen/internal/build"
	"github.com/Faultbox/prismgen/internal/config"
	"github.com/Faultbox/prismgen/internal/logger"
	"github.com/Faultbox/prismgen/internal/preset"
	"github.com/Faultbox/prismgen/internal/watch"
	"github.com/Faultbox/prismgen/pkg/prism"
)

func main() {
	flag.Usage = printUsage

	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	b, err := build.New(cfg, logger.Named("build"))
	if err != nil {
		logger.Error("failed to create builder", zap.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := "build"
	args := config.Args()
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	switch command {
	case "build":
		err = cmdBuild(ctx, b)
	case "info":
		err = cmdInfo(b)
	case "verify":
		err = cmdVerify(ctx, b)
	case "watch":
		err = cmdWatch(ctx, cfg, b)
	case "preset":
		err = cmdPreset(b, args)
	case "config":
		err = cmdConfig(cfg, args)
	case "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		logger.Error(command+" failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `prismgen - generalized prism mesh generator

Usage:
  prismgen [flags] [command]

Commands:
  build              Compute the prism and export it (default)
  info               Print counts and summits for the current settings
  verify             Check the index scheme and scalar/parallel agreement
  watch              Rebuild whenever the -preset file changes
  preset <file>      Write the resolved prism settings to a .yaml or .toml file
  config [file]      Write the resolved configuration (default: user config dir)

Examples:
  prismgen -poly 8 -radial 4 -vertical 3 -out octagon.obj
  prismgen -preset star.toml -format stl -out star.stl build
  prismgen -poly 5 -floret -parallel verify
  prismgen -preset star.toml watch
  prismgen -poly 12 -radial 6 config

Flags:`)
	flag.PrintDefaults()
}

func cmdBuild(ctx context.Context, b *build.Builder) error {
	out, err := b.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%d vertices, %d triangles in %s\n",
		out.Mesh.VertexCount(), out.Mesh.TriangleCount(), out.Elapsed)
	return nil
}

func cmdInfo(b *build.Builder) error {
	settings, err := b.Settings()
	if err != nil {
		return err
	}
	in := build.Inputs(settings).Normalized()
	grid := in.Grid()

	fmt.Printf("Summits:    %d\n", grid.PolyCount)
	fmt.Printf("Sampling:   radial %d, vertical %d\n", grid.Sampling.Radial, grid.Sampling.Vertical)
	fmt.Printf("Slope:      %g (center height %g)\n", in.Slope, prism.CenterHeight(in.Summits, in.Slope))
	fmt.Println()
	fmt.Printf("Vertices:   %d (cap %d, side layers %d)\n",
		grid.VerticesCount(), grid.BaseVerticesCount(), grid.SideVerticesCount())
	fmt.Printf("Triangles:  %d emitted, %d reserved (cap %d, side %d)\n",
		2*grid.CapTriangles()+grid.SideTrianglesCount(), grid.TrianglesCount(),
		grid.CapTriangles(), grid.SideTrianglesCount())
	fmt.Println()
	fmt.Println("  #        x        y        z")
	for i, s := range in.Summits {
		fmt.Printf("%3d %8.4f %8.4f %8.4f\n", i, s.X, s.Y, s.Z)
	}
	return nil
}

func cmdVerify(ctx context.Context, b *build.Builder) error {
	if err := b.Verify(ctx); err != nil {
		return err
	}
	fmt.Println("OK")
	return nil
}

func cmdWatch(ctx context.Context, cfg *config.Config, b *build.Builder) error {
	if cfg.Preset == "" {
		return errors.New("watch needs a -preset file")
	}

	rebuild := func(ctx context.Context) error {
		_, err := b.Run(ctx)
		return err
	}
	// A broken preset at startup is reported but does not stop the watch.
	if err := rebuild(ctx); err != nil {
		logger.Warn("initial build failed", zap.Error(err))
	}

	w, err := watch.New(cfg.Preset, rebuild, watch.WithLogger(logger.Named("watch")))
	if err != nil {
		return err
	}
	defer w.Close()
	return w.Run(ctx)
}

func cmdPreset(b *build.Builder, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: prismgen preset <file.yaml|file.toml>")
	}
	settings, err := b.Settings()
	if err != nil {
		return err
	}
	if err := preset.Save(args[0], settings); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", args[0])
	return nil
}

func cmdConfig(cfg *config.Config, args []string) error {
	var path string
	var err error
	if len(args) > 0 {
		path, err = args[0], cfg.SaveTo(args[0])
	} else {
		path, err = cfg.Save()
	}
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
