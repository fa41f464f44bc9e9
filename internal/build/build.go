// Package build owns a prism and drives it from configuration: it resolves
// the summits, applies inputs, recomputes on request and exports the mesh.
package build

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/prismgen/internal/config"
	"github.com/Faultbox/prismgen/internal/preset"
	"github.com/Faultbox/prismgen/pkg/formats"
	vmath "github.com/Faultbox/prismgen/pkg/math"
	"github.com/Faultbox/prismgen/pkg/mesh"
	"github.com/Faultbox/prismgen/pkg/prism"
)

// Output is the product of one rebuild.
type Output struct {
	Result  *prism.Result
	Mesh    *mesh.Mesh
	Elapsed time.Duration
}

// Builder rebuilds a single prism. Nothing is recomputed until Rebuild is
// called. A Builder is not safe for concurrent use.
type Builder struct {
	cfg   *config.Config
	log   *zap.Logger
	prism *prism.Prism
}

// New creates a builder for cfg.
func New(cfg *config.Config, log *zap.Logger) (*Builder, error) {
	if cfg == nil {
		return nil, errors.New("build: nil config")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{
		cfg:   cfg,
		log:   log,
		prism: prism.New(prism.WithLogger(log.Named("prism"))),
	}, nil
}

// Prism returns the owned prism.
func (b *Builder) Prism() *prism.Prism {
	return b.prism
}

// Settings returns the prism section with the preset file, if any, applied.
// The preset is re-read on every call.
func (b *Builder) Settings() (config.PrismConfig, error) {
	if b.cfg.Preset == "" {
		return b.cfg.Prism, nil
	}
	p, err := preset.Load(b.cfg.Preset, b.cfg.Prism)
	if err != nil {
		return b.cfg.Prism, fmt.Errorf("failed to load preset: %w", err)
	}
	return p, nil
}

// Summits resolves the summit array for p. Explicit summits are copied;
// otherwise they are generated from the polygon settings. SingleHeight
// overrides every height.
func Summits(p config.PrismConfig) []prism.Summit {
	var summits []prism.Summit
	if len(p.Summits) > 0 {
		summits = append([]prism.Summit(nil), p.Summits...)
	} else {
		height := p.Height
		summits = prism.GenerateSummits(prism.SummitOptions{
			PolyCount:     p.PolyCount,
			Size:          p.Size,
			Floret:        p.Floret,
			AngleOffset:   p.AngleOffset * math32.Pi / 180,
			Heights:       p.Heights,
			UniformHeight: &height,
		})
	}
	if p.SingleHeight {
		prism.ApplySingleHeight(summits, p.Height)
	}
	return summits
}

// Inputs converts p into prism inputs.
func Inputs(p config.PrismConfig) prism.Inputs {
	return prism.Inputs{
		Summits:   Summits(p),
		TopOffset: vmath.Vec2{X: p.TopOffset[0], Y: p.TopOffset[1]},
		Sampling:  p.Sampling,
		Slope:     p.Slope,
	}
}

// Rebuild applies the current settings to the prism and recomputes it on
// the configured path. On error the prism keeps its previous mesh.
func (b *Builder) Rebuild(ctx context.Context) (*Output, error) {
	settings, err := b.Settings()
	if err != nil {
		return nil, err
	}
	in := Inputs(settings)
	if err := b.prism.SetInputs(in.Summits, in.TopOffset, in.Sampling, in.Slope); err != nil {
		return nil, fmt.Errorf("failed to set inputs: %w", err)
	}

	start := time.Now()
	var res *prism.Result
	if b.cfg.Compute.Parallel {
		res, err = b.prism.RecalculateParallel(ctx, b.cfg.Compute.Dispatch())
	} else {
		res, err = b.prism.Recalculate()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to recalculate: %w", err)
	}
	out := &Output{
		Result:  res,
		Mesh:    mesh.Build(res),
		Elapsed: time.Since(start),
	}

	b.log.Info("rebuilt prism",
		zap.Int("polyCount", b.prism.PolyCount()),
		zap.Int("radial", res.Grid.Sampling.Radial),
		zap.Int("vertical", res.Grid.Sampling.Vertical),
		zap.Bool("parallel", b.cfg.Compute.Parallel),
		zap.Int("vertices", out.Mesh.VertexCount()),
		zap.Int("triangles", out.Mesh.TriangleCount()),
		zap.Duration("elapsed", out.Elapsed),
	)
	return out, nil
}

// Format resolves the export format, falling back to the output extension
// when none is configured.
func (b *Builder) Format() (formats.Format, error) {
	if b.cfg.Export.Format != "" {
		return formats.ParseFormat(b.cfg.Export.Format)
	}
	return formats.FormatFromPath(b.cfg.Export.Output)
}

// Export writes m to the configured output and returns the path written.
func (b *Builder) Export(m *mesh.Mesh) (string, error) {
	format, err := b.Format()
	if err != nil {
		return "", err
	}
	path := b.cfg.Export.Output
	if err := formats.Save(path, format, m, b.cfg.Export.Name); err != nil {
		return "", fmt.Errorf("failed to export %s: %w", format, err)
	}
	b.log.Info("exported mesh", zap.String("path", path), zap.String("format", string(format)))
	return path, nil
}

// Run rebuilds and exports in one step.
func (b *Builder) Run(ctx context.Context) (*Output, error) {
	out, err := b.Rebuild(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := b.Export(out.Mesh); err != nil {
		return out, err
	}
	return out, nil
}

// Verify checks the current settings end to end: the index scheme is a
// bijection, every triangle references a valid slot, and the scalar and
// parallel paths agree. All failures are reported together.
func (b *Builder) Verify(ctx context.Context) error {
	settings, err := b.Settings()
	if err != nil {
		return err
	}
	in := Inputs(settings).Normalized()
	grid := in.Grid()

	var errs error
	if err := grid.CheckBijection(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("index scheme: %w", err))
	}

	scalar := prism.Compute(in)
	if err := scalar.CheckTriangles(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("scalar triangles: %w", err))
	}

	parallel, err := prism.Dispatch(ctx, in, b.cfg.Compute.Dispatch())
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("parallel dispatch: %w", err))
	} else if err := prism.Compare(scalar, parallel); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("scalar and parallel disagree: %w", err))
	}

	if errs != nil {
		b.log.Warn("verification failed", zap.Int("failures", len(multierr.Errors(errs))))
		return errs
	}
	b.log.Info("verified",
		zap.Int("vertices", grid.VerticesCount()),
		zap.Int("triangles", scalar.Triangles.Len()))
	return nil
}
