package prism

import (
	"context"
	"errors"

	"go.uber.org/zap"

	vmath "github.com/Faultbox/prismgen/pkg/math"
)

var (
	// ErrNilSummits is returned by SetInputs when no summit array is given.
	ErrNilSummits = errors.New("prism: summit array is nil")
	// ErrNoInputs is returned by Recalculate before any inputs were accepted.
	ErrNoInputs = errors.New("prism: inputs not set")
)

// Inputs is everything a recomputation depends on.
type Inputs struct {
	Summits []Summit
	// TopOffset is carried with the inputs but does not move any vertex.
	TopOffset vmath.Vec2
	Sampling  Sampling
	Slope     float32
}

// Normalized returns a copy with summits padded to MinPolyCount, sampling
// clamped to at least 1 and slope clamped to [-1, 1].
func (in Inputs) Normalized() Inputs {
	in.Summits = padSummits(in.Summits)
	in.Sampling = in.Sampling.Clamped()
	in.Slope = vmath.Clamp(in.Slope, -1, 1)
	return in
}

// Grid returns the index grid for the inputs.
func (in Inputs) Grid() Grid {
	return NewGrid(len(in.Summits), in.Sampling)
}

// Result is one complete mesh: positions at their grid slots plus the
// three sub-mesh index arrays.
type Result struct {
	Grid      Grid
	Vertices  []vmath.Vec3
	Triangles Triangles
}

// newResult allocates buffers sized exactly for grid.
func newResult(grid Grid) *Result {
	return &Result{
		Grid:     grid,
		Vertices: make([]vmath.Vec3, grid.VerticesCount()),
		Triangles: Triangles{
			Bottom: make([]Triangle, grid.CapTriangles()),
			Side:   make([]Triangle, grid.SideTrianglesCount()),
			Top:    make([]Triangle, grid.CapTriangles()),
		},
	}
}

// Compute builds the mesh for in on the calling goroutine. Inputs are
// normalized first. Buffers are allocated at their final size and every
// element is written by index.
func Compute(in Inputs) *Result {
	in = in.Normalized()
	grid := in.Grid()
	syn := newSynth(grid, in.Summits, in.Slope)
	res := newResult(grid)

	grid.ForEachCell(func(a Address) {
		res.Vertices[grid.Index(a)] = syn.position(a)
	})

	sx, sy := grid.Sampling.Radial, grid.Sampling.Vertical
	for z := 1; z <= sx; z++ {
		for x := range grid.RingSize(z) {
			off := grid.capTriangleOffset(z, x)
			tris, n := grid.capCell(0, z, x)
			copy(res.Triangles.Bottom[off:off+n], tris[:n])
			tris, n = grid.capCell(sy, z, x)
			copy(res.Triangles.Top[off:off+n], tris[:n])
		}
	}
	for y := 1; y <= sy; y++ {
		for x := range grid.RimSize() {
			off := grid.sideTriangleOffset(y, x)
			quad := grid.sideCell(y, x)
			res.Triangles.Side[off] = quad[0]
			res.Triangles.Side[off+1] = quad[1]
		}
	}
	return res
}

// Prism holds the current inputs and the last computed mesh. Inputs only
// take effect on the next Recalculate; nothing is recomputed implicitly.
// A Prism is not safe for concurrent mutation.
type Prism struct {
	log    *zap.Logger
	inputs Inputs
	ready  bool
	result *Result
}

// Option configures a Prism.
type Option func(*Prism)

// WithLogger sets the logger used for input validation and recompute
// messages.
func WithLogger(l *zap.Logger) Option {
	return func(p *Prism) {
		if l != nil {
			p.log = l
		}
	}
}

// New returns a Prism with no inputs.
func New(opts ...Option) *Prism {
	p := &Prism{log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetInputs validates and stores new inputs. A nil summit array is
// rejected with ErrNilSummits and leaves the previous inputs and mesh
// untouched. Out-of-range values are clamped without error.
func (p *Prism) SetInputs(summits []Summit, topOffset vmath.Vec2, sampling Sampling, slope float32) error {
	if summits == nil {
		p.log.Error("rejecting nil summit array")
		return ErrNilSummits
	}

	in := Inputs{
		Summits:   summits,
		TopOffset: topOffset,
		Sampling:  sampling,
		Slope:     slope,
	}.Normalized()

	if len(summits) < MinPolyCount {
		p.log.Debug("padded summits", zap.Int("given", len(summits)), zap.Int("polyCount", len(in.Summits)))
	}
	if in.Sampling != sampling {
		p.log.Debug("clamped sampling",
			zap.Int("radial", in.Sampling.Radial), zap.Int("vertical", in.Sampling.Vertical))
	}
	if in.Slope != slope {
		p.log.Debug("clamped slope", zap.Float32("given", slope), zap.Float32("slope", in.Slope))
	}

	p.inputs = in
	p.ready = true
	return nil
}

// Inputs returns a copy of the current inputs.
func (p *Prism) Inputs() Inputs {
	in := p.inputs
	in.Summits = append([]Summit(nil), in.Summits...)
	return in
}

// Summits returns a copy of the current summits.
func (p *Prism) Summits() []Summit { return p.Inputs().Summits }

// PolyCount returns the number of summits, at least MinPolyCount once
// inputs are set.
func (p *Prism) PolyCount() int { return len(p.inputs.Summits) }

// Sampling returns the clamped sampling.
func (p *Prism) Sampling() Sampling { return p.inputs.Sampling }

// Slope returns the clamped slope.
func (p *Prism) Slope() float32 { return p.inputs.Slope }

// TopOffset returns the stored top offset.
func (p *Prism) TopOffset() vmath.Vec2 { return p.inputs.TopOffset }

// Grid returns the index grid for the current inputs.
func (p *Prism) Grid() Grid { return p.inputs.Grid() }

// Result returns the last computed mesh, or nil.
func (p *Prism) Result() *Result { return p.result }

// Recalculate rebuilds the whole mesh from the current inputs.
func (p *Prism) Recalculate() (*Result, error) {
	if !p.ready {
		return nil, ErrNoInputs
	}
	res := Compute(p.inputs)
	p.result = res
	p.log.Debug("recalculated",
		zap.Int("vertices", len(res.Vertices)),
		zap.Int("triangles", res.Triangles.Len()))
	return res, nil
}

// RecalculateParallel rebuilds the whole mesh on the data-parallel path.
// On error the previous mesh is kept.
func (p *Prism) RecalculateParallel(ctx context.Context, cfg DispatchConfig) (*Result, error) {
	if !p.ready {
		return nil, ErrNoInputs
	}
	res, err := Dispatch(ctx, p.inputs, cfg)
	if err != nil {
		p.log.Error("parallel recalculation failed", zap.Error(err))
		return nil, err
	}
	p.result = res
	p.log.Debug("recalculated in parallel",
		zap.Int("vertices", len(res.Vertices)),
		zap.Int("triangles", res.Triangles.Len()))
	return res, nil
}
