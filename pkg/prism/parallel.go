package prism

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	vmath "github.com/Faultbox/prismgen/pkg/math"
)

// ErrBufferOverflow is returned when a kernel appends past a triangle
// buffer's capacity.
var ErrBufferOverflow = errors.New("prism: triangle buffer overflow")

// DispatchConfig shapes the thread grid of the data-parallel path.
type DispatchConfig struct {
	// GroupSize is the number of cells per thread group along z, y and x.
	GroupSize [3]int `yaml:"group_size" toml:"group_size"`
	// Workers bounds how many thread groups run at once. Zero or less
	// means GOMAXPROCS.
	Workers int `yaml:"workers" toml:"workers"`
}

// DefaultDispatchConfig returns a 4x4x8 group with one worker per CPU.
func DefaultDispatchConfig() DispatchConfig {
	return DispatchConfig{GroupSize: [3]int{4, 4, 8}}
}

// appendBuffer is an append-only triangle buffer with a fixed capacity.
// Concurrent appends land in unspecified order.
type appendBuffer struct {
	data []Triangle
	n    atomic.Int64
}

func newAppendBuffer(capacity int) *appendBuffer {
	return &appendBuffer{data: make([]Triangle, capacity)}
}

func (b *appendBuffer) append(t Triangle) error {
	i := b.n.Add(1) - 1
	if i >= int64(len(b.data)) {
		return ErrBufferOverflow
	}
	b.data[i] = t
	return nil
}

func (b *appendBuffer) slice() []Triangle {
	n := min(int(b.n.Load()), len(b.data))
	return b.data[:n]
}

// kernel evaluates one cell of the dispatch grid. It reads only the shared
// inputs and the cell's own coordinates.
type kernel struct {
	grid Grid
	syn  synth
	out  *Result
	bufs [3]*appendBuffer
}

func (k *kernel) run(a Address) error {
	g := k.grid
	if !g.Valid(a) {
		return nil
	}
	k.out.Vertices[g.Index(a)] = k.syn.position(a)

	if g.IsCap(a.Y) && a.Z > 0 {
		buf := k.bufs[GroupBottom]
		if a.Y == g.Sampling.Vertical {
			buf = k.bufs[GroupTop]
		}
		tris, n := g.capCell(a.Y, a.Z, a.X)
		for _, t := range tris[:n] {
			if err := buf.append(t); err != nil {
				return fmt.Errorf("cap cell %s: %w", a, err)
			}
		}
	}
	if a.Y > 0 && a.Z == g.Sampling.Radial {
		for _, t := range g.sideCell(a.Y, a.X) {
			if err := k.bufs[GroupSide].append(t); err != nil {
				return fmt.Errorf("side cell %s: %w", a, err)
			}
		}
	}
	return nil
}

// Dispatch builds the mesh for in by running the per-cell kernel over a
// thread grid covering [0,Radial] x [0,Vertical] x [0,Radial*P). Thread
// groups run concurrently. The result matches Compute except for the order
// of triangles within each group.
func Dispatch(ctx context.Context, in Inputs, cfg DispatchConfig) (*Result, error) {
	in = in.Normalized()
	grid := in.Grid()

	gs := cfg.GroupSize
	for i := range gs {
		gs[i] = max(gs[i], 1)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := &Result{Grid: grid, Vertices: make([]vmath.Vec3, grid.VerticesCount())}
	k := &kernel{
		grid: grid,
		syn:  newSynth(grid, in.Summits, in.Slope),
		out:  out,
		bufs: [3]*appendBuffer{
			GroupBottom: newAppendBuffer(grid.BaseTrianglesCount()),
			GroupSide:   newAppendBuffer(grid.SideTrianglesCount()),
			GroupTop:    newAppendBuffer(grid.BaseTrianglesCount()),
		},
	}

	dims := grid.Dims()
	var groups [3]int
	for i := range groups {
		groups[i] = (dims[i] + gs[i] - 1) / gs[i]
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for gz := range groups[0] {
		for gy := range groups[1] {
			for gx := range groups[2] {
				eg.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					for tz := range gs[0] {
						for ty := range gs[1] {
							for tx := range gs[2] {
								a := Address{
									X: gx*gs[2] + tx,
									Y: gy*gs[1] + ty,
									Z: gz*gs[0] + tz,
								}
								if err := k.run(a); err != nil {
									return err
								}
							}
						}
					}
					return nil
				})
			}
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out.Triangles = Triangles{
		Bottom: k.bufs[GroupBottom].slice(),
		Side:   k.bufs[GroupSide].slice(),
		Top:    k.bufs[GroupTop].slice(),
	}
	return out, nil
}
