package prism

import "fmt"

// Sampling is the subdivision resolution: Radial rings per cap and Vertical
// layers along the side wall. Both are at least 1 once clamped.
type Sampling struct {
	Radial   int `yaml:"radial" toml:"radial"`
	Vertical int `yaml:"vertical" toml:"vertical"`
}

// Clamped returns s with both components raised to at least 1.
func (s Sampling) Clamped() Sampling {
	return Sampling{Radial: max(s.Radial, 1), Vertical: max(s.Vertical, 1)}
}

// Address is a grid position: Z is the radial ring (0 = center, Radial =
// rim), Y the vertical layer (0 = bottom cap, Vertical = top cap) and X the
// position along ring Z.
type Address struct {
	X, Y, Z int
}

func (a Address) String() string {
	return fmt.Sprintf("(x=%d y=%d z=%d)", a.X, a.Y, a.Z)
}

// Grid holds the two parameters every index and count formula depends on.
// All methods are pure; a Grid can be shared freely between goroutines.
type Grid struct {
	PolyCount int
	Sampling  Sampling
}

// NewGrid returns a grid with polyCount and sampling clamped to legal values.
func NewGrid(polyCount int, sampling Sampling) Grid {
	return Grid{PolyCount: max(polyCount, MinPolyCount), Sampling: sampling.Clamped()}
}

// BaseVerticesCount is the vertex count of one cap: a center vertex plus
// rings of z*P vertices for z = 1..Radial.
func (g Grid) BaseVerticesCount() int {
	sx := g.Sampling.Radial
	// sx*(sx+1) is even, so the division is exact.
	return 1 + sx*(sx+1)*g.PolyCount/2
}

// SideVerticesCount is the vertex count of the interior side layers. Only
// the outer ring is replicated on them.
func (g Grid) SideVerticesCount() int {
	return (g.Sampling.Vertical - 1) * g.RimSize()
}

// VerticesCount is the size of the flat vertex buffer.
func (g Grid) VerticesCount() int {
	return 2*g.BaseVerticesCount() + g.SideVerticesCount()
}

// BaseTrianglesCount is the triangle capacity reserved per cap.
func (g Grid) BaseTrianglesCount() int {
	sx := g.Sampling.Radial
	return g.PolyCount * (1 + sx*(sx+1))
}

// SideTrianglesCount is the number of side wall triangles.
func (g Grid) SideTrianglesCount() int {
	return g.Sampling.Vertical * 2 * g.RimSize()
}

// TrianglesCount is the total triangle capacity of a mesh.
func (g Grid) TrianglesCount() int {
	return 2*g.BaseTrianglesCount() + g.SideTrianglesCount()
}

// CapTriangles is the exact number of triangles emitted per cap, P*Radial².
// It never exceeds BaseTrianglesCount.
func (g Grid) CapTriangles() int {
	sx := g.Sampling.Radial
	return g.PolyCount * sx * sx
}

// RingSize is the number of vertices on ring z of a cap.
func (g Grid) RingSize(z int) int {
	if z <= 0 {
		return 1
	}
	return z * g.PolyCount
}

// RimSize is the number of vertices on the outer ring.
func (g Grid) RimSize() int {
	return g.RingSize(g.Sampling.Radial)
}

// IsCap reports whether layer y is the bottom or top cap plane.
func (g Grid) IsCap(y int) bool {
	return y == 0 || y == g.Sampling.Vertical
}

// Normalize folds any address onto a valid one: y is clamped to the layer
// range, z is clamped on cap planes and forced to the rim on side layers,
// and x wraps around its ring.
func (g Grid) Normalize(a Address) Address {
	a.Y = clampInt(a.Y, 0, g.Sampling.Vertical)
	if g.IsCap(a.Y) {
		a.Z = clampInt(a.Z, 0, g.Sampling.Radial)
	} else {
		a.Z = g.Sampling.Radial
	}
	if a.Z == 0 {
		a.X = 0
	} else {
		a.X = wrap(a.X, a.Z*g.PolyCount)
	}
	return a
}

// Valid reports whether a is already in normal form, i.e. whether a cell of
// the dispatch grid owns a vertex.
func (g Grid) Valid(a Address) bool {
	if a.Y < 0 || a.Y > g.Sampling.Vertical {
		return false
	}
	if g.IsCap(a.Y) {
		if a.Z < 0 || a.Z > g.Sampling.Radial {
			return false
		}
	} else if a.Z != g.Sampling.Radial {
		return false
	}
	return a.X >= 0 && a.X < g.RingSize(a.Z)
}

// Index maps an address to its vertex slot. The address is normalized
// first, so any triple is accepted.
//
// The slot is the sum of three terms: the cap fan offset within a cap
// plane, the side-layer offset (all side vertices on the top plane), and
// the bottom cap size for every layer above the bottom. The bottom cap,
// side layers and top cap occupy consecutive, non-overlapping ranges.
func (g Grid) Index(a Address) int {
	a = g.Normalize(a)
	return g.capOffset(a) + g.sideOffset(a) + g.baseOffset(a)
}

func (g Grid) capOffset(a Address) int {
	if !g.IsCap(a.Y) || a.Z == 0 {
		return 0
	}
	// 1 skips the center vertex; rings 1..z-1 hold P*z*(z-1)/2 vertices.
	return 1 + g.PolyCount*a.Z*(a.Z-1)/2 + a.X
}

func (g Grid) sideOffset(a Address) int {
	switch {
	case a.Y == g.Sampling.Vertical && a.Y > 0:
		return g.SideVerticesCount()
	case a.Y > 0:
		return (a.Y-1)*a.Z*g.PolyCount + a.X
	default:
		return 0
	}
}

func (g Grid) baseOffset(a Address) int {
	if a.Y > 0 {
		return g.BaseVerticesCount()
	}
	return 0
}

// Region returns which part of the vertex buffer slot belongs to.
func (g Grid) Region(slot int) Group {
	switch base := g.BaseVerticesCount(); {
	case slot < base:
		return GroupBottom
	case slot < base+g.SideVerticesCount():
		return GroupSide
	default:
		return GroupTop
	}
}

// Dims returns the dispatch grid extents along z, y and x.
func (g Grid) Dims() [3]int {
	return [3]int{g.Sampling.Radial + 1, g.Sampling.Vertical + 1, g.RimSize()}
}

// ForEachCell calls fn for every valid address, bottom layer first, rings
// from the center outward.
func (g Grid) ForEachCell(fn func(Address)) {
	for y := 0; y <= g.Sampling.Vertical; y++ {
		z0 := 0
		if !g.IsCap(y) {
			z0 = g.Sampling.Radial
		}
		for z := z0; z <= g.Sampling.Radial; z++ {
			for x := range g.RingSize(z) {
				fn(Address{X: x, Y: y, Z: z})
			}
		}
	}
}

// CheckBijection verifies that the valid addresses map one-to-one onto
// [0, VerticesCount).
func (g Grid) CheckBijection() error {
	total := g.VerticesCount()
	seen := make([]Address, total)
	hit := make([]bool, total)
	var err error
	g.ForEachCell(func(a Address) {
		if err != nil {
			return
		}
		slot := g.Index(a)
		switch {
		case slot < 0 || slot >= total:
			err = fmt.Errorf("address %s maps to slot %d outside [0, %d)", a, slot, total)
		case hit[slot]:
			err = fmt.Errorf("addresses %s and %s both map to slot %d", seen[slot], a, slot)
		default:
			hit[slot] = true
			seen[slot] = a
		}
	})
	if err != nil {
		return err
	}
	for slot, ok := range hit {
		if !ok {
			return fmt.Errorf("slot %d is not reached by any address", slot)
		}
	}
	return nil
}

// VerticesCount returns the vertex buffer size for a polygon and sampling.
func VerticesCount(polyCount int, sampling Sampling) int {
	return NewGrid(polyCount, sampling).VerticesCount()
}

// TrianglesCount returns the triangle capacity for a polygon and sampling.
func TrianglesCount(polyCount int, sampling Sampling) int {
	return NewGrid(polyCount, sampling).TrianglesCount()
}

// BaseVerticesCount returns the per-cap vertex count.
func BaseVerticesCount(polyCount int, sampling Sampling) int {
	return NewGrid(polyCount, sampling).BaseVerticesCount()
}

// SideVerticesCount returns the interior side layer vertex count.
func SideVerticesCount(polyCount int, sampling Sampling) int {
	return NewGrid(polyCount, sampling).SideVerticesCount()
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// wrap returns v mod n in [0, n).
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
