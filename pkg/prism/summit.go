// Package prism builds the triangle mesh of a generalized prism: an N-sided
// (regular or floret) polygon with per-summit heights, radially subdivided
// caps and a vertically subdivided side wall.
//
// Every vertex lives at a grid address (x, y, z): z is the radial ring, y the
// vertical layer and x the position along the ring. The index scheme in
// grid.go maps each valid address to one slot of a flat vertex buffer. The
// scalar path (Prism.Recalculate) and the data-parallel path (Dispatch)
// evaluate the same per-cell formulas.
package prism

import (
	"github.com/chewxy/math32"

	vmath "github.com/Faultbox/prismgen/pkg/math"
)

// MinPolyCount is the smallest polygon the generator will build.
const MinPolyCount = 3

// DefaultSummit is used to pad summit arrays shorter than MinPolyCount.
var DefaultSummit = Summit{X: 1, Y: 1, Z: 1}

// Summit is one corner of the prism's defining polygon. X and Z give the
// planar position, Y the height of the top rim at that corner.
type Summit struct {
	X float32 `yaml:"x" toml:"x"`
	Y float32 `yaml:"y" toml:"y"`
	Z float32 `yaml:"z" toml:"z"`
}

// XZ returns the planar position.
func (s Summit) XZ() vmath.Vec2 {
	return vmath.Vec2{X: s.X, Y: s.Z}
}

// Height returns the summit's height.
func (s Summit) Height() float32 {
	return s.Y
}

// SummitOptions controls GenerateSummits.
type SummitOptions struct {
	PolyCount   int
	Size        float32
	Floret      bool
	AngleOffset float32 // radians
	// Heights gives per-summit heights. Entries past its end use
	// UniformHeight, or 1 when UniformHeight is nil.
	Heights       []float32
	UniformHeight *float32
}

// GenerateSummits lays out the polygon summits. In floret mode the summit
// count is tripled and every third summit is pulled toward the center by
// FloretFactor of the requested count.
func GenerateSummits(opts SummitOptions) []Summit {
	n := max(opts.PolyCount, MinPolyCount)
	count := n
	factor := float32(1)
	if opts.Floret {
		count = n * 3
		factor = FloretFactor(n)
	}

	summits := make([]Summit, count)
	step := 2 * math32.Pi / float32(count)
	for i := range summits {
		radius := opts.Size
		if opts.Floret && i%3 == 0 {
			radius *= factor
		}
		p := vmath.Polar(opts.AngleOffset+float32(i)*step, radius)
		summits[i] = Summit{X: p.X, Y: opts.heightAt(i), Z: p.Y}
	}
	return summits
}

func (o SummitOptions) heightAt(i int) float32 {
	if i < len(o.Heights) {
		return o.Heights[i]
	}
	if o.UniformHeight != nil {
		return *o.UniformHeight
	}
	return 1
}

// floretMaxSides is the largest n for which the closed form below stays in
// (0, 1). Larger polygons reuse its factor.
const floretMaxSides = 15

// FloretFactor returns the radius ratio applied to every third summit of an
// n-sided floret. The result is in (0, 1) for every n >= 3.
func FloretFactor(n int) float32 {
	n = min(max(n, MinPolyCount), floretMaxSides)
	fn := float32(n)
	a := math32.Pi / fn
	d := math32.Sqrt(13 - 4*math32.Sqrt(fn/2)*math32.Cos(a))
	return 1 - 1/d*(1+2*math32.Sin(a))
}

// ApplySingleHeight sets every summit's height to max(0, height) in place,
// leaving planar positions untouched.
func ApplySingleHeight(summits []Summit, height float32) {
	h := math32.Max(0, height)
	for i := range summits {
		summits[i].Y = h
	}
}

// padSummits returns a copy of summits extended with DefaultSummit up to
// MinPolyCount entries.
func padSummits(summits []Summit) []Summit {
	out := make([]Summit, max(len(summits), MinPolyCount))
	n := copy(out, summits)
	for i := n; i < len(out); i++ {
		out[i] = DefaultSummit
	}
	return out
}
