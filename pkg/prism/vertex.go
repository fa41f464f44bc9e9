package prism

import (
	vmath "github.com/Faultbox/prismgen/pkg/math"
)

// CenterHeight picks the cap's interior height from the summit heights.
// Slope -1 selects the minimum, 0 the mean and 1 the maximum, with linear
// blending between neighbouring anchors.
func CenterHeight(summits []Summit, slope float32) float32 {
	if len(summits) == 0 {
		return 0
	}
	lo, hi := summits[0].Y, summits[0].Y
	var sum float32
	for _, s := range summits {
		lo = min(lo, s.Y)
		hi = max(hi, s.Y)
		sum += s.Y
	}
	mean := sum / float32(len(summits))

	slope = vmath.Clamp(slope, -1, 1)
	if slope < 0 {
		return vmath.Lerp(mean, lo, -slope)
	}
	return vmath.Lerp(mean, hi, slope)
}

// synth evaluates vertex positions for one set of inputs.
type synth struct {
	grid    Grid
	summits []Summit
	center  float32
}

func newSynth(grid Grid, summits []Summit, slope float32) synth {
	return synth{grid: grid, summits: summits, center: CenterHeight(summits, slope)}
}

// position returns the vertex at a normalized address.
//
// Off-center vertices lie on the straight segment between the two summits
// of their sector, scaled toward the center by z/Radial. Height blends the
// edge height into the center height as the ring shrinks, then scales with
// the layer so the side wall runs linearly from the bottom plane to the top
// profile.
func (s synth) position(a Address) vmath.Vec3 {
	yRatio := float32(a.Y) / float32(s.grid.Sampling.Vertical)
	if a.Z == 0 {
		return vmath.Vec3{Y: yRatio * s.center}
	}

	sector := a.X / a.Z
	next := (sector + 1) % s.grid.PolyCount
	edge := float32(a.X-a.Z*sector) / float32(a.Z)
	radial := float32(a.Z) / float32(s.grid.Sampling.Radial)

	from, to := s.summits[sector], s.summits[next]
	planar := from.XZ().Lerp(to.XZ(), edge).Scale(radial)
	rim := vmath.Lerp(from.Y, to.Y, edge)
	height := yRatio * vmath.Lerp(rim, s.center, 1-radial)
	return vmath.FromXZ(planar, height)
}
