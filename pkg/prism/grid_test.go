package prism

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountsScenarios(t *testing.T) {
	t.Run("triangle 1x1", func(t *testing.T) {
		g := NewGrid(3, Sampling{1, 1})
		assert.Equal(t, 4, g.BaseVerticesCount())
		assert.Equal(t, 0, g.SideVerticesCount())
		assert.Equal(t, 8, g.VerticesCount())
		assert.Equal(t, 9, g.BaseTrianglesCount())
		// One side layer of three quads adds 6 triangles to the two caps.
		assert.Equal(t, 6, g.SideTrianglesCount())
		assert.Equal(t, 24, g.TrianglesCount())
		assert.Equal(t, 3, g.CapTriangles())
	})
	t.Run("square 2x1", func(t *testing.T) {
		g := NewGrid(4, Sampling{2, 1})
		assert.Equal(t, 13, g.BaseVerticesCount())
		assert.Equal(t, 0, g.SideVerticesCount())
		assert.Equal(t, 26, g.VerticesCount())
	})
}

func TestPackageCountQueries(t *testing.T) {
	s := Sampling{3, 4}
	g := NewGrid(5, s)
	assert.Equal(t, g.VerticesCount(), VerticesCount(5, s))
	assert.Equal(t, g.TrianglesCount(), TrianglesCount(5, s))
	assert.Equal(t, g.BaseVerticesCount(), BaseVerticesCount(5, s))
	assert.Equal(t, g.SideVerticesCount(), SideVerticesCount(5, s))
	// Out-of-range arguments are clamped.
	assert.Equal(t, VerticesCount(3, Sampling{1, 1}), VerticesCount(0, Sampling{0, -3}))
}

func TestCountIdentities(t *testing.T) {
	for p := 3; p <= 9; p++ {
		for sx := 1; sx <= 6; sx++ {
			for sy := 1; sy <= 6; sy++ {
				g := NewGrid(p, Sampling{sx, sy})
				assert.Equal(t, 2*g.BaseVerticesCount()+g.SideVerticesCount(), g.VerticesCount())
				assert.Equal(t, 2*g.BaseTrianglesCount()+g.SideTrianglesCount(), g.TrianglesCount())
				assert.LessOrEqual(t, g.CapTriangles(), g.BaseTrianglesCount())
			}
		}
	}
}

func TestBijection(t *testing.T) {
	for p := 3; p <= 8; p++ {
		for sx := 1; sx <= 5; sx++ {
			for sy := 1; sy <= 5; sy++ {
				g := NewGrid(p, Sampling{sx, sy})
				t.Run(fmt.Sprintf("P%d_%dx%d", p, sx, sy), func(t *testing.T) {
					require.NoError(t, g.CheckBijection())
				})
			}
		}
	}
}

func TestValidCellCountMatchesVertices(t *testing.T) {
	g := NewGrid(5, Sampling{3, 4})
	dims := g.Dims()
	valid := 0
	for z := range dims[0] {
		for y := range dims[1] {
			for x := range dims[2] {
				if g.Valid(Address{X: x, Y: y, Z: z}) {
					valid++
				}
			}
		}
	}
	assert.Equal(t, g.VerticesCount(), valid)
}

func TestNormalize(t *testing.T) {
	g := NewGrid(4, Sampling{3, 3})
	tests := []struct {
		name string
		in   Address
		want Address
	}{
		{"already valid", Address{X: 5, Y: 0, Z: 2}, Address{X: 5, Y: 0, Z: 2}},
		{"y below range", Address{X: 1, Y: -2, Z: 1}, Address{X: 1, Y: 0, Z: 1}},
		{"y above range", Address{X: 1, Y: 9, Z: 1}, Address{X: 1, Y: 3, Z: 1}},
		{"z clamped on cap", Address{X: 0, Y: 0, Z: 7}, Address{X: 0, Y: 0, Z: 3}},
		{"side layer forces rim", Address{X: 2, Y: 1, Z: 0}, Address{X: 2, Y: 1, Z: 3}},
		{"center forces x", Address{X: 6, Y: 3, Z: 0}, Address{X: 0, Y: 3, Z: 0}},
		{"x wraps", Address{X: 8, Y: 0, Z: 2}, Address{X: 0, Y: 0, Z: 2}},
		{"negative x wraps", Address{X: -1, Y: 0, Z: 2}, Address{X: 7, Y: 0, Z: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Normalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, g.Valid(got))
		})
	}
}

func TestIndexLandmarks(t *testing.T) {
	g := NewGrid(4, Sampling{2, 3})
	base := g.BaseVerticesCount() // 13
	side := g.SideVerticesCount() // 2*2*4 = 16

	assert.Equal(t, 0, g.Index(Address{Y: 0, Z: 0}))
	assert.Equal(t, 1, g.Index(Address{X: 0, Y: 0, Z: 1}))
	assert.Equal(t, 5, g.Index(Address{X: 0, Y: 0, Z: 2}))
	assert.Equal(t, base-1, g.Index(Address{X: 7, Y: 0, Z: 2}))
	assert.Equal(t, base, g.Index(Address{X: 0, Y: 1, Z: 2}))
	assert.Equal(t, base+8, g.Index(Address{X: 0, Y: 2, Z: 2}))
	assert.Equal(t, base+side, g.Index(Address{Y: 3, Z: 0}))
	assert.Equal(t, g.VerticesCount()-1, g.Index(Address{X: 7, Y: 3, Z: 2}))
	// Wrapped addresses land on the same slot.
	assert.Equal(t, g.Index(Address{X: 0, Y: 0, Z: 2}), g.Index(Address{X: 8, Y: 0, Z: 2}))
}

func TestValid(t *testing.T) {
	g := NewGrid(3, Sampling{2, 2})
	assert.True(t, g.Valid(Address{X: 0, Y: 0, Z: 0}))
	assert.False(t, g.Valid(Address{X: 1, Y: 0, Z: 0}))
	assert.True(t, g.Valid(Address{X: 5, Y: 1, Z: 2}))
	assert.False(t, g.Valid(Address{X: 0, Y: 1, Z: 1}))
	assert.False(t, g.Valid(Address{X: 6, Y: 2, Z: 2}))
	assert.False(t, g.Valid(Address{X: 0, Y: 3, Z: 0}))
	assert.False(t, g.Valid(Address{X: -1, Y: 0, Z: 1}))
}

func TestRegion(t *testing.T) {
	g := NewGrid(3, Sampling{1, 3})
	base := g.BaseVerticesCount()
	side := g.SideVerticesCount()
	assert.Equal(t, GroupBottom, g.Region(0))
	assert.Equal(t, GroupBottom, g.Region(base-1))
	assert.Equal(t, GroupSide, g.Region(base))
	assert.Equal(t, GroupSide, g.Region(base+side-1))
	assert.Equal(t, GroupTop, g.Region(base+side))
}

func TestSamplingClamped(t *testing.T) {
	assert.Equal(t, Sampling{1, 1}, Sampling{0, -3}.Clamped())
	assert.Equal(t, Sampling{4, 2}, Sampling{4, 2}.Clamped())
}
