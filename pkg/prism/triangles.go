package prism

// Group tags a triangle with the sub-mesh it belongs to.
type Group uint8

const (
	GroupBottom Group = iota
	GroupSide
	GroupTop
)

// Groups lists every sub-mesh in buffer order.
var Groups = [...]Group{GroupBottom, GroupSide, GroupTop}

func (g Group) String() string {
	switch g {
	case GroupBottom:
		return "bottom"
	case GroupSide:
		return "side"
	case GroupTop:
		return "top"
	default:
		return "unknown"
	}
}

// Triangle holds three vertex slots, wound counter-clockwise when seen from
// outside the solid.
type Triangle [3]uint32

// Triangles holds the index arrays of the three sub-meshes.
type Triangles struct {
	Bottom []Triangle
	Side   []Triangle
	Top    []Triangle
}

// Get returns the triangles of one group.
func (t *Triangles) Get(g Group) []Triangle {
	switch g {
	case GroupBottom:
		return t.Bottom
	case GroupSide:
		return t.Side
	case GroupTop:
		return t.Top
	}
	return nil
}

// Len returns the total triangle count.
func (t *Triangles) Len() int {
	return len(t.Bottom) + len(t.Side) + len(t.Top)
}

func (g Grid) slot(x, y, z int) uint32 {
	return uint32(g.Index(Address{X: x, Y: y, Z: z}))
}

// capCell returns the triangles owned by outer-ring position x of ring z
// (z >= 1) on cap plane y. Each position owns the triangle spanning its
// outer edge, plus a second one toward the inner ring while the inner ring
// still has an edge left in the current sector.
func (g Grid) capCell(y, z, x int) (tris [2]Triangle, n int) {
	sector, s := x/z, x%z
	dz := z - 1
	inner := sector*dz + s

	o0 := g.slot(x, y, z)
	o1 := g.slot(x+1, y, z)
	i0 := g.slot(inner, y, z-1)

	top := y == g.Sampling.Vertical
	if top {
		tris[0] = Triangle{o0, i0, o1}
	} else {
		tris[0] = Triangle{o0, o1, i0}
	}
	n = 1
	if s < dz {
		i1 := g.slot(inner+1, y, z-1)
		if top {
			tris[1] = Triangle{o1, i0, i1}
		} else {
			tris[1] = Triangle{o1, i1, i0}
		}
		n = 2
	}
	return tris, n
}

// capTriangleOffset is where capCell(_, z, x) writes within its cap's
// triangle array: rings 1..z-1 emit P*(z-1)² triangles and each full
// sector of ring z emits 2z-1.
func (g Grid) capTriangleOffset(z, x int) int {
	sector, s := x/z, x%z
	return g.PolyCount*(z-1)*(z-1) + sector*(2*z-1) + 2*s
}

// sideCell returns the quad between layers y-1 and y (y >= 1) at rim
// position x.
func (g Grid) sideCell(y, x int) [2]Triangle {
	rz := g.Sampling.Radial
	a := g.slot(x, y-1, rz)
	b := g.slot(x+1, y-1, rz)
	c := g.slot(x, y, rz)
	d := g.slot(x+1, y, rz)
	return [2]Triangle{{a, c, b}, {b, c, d}}
}

func (g Grid) sideTriangleOffset(y, x int) int {
	return 2 * ((y-1)*g.RimSize() + x)
}
