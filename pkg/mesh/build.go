package mesh

import (
	"github.com/chewxy/math32"

	vmath "github.com/Faultbox/prismgen/pkg/math"
	"github.com/Faultbox/prismgen/pkg/prism"
)

// Build creates a mesh from a prism result. Vertex slots are preserved, so
// index i of the mesh is grid slot i. Indices are laid out bottom, side,
// top, each described by a Group.
func Build(res *prism.Result) *Mesh {
	vertices := make([]Vertex, len(res.Vertices))
	indices := make([]uint32, 0, 3*res.Triangles.Len())
	groups := make([]Group, 0, len(prism.Groups))

	bounds := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for i, p := range res.Vertices {
		vertices[i].Position = [3]float32{p.X, p.Y, p.Z}
		updateBounds(&bounds, vertices[i].Position)
	}
	if len(vertices) == 0 {
		bounds = Bounds{}
	}

	for _, kind := range prism.Groups {
		tris := res.Triangles.Get(kind)
		if len(tris) == 0 {
			continue
		}
		groups = append(groups, Group{
			Kind:       kind,
			StartIndex: int32(len(indices)),
			IndexCount: int32(3 * len(tris)),
		})
		for _, t := range tris {
			indices = append(indices, t[0], t[1], t[2])
		}
	}

	AccumulateNormals(vertices, indices)
	PlanarUV(vertices, bounds)

	return &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Groups:   groups,
		Bounds:   bounds,
	}
}

// AccumulateNormals sets each vertex normal to the normalized sum of the
// area-weighted face normals of the triangles using it. Vertices used by no
// triangle get +Y.
func AccumulateNormals(vertices []Vertex, indices []uint32) {
	sums := make([]vmath.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		a := toVec(vertices[indices[i]].Position)
		b := toVec(vertices[indices[i+1]].Position)
		c := toVec(vertices[indices[i+2]].Position)
		n := b.Sub(a).Cross(c.Sub(a))
		for _, idx := range indices[i : i+3] {
			sums[idx] = sums[idx].Add(n)
		}
	}
	for i, s := range sums {
		n := s.Normalize()
		if n == (vmath.Vec3{}) {
			n = vmath.Vec3{Y: 1}
		}
		vertices[i].Normal = [3]float32{n.X, n.Y, n.Z}
	}
}

// PlanarUV projects vertices onto the XZ plane and maps the bounds to
// [0, 1]. A flat axis maps to 0.
func PlanarUV(vertices []Vertex, b Bounds) {
	size := b.Size()
	for i := range vertices {
		p := vertices[i].Position
		vertices[i].TexCoord = [2]float32{
			ratio(p[0]-b.Min[0], size[0]),
			ratio(p[2]-b.Min[2], size[2]),
		}
	}
}

func ratio(d, span float32) float32 {
	if math32.Abs(span) < 1e-6 {
		return 0
	}
	return d / span
}

func toVec(p [3]float32) vmath.Vec3 {
	return vmath.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := range 3 {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}
