// Package mesh turns prism generator output into a renderable mesh with
// normals, a planar UV pair and per-sub-mesh index ranges.
package mesh

import "github.com/Faultbox/prismgen/pkg/prism"

// Vertex is one mesh vertex with all attributes.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Group is a contiguous range of the index buffer belonging to one
// sub-mesh.
type Group struct {
	Kind       prism.Group
	StartIndex int32
	IndexCount int32
}

// Mesh holds the complete mesh data ready for upload or export.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Groups   []Group
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Size returns the extent along each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty reports whether the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// GroupIndices returns the index slice of the given sub-mesh, or nil when
// the mesh has no such group.
func (m *Mesh) GroupIndices(kind prism.Group) []uint32 {
	for _, g := range m.Groups {
		if g.Kind == kind {
			return m.Indices[g.StartIndex : g.StartIndex+g.IndexCount]
		}
	}
	return nil
}
