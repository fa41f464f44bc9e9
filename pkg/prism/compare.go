package prism

import (
	"fmt"
	"slices"
)

// Compare reports the first difference between two meshes. Vertex buffers
// must match exactly; triangle groups are compared as multisets since the
// parallel path emits them in no particular order.
func Compare(a, b *Result) error {
	if a.Grid != b.Grid {
		return fmt.Errorf("grids differ: %+v vs %+v", a.Grid, b.Grid)
	}
	if len(a.Vertices) != len(b.Vertices) {
		return fmt.Errorf("vertex count %d vs %d", len(a.Vertices), len(b.Vertices))
	}
	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			return fmt.Errorf("vertex %d: %v vs %v", i, a.Vertices[i], b.Vertices[i])
		}
	}
	for _, g := range Groups {
		ta, tb := sortedTriangles(a.Triangles.Get(g)), sortedTriangles(b.Triangles.Get(g))
		if len(ta) != len(tb) {
			return fmt.Errorf("%s: triangle count %d vs %d", g, len(ta), len(tb))
		}
		for i := range ta {
			if ta[i] != tb[i] {
				return fmt.Errorf("%s: triangle %v has no counterpart (got %v)", g, ta[i], tb[i])
			}
		}
	}
	return nil
}

func sortedTriangles(tris []Triangle) []Triangle {
	out := slices.Clone(tris)
	slices.SortFunc(out, func(x, y Triangle) int {
		for i := range x {
			if x[i] != y[i] {
				if x[i] < y[i] {
					return -1
				}
				return 1
			}
		}
		return 0
	})
	return out
}

// CheckTriangles verifies that every index is inside the vertex buffer and
// that cap triangles only reference their own cap's slots. Side triangles
// may reach the rim rings of both caps.
func (r *Result) CheckTriangles() error {
	n := uint32(len(r.Vertices))
	for _, g := range Groups {
		for _, t := range r.Triangles.Get(g) {
			for _, idx := range t {
				if idx >= n {
					return fmt.Errorf("%s triangle %v: index %d out of range [0, %d)", g, t, idx, n)
				}
				if g != GroupSide && r.Grid.Region(int(idx)) != g {
					return fmt.Errorf("%s triangle %v: index %d lies in the %s region", g, t, idx, r.Grid.Region(int(idx)))
				}
			}
		}
	}
	return nil
}
