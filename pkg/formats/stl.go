package formats

import (
	"os"
	"path/filepath"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/Faultbox/prismgen/pkg/mesh"
)

// Triangles converts the indexed mesh into the triangle soup sdfx renders
// and exports.
func Triangles(m *mesh.Mesh) []*sdf.Triangle3 {
	out := make([]*sdf.Triangle3, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		out = append(out, &sdf.Triangle3{
			toV3(m.Vertices[m.Indices[i]].Position),
			toV3(m.Vertices[m.Indices[i+1]].Position),
			toV3(m.Vertices[m.Indices[i+2]].Position),
		})
	}
	return out
}

// SaveSTL writes m to a binary STL file, creating parent directories as
// needed. STL has no vertex sharing or groups, so only positions survive.
func SaveSTL(path string, m *mesh.Mesh) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return render.SaveSTL(path, Triangles(m))
}

func toV3(p [3]float32) v3.Vec {
	return v3.Vec{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
}
