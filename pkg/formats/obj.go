package formats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Faultbox/prismgen/pkg/mesh"
)

// WriteOBJ writes m as a Wavefront OBJ document. Each sub-mesh becomes a
// named group; faces reference position, texture and normal by the same
// 1-based index.
func WriteOBJ(w io.Writer, m *mesh.Mesh, name string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# prismgen: %d vertices, %d triangles\n", m.VertexCount(), m.TriangleCount())
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.Position[0], v.Position[1], v.Position[2])
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "vt %g %g\n", v.TexCoord[0], v.TexCoord[1])
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal[0], v.Normal[1], v.Normal[2])
	}
	for _, g := range m.Groups {
		fmt.Fprintf(bw, "g %s\n", g.Kind)
		idx := m.Indices[g.StartIndex : g.StartIndex+g.IndexCount]
		for i := 0; i+2 < len(idx); i += 3 {
			a, b, c := idx[i]+1, idx[i+1]+1, idx[i+2]+1
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		}
	}
	return bw.Flush()
}

// SaveOBJ writes m to an OBJ file, creating parent directories as needed.
func SaveOBJ(path string, m *mesh.Mesh, name string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteOBJ(f, m, name); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
