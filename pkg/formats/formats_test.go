package formats

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/prismgen/pkg/mesh"
	"github.com/Faultbox/prismgen/pkg/prism"
)

func testMesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	summits := prism.GenerateSummits(prism.SummitOptions{PolyCount: 3, Size: 1})
	return mesh.Build(prism.Compute(prism.Inputs{
		Summits:  summits,
		Sampling: prism.Sampling{Radial: 1, Vertical: 1},
	}))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"obj", FormatOBJ, false},
		{"OBJ", FormatOBJ, false},
		{".stl", FormatSTL, false},
		{"ply", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Errorf("expected ErrUnknownFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("out/prism.STL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != FormatSTL {
		t.Errorf("expected stl, got %q", f)
	}
}

func TestWriteOBJ(t *testing.T) {
	m := testMesh(t)
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m, "tri"); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	counts := map[string]int{}
	var groups []string
	var firstFace string
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		counts[fields[0]]++
		if fields[0] == "g" {
			groups = append(groups, fields[1])
		}
		if fields[0] == "f" && firstFace == "" {
			firstFace = line
		}
	}

	if counts["o"] != 1 {
		t.Errorf("expected 1 object line, got %d", counts["o"])
	}
	for _, key := range []string{"v", "vt", "vn"} {
		if counts[key] != 8 {
			t.Errorf("expected 8 %q lines, got %d", key, counts[key])
		}
	}
	if counts["f"] != 12 {
		t.Errorf("expected 12 faces, got %d", counts["f"])
	}
	if strings.Join(groups, ",") != "bottom,side,top" {
		t.Errorf("unexpected groups %v", groups)
	}
	// Slot 1,2,0 of the bottom fan, 1-based.
	if firstFace != "f 2/2/2 3/3/3 1/1/1" {
		t.Errorf("unexpected first face %q", firstFace)
	}
}

func TestSaveOBJCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prism.obj")
	if err := Save(path, FormatOBJ, testMesh(t), "prism"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "# prismgen: 8 vertices, 12 triangles") {
		t.Errorf("unexpected header: %q", strings.SplitN(string(data), "\n", 2)[0])
	}
}

func TestSaveSTL(t *testing.T) {
	m := testMesh(t)
	path := filepath.Join(t.TempDir(), "prism.stl")
	if err := Save(path, FormatSTL, m, ""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	// Binary STL: 80 byte header, uint32 count, 50 bytes per triangle.
	want := int64(84 + 50*m.TriangleCount())
	if info.Size() != want {
		t.Errorf("STL size = %d, want %d", info.Size(), want)
	}
}

func TestTriangles(t *testing.T) {
	m := testMesh(t)
	tris := Triangles(m)
	if len(tris) != m.TriangleCount() {
		t.Fatalf("expected %d triangles, got %d", m.TriangleCount(), len(tris))
	}
	// Bottom faces point down.
	n := tris[0].Normal()
	if n.Y >= 0 {
		t.Errorf("first bottom triangle normal %v should point down", n)
	}
}

func TestSaveUnknownFormat(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "x.ply"), Format("ply"), testMesh(t), "")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}
