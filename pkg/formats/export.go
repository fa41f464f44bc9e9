package formats

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/prismgen/pkg/mesh"
)

// ErrUnknownFormat is returned for export formats other than OBJ and STL.
var ErrUnknownFormat = errors.New("formats: unknown export format")

// Format names an export file format.
type Format string

const (
	FormatOBJ Format = "obj"
	FormatSTL Format = "stl"
)

// ParseFormat accepts a format name or file extension, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "obj":
		return FormatOBJ, nil
	case "stl":
		return FormatSTL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Save writes m to path in the given format. name labels the object where
// the format supports it.
func Save(path string, format Format, m *mesh.Mesh, name string) error {
	switch format {
	case FormatOBJ:
		return SaveOBJ(path, m, name)
	case FormatSTL:
		return SaveSTL(path, m)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
