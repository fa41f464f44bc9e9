// Package preset reads and writes standalone prism definitions. A preset
// holds only the prism section of the configuration and may be written in
// YAML or TOML.
package preset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/prismgen/internal/config"
)

// ErrUnsupportedExt is returned for preset files that are neither YAML nor
// TOML.
var ErrUnsupportedExt = errors.New("preset: unsupported file extension")

// Encoding is a preset file syntax.
type Encoding int

const (
	YAML Encoding = iota
	TOML
)

func (e Encoding) String() string {
	if e == TOML {
		return "toml"
	}
	return "yaml"
}

// EncodingFor picks the encoding from a file extension.
func EncodingFor(path string) (Encoding, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedExt, filepath.Ext(path))
	}
}

// Load reads the preset at path over base. Keys absent from the file keep
// their value from base; unknown keys are an error.
func Load(path string, base config.PrismConfig) (config.PrismConfig, error) {
	enc, err := EncodingFor(path)
	if err != nil {
		return base, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading preset: %w", err)
	}
	p, err := Decode(data, enc, base)
	if err != nil {
		return base, fmt.Errorf("preset %s: %w", path, err)
	}
	return p, nil
}

// Decode parses data over base.
func Decode(data []byte, enc Encoding, base config.PrismConfig) (config.PrismConfig, error) {
	p := base
	// Slices are replaced rather than merged.
	p.Heights = append([]float32(nil), base.Heights...)
	p.Summits = append(p.Summits[:0:0], base.Summits...)

	switch enc {
	case TOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return base, err
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
			return base, err
		}
	}
	return p, nil
}

// Encode renders p in the given encoding.
func Encode(p config.PrismConfig, enc Encoding) ([]byte, error) {
	if enc == TOML {
		return toml.Marshal(p)
	}
	return yaml.Marshal(p)
}

// Save writes p to path, choosing the encoding from the extension.
func Save(path string, p config.PrismConfig) error {
	enc, err := EncodingFor(path)
	if err != nil {
		return err
	}
	data, err := Encode(p, enc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
