package palette

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ulikunitz/xz"
	"gopkg.in/yaml.v3"
)

// MaxFileSize bounds how much a palette file may expand to once decompressed.
const MaxFileSize = 10 * 1024 * 1024

// colorsKey is the optional wrapper key of a palette document.
const colorsKey = "colors"

// Format is a palette file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the encoding from the file extension, looking
// through an outer ".xz".
func FormatFromPath(path string) (Format, bool, error) {
	compressed := false
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xz" {
		compressed = true
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}

	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, compressed, nil
	case ".toml":
		return FormatTOML, compressed, nil
	case ".json":
		return FormatJSON, compressed, nil
	default:
		return "", compressed, fmt.Errorf("unsupported palette file extension %q (supported: .yaml, .yml, .toml, .json, optionally .xz)", ext)
	}
}

// LoadFile reads a palette file. The document is either a map of colour
// names to descriptions, or holds that map under a "colors" key.
func LoadFile(path string) (Palette, error) {
	format, compressed, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) // #nosec G304 - palette path supplied by the user
	if err != nil {
		return nil, fmt.Errorf("failed to open palette: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if compressed {
		xzr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = xzr
	}

	data, err := io.ReadAll(newLimitedReader(r, MaxFileSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read palette %s: %w", path, err)
	}

	p, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("palette %s: %w", path, err)
	}
	return p, nil
}

// LoadFiles reads and merges palette files in order; later files win.
func LoadFiles(paths ...string) (Palette, error) {
	palettes := make([]Palette, 0, len(paths))
	for _, path := range paths {
		p, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		palettes = append(palettes, p)
	}
	return Merge(palettes...), nil
}

// Parse decodes a palette document in the given format.
func Parse(data []byte, format Format) (Palette, error) {
	switch format {
	case FormatYAML:
		return parseYAML(data)
	case FormatTOML:
		var raw map[string]any
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		return fromGeneric(raw)
	case FormatJSON:
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return fromGeneric(raw)
	default:
		return nil, fmt.Errorf("unsupported palette format %q", format)
	}
}

func fromGeneric(raw map[string]any) (Palette, error) {
	if nested, ok := raw[colorsKey].(map[string]any); ok {
		raw = nested
	}

	p := make(Palette, len(raw))
	for name, v := range raw {
		d, err := Decode(v)
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", name, err)
		}
		p[name] = d
	}
	return p, nil
}

func parseYAML(data []byte) (Palette, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return Palette{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: palette document must be a map (line %d)", ErrInvalidColorDescription, root.Line)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == colorsKey && root.Content[i+1].Kind == yaml.MappingNode {
			root = root.Content[i+1]
			break
		}
	}

	p := make(Palette, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		d, err := DecodeNode(root.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", name, err)
		}
		p[name] = d
	}
	return p, nil
}

// limitedReader fails once more than its budget has been read.
type limitedReader struct {
	r         io.Reader
	limit     int64
	remaining int64
}

func newLimitedReader(r io.Reader, maxBytes int64) *limitedReader {
	return &limitedReader{r: r, limit: maxBytes, remaining: maxBytes}
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if l.remaining <= 0 {
		// Budget spent: only fail if the source still has data.
		var probe [1]byte
		n, err := l.r.Read(probe[:])
		if n > 0 {
			return 0, fmt.Errorf("palette exceeds size limit of %d bytes", l.limit)
		}
		return 0, err
	}
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	return n, err
}
