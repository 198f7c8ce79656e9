package manifest

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v2"

	"postfx/internal/util"
	"postfx/pkg/shader"
)

// FormatVersion is written to every encoded manifest
const FormatVersion = 1

// ErrMalformed is returned when a manifest document cannot be decoded
var ErrMalformed = errors.New("malformed manifest")

type manifestYAML struct {
	Version int        `yaml:"version"`
	Passes  []passYAML `yaml:"passes"`
}

type passYAML struct {
	Name           string        `yaml:"name"`
	Source         string        `yaml:"source"`
	Description    string        `yaml:"description,omitempty"`
	Defines        []defineYAML  `yaml:"defines,omitempty"`
	Uniforms       []uniformYAML `yaml:"uniforms"`
	VertexShader   string        `yaml:"vertex_shader"`
	FragmentShader string        `yaml:"fragment_shader"`
}

type defineYAML struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

type uniformYAML struct {
	Name  string      `yaml:"name"`
	Type  string      `yaml:"type"`
	Value interface{} `yaml:"value"`
}

// WriteYAML encodes the manifest as YAML
func (m *Manifest) WriteYAML(w io.Writer) error {
	doc := manifestYAML{Version: FormatVersion}

	for _, p := range m.Passes {
		d := p.Definition
		py := passYAML{
			Name:           p.Name,
			Source:         p.Source,
			Description:    d.Description,
			VertexShader:   d.VertexShader,
			FragmentShader: d.FragmentShader,
		}
		for _, def := range d.Defines {
			py.Defines = append(py.Defines, defineYAML{Name: def.Name, Value: def.Value})
		}
		for _, u := range d.Uniforms {
			py.Uniforms = append(py.Uniforms, uniformYAML{Name: u.Name, Type: string(u.Type), Value: encodeValue(u.Value)})
		}
		doc.Passes = append(doc.Passes, py)
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("error serializing manifest: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("error writing manifest: %w", err)
	}
	return nil
}

// ReadYAML decodes a manifest written by WriteYAML. Every pass is
// validated.
func ReadYAML(r io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading manifest: %w", err)
	}

	var doc manifestYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Version != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformed, doc.Version)
	}

	m := &Manifest{}
	for _, py := range doc.Passes {
		d := shader.Definition{
			Name:           py.Source,
			Description:    py.Description,
			VertexShader:   py.VertexShader,
			FragmentShader: py.FragmentShader,
		}
		for _, def := range py.Defines {
			d.Defines = append(d.Defines, shader.Define{Name: def.Name, Value: def.Value})
		}
		for _, uy := range py.Uniforms {
			typ := shader.UniformType(uy.Type)
			v, err := decodeValue(typ, uy.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s.%s: %v", ErrMalformed, py.Name, uy.Name, err)
			}
			d.Uniforms = append(d.Uniforms, shader.Uniform{Name: uy.Name, Type: typ, Value: v})
		}

		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("%w: pass %s: %v", ErrMalformed, py.Name, err)
		}
		m.Passes = append(m.Passes, Pass{Name: py.Name, Source: py.Source, Definition: d})
	}

	return m, nil
}

// WriteGLSL writes <pass>.vert and <pass>.frag for every pass into dir,
// with the defines already prepended. It returns the written paths.
func (m *Manifest) WriteGLSL(dir string) ([]string, error) {
	var paths []string

	for _, p := range m.Passes {
		stages := []struct {
			ext    string
			source string
		}{
			{".vert", p.Definition.VertexSource()},
			{".frag", p.Definition.FragmentSource()},
		}

		for _, s := range stages {
			path, err := util.WriteFile(dir, p.Name+s.ext, []byte(s.source))
			if err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
	}

	return paths, nil
}

// encodeValue maps a uniform value onto plain YAML types
func encodeValue(v interface{}) interface{} {
	if vec, ok := v.(shader.Vec2); ok {
		return []float64{vec.X, vec.Y}
	}
	return v
}

// decodeValue converts a decoded YAML value back to the Go type the
// uniform type expects.
func decodeValue(typ shader.UniformType, raw interface{}) (interface{}, error) {
	switch typ {
	case shader.UniformTexture:
		if raw != nil {
			return nil, fmt.Errorf("texture uniform must be null, got %v", raw)
		}
		return nil, nil

	case shader.UniformFloat:
		return toFloat(raw)

	case shader.UniformVec2:
		values, err := toFloats(raw)
		if err != nil {
			return nil, err
		}
		if len(values) != 2 {
			return nil, fmt.Errorf("vec2 needs 2 components, got %d", len(values))
		}
		return shader.Vec2{X: values[0], Y: values[1]}, nil

	case shader.UniformFloatArray:
		return toFloats(raw)

	default:
		return nil, fmt.Errorf("unknown uniform type %q", string(typ))
	}
}

func toFloat(raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", raw)
	}
}

func toFloats(raw interface{}) ([]float64, error) {
	if raw == nil {
		return []float64{}, nil
	}

	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", raw)
	}

	out := make([]float64, len(items))
	for i, item := range items {
		f, err := toFloat(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}
