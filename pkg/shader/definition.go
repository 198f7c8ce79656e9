package shader

import (
	"fmt"
	"strings"
)

// Define is a preprocessor definition prepended to both shader stages
type Define struct {
	Name  string
	Value string
}

// Definition describes one post-processing pass: its GLSL stages, the
// preprocessor defines they expect and the uniforms they read.
type Definition struct {
	Name           string
	Description    string
	Defines        []Define
	Uniforms       []Uniform
	VertexShader   string
	FragmentShader string
}

// Clone returns a deep copy of the definition
func (d Definition) Clone() Definition {
	out := d

	if d.Defines != nil {
		out.Defines = make([]Define, len(d.Defines))
		copy(out.Defines, d.Defines)
	}

	if d.Uniforms != nil {
		out.Uniforms = make([]Uniform, len(d.Uniforms))
		for i, u := range d.Uniforms {
			out.Uniforms[i] = u.clone()
		}
	}

	return out
}

// Validate checks that the definition is complete and that every uniform
// holds a value of its declared type.
func (d Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDefinition)
	}
	if strings.TrimSpace(d.VertexShader) == "" {
		return fmt.Errorf("%w: %s has no vertex shader", ErrInvalidDefinition, d.Name)
	}
	if strings.TrimSpace(d.FragmentShader) == "" {
		return fmt.Errorf("%w: %s has no fragment shader", ErrInvalidDefinition, d.Name)
	}

	seen := make(map[string]bool, len(d.Uniforms))
	for _, u := range d.Uniforms {
		if u.Name == "" {
			return fmt.Errorf("%w: %s has an unnamed uniform", ErrInvalidDefinition, d.Name)
		}
		if seen[u.Name] {
			return fmt.Errorf("%w: %s declares uniform %s twice", ErrInvalidDefinition, d.Name, u.Name)
		}
		seen[u.Name] = true

		if err := u.Type.Check(u.Value); err != nil {
			return fmt.Errorf("%s.%s: %w", d.Name, u.Name, err)
		}
	}

	defined := make(map[string]bool, len(d.Defines))
	for _, def := range d.Defines {
		if def.Name == "" || strings.ContainsAny(def.Name, " \t\n") {
			return fmt.Errorf("%w: %s has a malformed define %q", ErrInvalidDefinition, d.Name, def.Name)
		}
		if defined[def.Name] {
			return fmt.Errorf("%w: %s defines %s twice", ErrInvalidDefinition, d.Name, def.Name)
		}
		defined[def.Name] = true
	}

	return nil
}

// Uniform returns the uniform with the given name
func (d *Definition) Uniform(name string) (*Uniform, bool) {
	for i := range d.Uniforms {
		if d.Uniforms[i].Name == name {
			return &d.Uniforms[i], true
		}
	}
	return nil, false
}

// Set stores v in the named uniform after checking its type
func (d *Definition) Set(name string, v interface{}) error {
	u, ok := d.Uniform(name)
	if !ok {
		return fmt.Errorf("%w: %s has no uniform %s", ErrUnknownUniform, d.Name, name)
	}
	if err := u.Type.Check(v); err != nil {
		return fmt.Errorf("%s.%s: %w", d.Name, name, err)
	}

	u.Value = v
	return nil
}

// SetFloat sets a float uniform
func (d *Definition) SetFloat(name string, v float64) error {
	return d.Set(name, v)
}

// SetVec2 sets a vec2 uniform
func (d *Definition) SetVec2(name string, v Vec2) error {
	return d.Set(name, v)
}

// SetFloats sets a float array uniform. The slice is copied.
func (d *Definition) SetFloats(name string, v []float64) error {
	dup := make([]float64, len(v))
	copy(dup, v)
	return d.Set(name, dup)
}

// Define returns the value of a preprocessor define
func (d *Definition) Define(name string) (string, bool) {
	for _, def := range d.Defines {
		if def.Name == name {
			return def.Value, true
		}
	}
	return "", false
}

// SetDefine replaces the value of a define, appending it if missing
func (d *Definition) SetDefine(name, value string) {
	for i := range d.Defines {
		if d.Defines[i].Name == name {
			d.Defines[i].Value = value
			return
		}
	}
	d.Defines = append(d.Defines, Define{Name: name, Value: value})
}

// VertexSource returns the vertex stage with the defines prepended
func (d Definition) VertexSource() string {
	return d.prefix() + d.VertexShader
}

// FragmentSource returns the fragment stage with the defines prepended
func (d Definition) FragmentSource() string {
	return d.prefix() + d.FragmentShader
}

func (d Definition) prefix() string {
	if len(d.Defines) == 0 {
		return ""
	}

	var b strings.Builder
	for _, def := range d.Defines {
		fmt.Fprintf(&b, "#define %s %s\n", def.Name, def.Value)
	}
	return b.String()
}
