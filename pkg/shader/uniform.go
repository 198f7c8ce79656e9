package shader

import (
	"errors"
	"fmt"
)

// Errors returned when reading or writing uniforms and passes
var (
	ErrUnknownUniform    = errors.New("unknown uniform")
	ErrUniformType       = errors.New("uniform type mismatch")
	ErrInvalidDefinition = errors.New("invalid pass definition")
	ErrUnknownPass       = errors.New("unknown pass")
	ErrDuplicatePass     = errors.New("pass already registered")
)

// UniformType is the renderer's type tag for a uniform
type UniformType string

// Uniform types understood by the renderer
const (
	UniformTexture    UniformType = "t"   // sampler2D, bound by the renderer
	UniformFloat      UniformType = "f"   // float
	UniformVec2       UniformType = "v2"  // vec2
	UniformFloatArray UniformType = "fv1" // float[]
)

// Vec2 is a two-component vector uniform value
type Vec2 struct {
	X float64
	Y float64
}

// Uniform is a named shader input with its default value.
// Value is nil for textures, float64 for floats, Vec2 for vectors and
// []float64 for float arrays.
type Uniform struct {
	Name  string
	Type  UniformType
	Value interface{}
}

// Valid reports whether t is a known uniform type
func (t UniformType) Valid() bool {
	switch t {
	case UniformTexture, UniformFloat, UniformVec2, UniformFloatArray:
		return true
	}
	return false
}

// Check verifies that v can be stored in a uniform of type t
func (t UniformType) Check(v interface{}) error {
	ok := false
	switch t {
	case UniformTexture:
		ok = v == nil
	case UniformFloat:
		_, ok = v.(float64)
	case UniformVec2:
		_, ok = v.(Vec2)
	case UniformFloatArray:
		_, ok = v.([]float64)
	default:
		return fmt.Errorf("%w: unknown type %q", ErrUniformType, string(t))
	}

	if !ok {
		return fmt.Errorf("%w: %T cannot be stored in a %q uniform", ErrUniformType, v, string(t))
	}
	return nil
}

// clone copies the uniform, including any float array it holds
func (u Uniform) clone() Uniform {
	if values, ok := u.Value.([]float64); ok {
		dup := make([]float64, len(values))
		copy(dup, values)
		u.Value = dup
	}
	return u
}
