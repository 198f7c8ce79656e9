package shader

import (
	"fmt"
	"strconv"

	"postfx/pkg/kernel"
)

// Names of the built-in passes
const (
	CopyPass        = "copy"
	ConvolutionPass = "convolution"
	ThresholdPass   = "threshold"
	VignettePass    = "vignette"
)

// Names of the convolution defines and uniforms touched by BindKernel
const (
	KernelSizeFloat = "KERNEL_SIZE_FLOAT"
	KernelSizeInt   = "KERNEL_SIZE_INT"
	KernelUniform   = "cKernel"
	StepUniform     = "uImageIncrement"
)

// DefaultResolution is the texture width the default uImageIncrement is a
// single texel of.
const DefaultResolution = 512

// Axis selects the direction of one blur pass
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Copy returns the texture copy pass
func Copy() Definition {
	return Definition{
		Name:        CopyPass,
		Description: "Copies tDiffuse, scaled by opacity",
		Uniforms: []Uniform{
			{Name: "tDiffuse", Type: UniformTexture},
			{Name: "opacity", Type: UniformFloat, Value: 1.0},
		},
		VertexShader:   passThroughVertexShader,
		FragmentShader: copyFragmentShader,
	}
}

// Convolution returns the separable Gaussian blur pass. The kernel
// uniform is empty until a kernel is bound with BindKernel.
func Convolution() Definition {
	return Definition{
		Name:        ConvolutionPass,
		Description: "One axis of a separable Gaussian blur",
		Defines: []Define{
			{Name: KernelSizeFloat, Value: formatSizeFloat(kernel.DefaultMaxSize)},
			{Name: KernelSizeInt, Value: strconv.Itoa(kernel.DefaultMaxSize)},
		},
		Uniforms: []Uniform{
			{Name: "tDiffuse", Type: UniformTexture},
			{Name: StepUniform, Type: UniformVec2, Value: Vec2{X: 1.0 / DefaultResolution, Y: 0}},
			{Name: KernelUniform, Type: UniformFloatArray, Value: []float64{}},
		},
		VertexShader:   convolutionVertexShader,
		FragmentShader: convolutionFragmentShader,
	}
}

// Threshold returns the radial threshold bloom pass
func Threshold() Definition {
	return Definition{
		Name:        ThresholdPass,
		Description: "Radial bloom of texels brighter than threshold",
		Uniforms: []Uniform{
			{Name: "tDiffuse", Type: UniformTexture},
			{Name: "tMap", Type: UniformTexture},
			{Name: "steps", Type: UniformFloat, Value: 100.0},
			{Name: "strength", Type: UniformFloat, Value: 0.95},
			{Name: "expo", Type: UniformFloat, Value: 5.0},
			{Name: "threshold", Type: UniformFloat, Value: 0.7},
			{Name: "center", Type: UniformVec2, Value: Vec2{X: 0.5, Y: 0.5}},
		},
		VertexShader:   passThroughVertexShader,
		FragmentShader: thresholdFragmentShader,
	}
}

// Vignette returns the edge darkening pass
func Vignette() Definition {
	return Definition{
		Name:        VignettePass,
		Description: "Darkens the image toward its edges",
		Uniforms: []Uniform{
			{Name: "tDiffuse", Type: UniformTexture},
			{Name: "offset", Type: UniformFloat, Value: 1.0},
			{Name: "darkness", Type: UniformFloat, Value: 1.0},
		},
		VertexShader:   passThroughVertexShader,
		FragmentShader: vignetteFragmentShader,
	}
}

// BindKernel stores the kernel weights in cKernel and sizes the fragment
// loop to match them.
func BindKernel(d *Definition, k kernel.Kernel) error {
	if k.Size() == 0 {
		return fmt.Errorf("%w: %s: empty kernel", ErrInvalidDefinition, d.Name)
	}
	if _, ok := d.Define(KernelSizeInt); !ok {
		return fmt.Errorf("%w: %s has no %s define", ErrInvalidDefinition, d.Name, KernelSizeInt)
	}
	if _, ok := d.Define(KernelSizeFloat); !ok {
		return fmt.Errorf("%w: %s has no %s define", ErrInvalidDefinition, d.Name, KernelSizeFloat)
	}

	if err := d.Set(KernelUniform, k.Weights()); err != nil {
		return err
	}

	d.SetDefine(KernelSizeFloat, formatSizeFloat(k.Size()))
	d.SetDefine(KernelSizeInt, strconv.Itoa(k.Size()))
	return nil
}

// BlurDirection returns the uImageIncrement for one blur axis: a single
// texel step of a texture with the given resolution.
func BlurDirection(axis Axis, resolution int) (Vec2, error) {
	if resolution <= 0 {
		return Vec2{}, fmt.Errorf("%w: resolution must be positive, got %d", ErrInvalidDefinition, resolution)
	}

	step := 1.0 / float64(resolution)
	switch axis {
	case Horizontal:
		return Vec2{X: step}, nil
	case Vertical:
		return Vec2{Y: step}, nil
	default:
		return Vec2{}, fmt.Errorf("%w: unknown blur axis %v", ErrInvalidDefinition, axis)
	}
}

// formatSizeFloat renders n as a GLSL float literal, e.g. 25.0
func formatSizeFloat(n int) string {
	return strconv.Itoa(n) + ".0"
}
