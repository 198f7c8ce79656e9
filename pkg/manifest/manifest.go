package manifest

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"postfx/internal/logger"
	"postfx/pkg/config"
	"postfx/pkg/kernel"
	"postfx/pkg/shader"
)

// Names of the two convolution variants in a manifest
const (
	ConvolutionX = shader.ConvolutionPass + "_x"
	ConvolutionY = shader.ConvolutionPass + "_y"
)

// Pass is one configured definition ready for the renderer
type Pass struct {
	Name       string // Unique name within the manifest
	Source     string // Registry pass it was built from
	Definition shader.Definition
}

// Manifest is the set of configured passes handed to the renderer.
// Passes are sorted by name; the renderer decides the order it runs them in.
type Manifest struct {
	Passes []Pass
}

// Builder configures registry definitions into a manifest
type Builder struct {
	registry *shader.Registry
	log      *logger.Logger
}

// NewBuilder creates a builder reading definitions from reg
func NewBuilder(reg *shader.Registry, log *logger.Logger) *Builder {
	if log == nil {
		log = logger.New("fatal", io.Discard)
	}
	return &Builder{
		registry: reg,
		log:      log,
	}
}

// Build produces the manifest for cfg. Every pass in cfg.Passes, or every
// registered pass when the list is empty, is fetched from the registry and
// has the configured values applied.
func (b *Builder) Build(cfg *config.Config) (*Manifest, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	names := cfg.Passes
	if len(names) == 0 {
		names = b.registry.Names()
	}

	m := &Manifest{}
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		if seen[name] {
			b.log.Warnf("pass %s listed twice, ignoring duplicate", name)
			continue
		}
		seen[name] = true

		def, err := b.registry.Get(name)
		if err != nil {
			return nil, err
		}

		passes, err := b.configure(def, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to configure pass %s: %w", name, err)
		}

		for _, p := range passes {
			b.log.Debugf("configured pass %s (%d uniforms, %d defines)", p.Name, len(p.Definition.Uniforms), len(p.Definition.Defines))
		}
		m.Passes = append(m.Passes, passes...)
	}

	sort.Slice(m.Passes, func(i, j int) bool {
		return m.Passes[i].Name < m.Passes[j].Name
	})

	b.log.Infof("manifest built with %d passes", len(m.Passes))
	return m, nil
}

// configure applies cfg to one definition. The convolution pass expands to
// one pass per blur axis.
func (b *Builder) configure(def shader.Definition, cfg *config.Config) ([]Pass, error) {
	var err error

	switch def.Name {
	case shader.CopyPass:
		err = def.SetFloat("opacity", cfg.Copy.Opacity)

	case shader.ThresholdPass:
		err = errors.Join(
			def.SetFloat("steps", cfg.Threshold.Steps),
			def.SetFloat("strength", cfg.Threshold.Strength),
			def.SetFloat("expo", cfg.Threshold.Expo),
			def.SetFloat("threshold", cfg.Threshold.Threshold),
			def.SetVec2("center", shader.Vec2{X: cfg.Threshold.Center[0], Y: cfg.Threshold.Center[1]}),
		)

	case shader.VignettePass:
		err = errors.Join(
			def.SetFloat("offset", cfg.Vignette.Offset),
			def.SetFloat("darkness", cfg.Vignette.Darkness),
		)

	case shader.ConvolutionPass:
		return b.convolution(def, cfg)
	}

	if err != nil {
		return nil, err
	}
	return []Pass{{Name: def.Name, Source: def.Name, Definition: def}}, nil
}

func (b *Builder) convolution(def shader.Definition, cfg *config.Config) ([]Pass, error) {
	k, err := kernel.Spec{Sigma: cfg.Kernel.Sigma, MaxSize: cfg.Kernel.MaxSize}.Build()
	if err != nil {
		if errors.Is(err, kernel.ErrKernelTooLarge) {
			b.log.Warnf("sigma %v too large for kernel size %d, use sigma <= %v",
				cfg.Kernel.Sigma, cfg.Kernel.MaxSize, kernel.MaxSigma(cfg.Kernel.MaxSize))
		}
		return nil, err
	}

	if err := shader.BindKernel(&def, k); err != nil {
		return nil, err
	}
	b.log.Debugf("built %d-tap kernel for sigma %v", k.Size(), k.Sigma())

	variants := []struct {
		name string
		axis shader.Axis
	}{
		{ConvolutionX, shader.Horizontal},
		{ConvolutionY, shader.Vertical},
	}

	passes := make([]Pass, 0, len(variants))
	for _, v := range variants {
		step, err := shader.BlurDirection(v.axis, cfg.Blur.Resolution)
		if err != nil {
			return nil, err
		}

		d := def.Clone()
		if err := d.SetVec2(shader.StepUniform, step); err != nil {
			return nil, err
		}
		passes = append(passes, Pass{Name: v.name, Source: def.Name, Definition: d})
	}

	return passes, nil
}

// Pass returns the pass with the given manifest name
func (m *Manifest) Pass(name string) (Pass, bool) {
	for _, p := range m.Passes {
		if p.Name == name {
			return p, true
		}
	}
	return Pass{}, false
}

// Names returns the pass names in manifest order
func (m *Manifest) Names() []string {
	names := make([]string, len(m.Passes))
	for i, p := range m.Passes {
		names[i] = p.Name
	}
	return names
}
