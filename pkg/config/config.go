package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v2"
)

// Config represents the main configuration
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Kernel    KernelConfig    `yaml:"kernel"`
	Blur      BlurConfig      `yaml:"blur"`
	Copy      CopyConfig      `yaml:"copy"`
	Threshold ThresholdConfig `yaml:"threshold"`
	Vignette  VignetteConfig  `yaml:"vignette"`
	Passes    []string        `yaml:"passes"` // Passes to include in the manifest; empty means all
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Optional: also log to this file
}

// KernelConfig contains Gaussian kernel configuration
type KernelConfig struct {
	Sigma   float64 `yaml:"sigma"`
	MaxSize int     `yaml:"max_size"` // Capacity of the cKernel uniform array
}

// BlurConfig contains convolution pass configuration
type BlurConfig struct {
	Resolution int `yaml:"resolution"` // Texture size the step vector is one texel of
}

// CopyConfig contains copy pass configuration
type CopyConfig struct {
	Opacity float64 `yaml:"opacity"`
}

// ThresholdConfig contains radial threshold pass configuration
type ThresholdConfig struct {
	Steps     float64    `yaml:"steps"`
	Strength  float64    `yaml:"strength"`
	Expo      float64    `yaml:"expo"`
	Threshold float64    `yaml:"threshold"`
	Center    [2]float64 `yaml:"center"`
}

// VignetteConfig contains vignette pass configuration
type VignetteConfig struct {
	Offset   float64 `yaml:"offset"`
	Darkness float64 `yaml:"darkness"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Kernel: KernelConfig{
			Sigma:   4.0,
			MaxSize: 25,
		},
		Blur: BlurConfig{
			Resolution: 512,
		},
		Copy: CopyConfig{
			Opacity: 1.0,
		},
		Threshold: ThresholdConfig{
			Steps:     100.0,
			Strength:  0.95,
			Expo:      5.0,
			Threshold: 0.7,
			Center:    [2]float64{0.5, 0.5},
		},
		Vignette: VignetteConfig{
			Offset:   1.0,
			Darkness: 1.0,
		},
		Passes: []string{},
	}
}

// LoadConfig loads the configuration from a file
func LoadConfig(filePath string) (*Config, error) {
	// Create default config
	config := DefaultConfig()

	// Read file
	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config file not found, using defaults: %w", err)
	}

	// Parse YAML
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("error parsing config: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	// Convert to YAML
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	// Write file
	err = os.WriteFile(filePath, data, 0644)
	if err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate checks values the passes cannot use. Kernel sigma and size are
// left to the kernel builder, which reports them with its own errors.
func (c *Config) Validate() error {
	if c.Blur.Resolution <= 0 {
		return fmt.Errorf("blur.resolution must be positive, got %d", c.Blur.Resolution)
	}
	if c.Copy.Opacity < 0 || c.Copy.Opacity > 1 {
		return fmt.Errorf("copy.opacity must be in [0, 1], got %v", c.Copy.Opacity)
	}
	if c.Threshold.Steps <= 0 {
		return fmt.Errorf("threshold.steps must be positive, got %v", c.Threshold.Steps)
	}
	if c.Threshold.Strength < 0 || c.Threshold.Strength > 1 {
		return fmt.Errorf("threshold.strength must be in [0, 1], got %v", c.Threshold.Strength)
	}

	values := map[string]float64{
		"copy.opacity":        c.Copy.Opacity,
		"threshold.steps":     c.Threshold.Steps,
		"threshold.strength":  c.Threshold.Strength,
		"threshold.expo":      c.Threshold.Expo,
		"threshold.threshold": c.Threshold.Threshold,
		"threshold.center.x":  c.Threshold.Center[0],
		"threshold.center.y":  c.Threshold.Center[1],
		"vignette.offset":     c.Vignette.Offset,
		"vignette.darkness":   c.Vignette.Darkness,
	}
	for name, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite, got %v", name, v)
		}
	}

	return nil
}
