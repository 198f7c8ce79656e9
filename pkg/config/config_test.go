package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}

	if cfg.Kernel.Sigma != 4.0 || cfg.Kernel.MaxSize != 25 {
		t.Errorf("kernel = %+v, want sigma 4 max 25", cfg.Kernel)
	}
	if cfg.Blur.Resolution != 512 {
		t.Errorf("blur.resolution = %d, want 512", cfg.Blur.Resolution)
	}
	if cfg.Threshold.Center != [2]float64{0.5, 0.5} {
		t.Errorf("threshold.center = %v, want [0.5 0.5]", cfg.Threshold.Center)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("LoadConfig(absent) error = nil, want error")
	}
	if cfg == nil || cfg.Kernel.Sigma != 4.0 {
		t.Errorf("LoadConfig(absent) = %+v, want defaults", cfg)
	}
}

func TestLoadConfigPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "postfx.yaml")
	data := []byte("kernel:\n  sigma: 2.5\nvignette:\n  darkness: 0.3\npasses: [convolution, vignette]\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig = %v", err)
	}

	if cfg.Kernel.Sigma != 2.5 {
		t.Errorf("kernel.sigma = %v, want 2.5", cfg.Kernel.Sigma)
	}
	if cfg.Kernel.MaxSize != 25 {
		t.Errorf("kernel.max_size = %d, want default 25", cfg.Kernel.MaxSize)
	}
	if cfg.Vignette.Darkness != 0.3 || cfg.Vignette.Offset != 1.0 {
		t.Errorf("vignette = %+v, want darkness 0.3 offset 1", cfg.Vignette)
	}
	if len(cfg.Passes) != 2 || cfg.Passes[0] != "convolution" {
		t.Errorf("passes = %v, want [convolution vignette]", cfg.Passes)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("kernel: [oops"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err == nil {
		t.Fatal("LoadConfig(malformed) error = nil, want error")
	}
	if cfg.Kernel.Sigma != 4.0 {
		t.Errorf("LoadConfig(malformed) sigma = %v, want default 4", cfg.Kernel.Sigma)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")

	cfg := DefaultConfig()
	cfg.Kernel.Sigma = 1.5
	cfg.Threshold.Center = [2]float64{0.25, 0.75}
	cfg.Log.Level = "debug"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig = %v", err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig = %v", err)
	}
	if got.Kernel.Sigma != 1.5 || got.Threshold.Center != [2]float64{0.25, 0.75} || got.Log.Level != "debug" {
		t.Errorf("round trip = %+v", got)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero resolution", func(c *Config) { c.Blur.Resolution = 0 }},
		{"opacity above one", func(c *Config) { c.Copy.Opacity = 1.5 }},
		{"negative opacity", func(c *Config) { c.Copy.Opacity = -0.1 }},
		{"zero steps", func(c *Config) { c.Threshold.Steps = 0 }},
		{"strength above one", func(c *Config) { c.Threshold.Strength = 2 }},
		{"nan steps", func(c *Config) { c.Threshold.Steps = math.NaN() }},
		{"nan strength", func(c *Config) { c.Threshold.Strength = math.NaN() }},
		{"inf steps", func(c *Config) { c.Threshold.Steps = math.Inf(1) }},
		{"nan darkness", func(c *Config) { c.Vignette.Darkness = math.NaN() }},
		{"inf center", func(c *Config) { c.Threshold.Center[1] = math.Inf(1) }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate() = nil, want error", tt.name)
		}
	}
}
