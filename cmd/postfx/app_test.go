package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"postfx/internal/logger"
	"postfx/pkg/config"
	"postfx/pkg/kernel"
	"postfx/pkg/manifest"
	"postfx/pkg/shader"
)

func newTestApp() (*App, *bytes.Buffer, *bytes.Buffer) {
	var out, logs bytes.Buffer
	return &App{
		Config:   config.DefaultConfig(),
		Registry: shader.NewDefaultRegistry(),
		Log:      logger.New("info", &logs),
		Out:      &out,
	}, &out, &logs
}

func TestRunKernel(t *testing.T) {
	app, out, _ := newTestApp()

	if err := app.Run([]string{"kernel", "-sigma", "1"}); err != nil {
		t.Fatalf("Run(kernel) = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "size: 7\n") {
		t.Errorf("output missing size:\n%s", got)
	}
	if !strings.Contains(got, "  3   +0 0.39905") {
		t.Errorf("output missing center weight:\n%s", got)
	}
	if lines := strings.Count(got, "\n"); lines != 9 {
		t.Errorf("output has %d lines, want 9:\n%s", lines, got)
	}
}

func TestRunKernelTooLarge(t *testing.T) {
	app, _, _ := newTestApp()

	err := app.Run([]string{"kernel", "-sigma", "10"})
	if !errors.Is(err, kernel.ErrKernelTooLarge) {
		t.Errorf("Run(kernel -sigma 10) = %v, want ErrKernelTooLarge", err)
	}
}

func TestRunPasses(t *testing.T) {
	app, out, _ := newTestApp()

	if err := app.Run([]string{"passes"}); err != nil {
		t.Fatalf("Run(passes) = %v", err)
	}

	got := out.String()
	for _, want := range []string{"convolution", "copy", "threshold", "vignette", "#define KERNEL_SIZE_INT 25", "uImageIncrement", "(0.5, 0.5)"} {
		if !strings.Contains(got, want) {
			t.Errorf("passes output missing %q:\n%s", want, got)
		}
	}
}

func TestRunExport(t *testing.T) {
	app, _, logs := newTestApp()
	app.Config.Kernel.Sigma = 2

	dir := t.TempDir()
	out := filepath.Join(dir, "passes.yaml")
	glsl := filepath.Join(dir, "glsl")

	if err := app.Run([]string{"export", "-o", out, "-glsl", glsl}); err != nil {
		t.Fatalf("Run(export) = %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("Open = %v", err)
	}
	defer f.Close()

	m, err := manifest.ReadYAML(f)
	if err != nil {
		t.Fatalf("ReadYAML = %v", err)
	}
	p, ok := m.Pass(manifest.ConvolutionX)
	if !ok {
		t.Fatalf("exported manifest missing %s", manifest.ConvolutionX)
	}
	if v, _ := p.Definition.Define(shader.KernelSizeInt); v != "13" {
		t.Errorf("%s = %q, want 13", shader.KernelSizeInt, v)
	}

	if _, err := os.Stat(filepath.Join(glsl, "threshold.frag")); err != nil {
		t.Errorf("threshold.frag not written: %v", err)
	}
	if !strings.Contains(logs.String(), "wrote 10 shader files") {
		t.Errorf("GLSL export not logged:\n%s", logs.String())
	}
}

func TestRunExportStdout(t *testing.T) {
	app, out, _ := newTestApp()
	app.Config.Passes = []string{"copy"}

	if err := app.Run([]string{"export"}); err != nil {
		t.Fatalf("Run(export) = %v", err)
	}
	if !strings.HasPrefix(out.String(), "version: 1\n") {
		t.Errorf("stdout export is not a manifest:\n%s", out.String())
	}
}

func TestRunExportStdoutWithLogFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Log.File = filepath.Join(t.TempDir(), "postfx.log")

	var out, console bytes.Buffer
	log, err := newLogger(cfg.Log, &console)
	if err != nil {
		t.Fatalf("newLogger = %v", err)
	}
	app := &App{
		Config:   cfg,
		Registry: shader.NewDefaultRegistry(),
		Log:      log,
		Out:      &out,
	}

	err = app.Run([]string{"export"})
	log.Close()
	if err != nil {
		t.Fatalf("Run(export) = %v", err)
	}

	if strings.Contains(out.String(), "manifest built") {
		t.Errorf("log lines leaked into stdout:\n%s", out.String())
	}
	if _, err := manifest.ReadYAML(&out); err != nil {
		t.Errorf("ReadYAML(stdout) = %v", err)
	}
	if !strings.Contains(console.String(), "manifest built") {
		t.Errorf("console log = %q, want build message", console.String())
	}
	data, err := os.ReadFile(cfg.Log.File)
	if err != nil {
		t.Fatalf("ReadFile(log) = %v", err)
	}
	if !strings.Contains(string(data), "manifest built") {
		t.Errorf("log file = %q, want build message", data)
	}
}

func TestRunInit(t *testing.T) {
	app, _, _ := newTestApp()
	path := filepath.Join(t.TempDir(), "postfx.yaml")

	if err := app.Run([]string{"init", "-o", path}); err != nil {
		t.Fatalf("Run(init) = %v", err)
	}
	if err := app.Run([]string{"init", "-o", path}); err == nil {
		t.Error("Run(init) over existing file = nil, want error")
	}
	if err := app.Run([]string{"init", "-o", path, "-force"}); err != nil {
		t.Errorf("Run(init -force) = %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig = %v", err)
	}
	if cfg.Kernel.Sigma != config.DefaultConfig().Kernel.Sigma {
		t.Errorf("written sigma = %v, want default", cfg.Kernel.Sigma)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	app, _, _ := newTestApp()

	if err := app.Run(nil); err == nil {
		t.Error("Run(nil) = nil, want error")
	}
	if err := app.Run([]string{"render"}); err == nil {
		t.Error("Run(render) = nil, want error")
	}
}
