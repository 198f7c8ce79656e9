package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"postfx/internal/logger"
	"postfx/internal/util"
	"postfx/pkg/config"
	"postfx/pkg/kernel"
	"postfx/pkg/manifest"
	"postfx/pkg/shader"
)

// App carries the state shared by the commands
type App struct {
	Config   *config.Config
	Registry *shader.Registry
	Log      *logger.Logger
	Out      io.Writer
}

// Run dispatches args[0] to its command
func (a *App) Run(args []string) error {
	if len(args) == 0 {
		return errors.New("no command given, expected one of: kernel, passes, export, init")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "kernel":
		return a.runKernel(rest)
	case "passes":
		return a.runPasses(rest)
	case "export":
		return a.runExport(rest)
	case "init":
		return a.runInit(rest)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *App) runKernel(args []string) error {
	fs := flag.NewFlagSet("kernel", flag.ContinueOnError)
	fs.SetOutput(a.Out)
	sigma := fs.Float64("sigma", a.Config.Kernel.Sigma, "Standard deviation in texels")
	maxSize := fs.Int("max", a.Config.Kernel.MaxSize, "Maximum number of weights")
	if err := fs.Parse(args); err != nil {
		return err
	}

	k, err := kernel.Spec{Sigma: *sigma, MaxSize: *maxSize}.Build()
	if err != nil {
		return fmt.Errorf("failed to build kernel: %w", err)
	}

	fmt.Fprintf(a.Out, "sigma: %v\nsize: %d\n", k.Sigma(), k.Size())
	for i, w := range k.Weights() {
		fmt.Fprintf(a.Out, "%3d %+4d %.8f\n", i, i-k.Center(), w)
	}
	return nil
}

func (a *App) runPasses(args []string) error {
	fs := flag.NewFlagSet("passes", flag.ContinueOnError)
	fs.SetOutput(a.Out)
	if err := fs.Parse(args); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	for _, name := range a.Registry.Names() {
		d, err := a.Registry.Get(name)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%s\t%s\n", d.Name, d.Description)
		for _, def := range d.Defines {
			fmt.Fprintf(tw, "\t#define %s %s\n", def.Name, def.Value)
		}
		for _, u := range d.Uniforms {
			fmt.Fprintf(tw, "\t%s\t%s\t%v\n", u.Name, u.Type, formatValue(u.Value))
		}
	}
	return tw.Flush()
}

func (a *App) runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(a.Out)
	out := fs.String("o", "-", "Manifest output file, - for stdout")
	glslDir := fs.String("glsl", "", "Also write <pass>.vert/.frag into this directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := manifest.NewBuilder(a.Registry, a.Log).Build(a.Config)
	if err != nil {
		return fmt.Errorf("failed to build manifest: %w", err)
	}

	if *out == "-" {
		if err := m.WriteYAML(a.Out); err != nil {
			return err
		}
	} else {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", *out, err)
		}
		if err := m.WriteYAML(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", *out, err)
		}
		a.Log.Infof("manifest written to %s", *out)
	}

	if *glslDir != "" {
		paths, err := m.WriteGLSL(*glslDir)
		if err != nil {
			return fmt.Errorf("failed to export GLSL: %w", err)
		}
		a.Log.Infof("wrote %d shader files to %s", len(paths), *glslDir)
	}

	return nil
}

func (a *App) runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(a.Out)
	out := fs.String("o", "postfx.yaml", "Configuration file to write")
	force := fs.Bool("force", false, "Overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if util.FileExists(*out) && !*force {
		return fmt.Errorf("%s already exists, use -force to overwrite", *out)
	}

	if err := config.SaveConfig(config.DefaultConfig(), *out); err != nil {
		return err
	}
	a.Log.Infof("default configuration written to %s", *out)
	return nil
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case shader.Vec2:
		return fmt.Sprintf("(%v, %v)", val.X, val.Y)
	case []float64:
		if len(val) == 0 {
			return "[]"
		}
		return fmt.Sprintf("%d values", len(val))
	default:
		return fmt.Sprint(val)
	}
}
