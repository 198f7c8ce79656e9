package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"postfx/internal/logger"
	"postfx/pkg/config"
	"postfx/pkg/shader"
)

func main() {
	configPath := flag.String("config", "postfx.yaml", "Path to configuration file")
	logLevel := flag.String("log", "", "Log level (debug, info, warn, error); overrides the config file")
	flag.Usage = usage
	flag.Parse()

	// Missing config is fine, defaults apply
	cfg, cfgErr := config.LoadConfig(*configPath)
	if cfgErr != nil && !errors.Is(cfgErr, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", cfgErr)
		os.Exit(1)
	}

	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	log, err := newLogger(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if cfgErr != nil {
		log.Debugf("%v", cfgErr)
	}

	app := &App{
		Config:   cfg,
		Registry: shader.NewDefaultRegistry(),
		Log:      log,
		Out:      os.Stdout,
	}

	if err := app.Run(flag.Args()); err != nil {
		log.Error(err)
		log.Close()
		os.Exit(1)
	}
}

// newLogger logs to console, never stdout: stdout carries command output
// such as the exported manifest.
func newLogger(cfg config.LogConfig, console io.Writer) (*logger.Logger, error) {
	if cfg.File != "" {
		return logger.NewMultiLogger(cfg.Level, cfg.File, console)
	}
	l := logger.NewLogger(cfg.Level)
	l.SetOutput(console)
	return l, nil
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: postfx [flags] <command> [command flags]

Commands:
  kernel   print the Gaussian weights for a sigma
  passes   list the registered passes and their uniforms
  export   write the configured pass manifest as YAML and/or GLSL files
  init     write a default configuration file

Flags:
`)
	flag.PrintDefaults()
}
