// Package main is the entry point for slippy, a terminal map viewer.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/dshills/slippy/internal/app"
	"github.com/dshills/slippy/internal/backend"
	"github.com/dshills/slippy/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	f, err := parseFlags(args, os.Stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	if f.version {
		fmt.Printf("slippy %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return 0
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	f.apply(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration:\n%v\n", err)
		return 1
	}

	level, err := app.ParseLogLevel(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	// The screen owns stdout, so logs only go to a file.
	var logOut io.Writer
	if cfg.Logging.File != "" {
		lf, err := app.OpenLogFile(cfg.Logging.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer lf.Close()
		logOut = lf
	}
	logger := app.NewLogger(level, logOut)

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	application, err := app.New(app.Options{
		ConfigPath: f.configPath,
		Config:     cfg,
		Plugins:    f.plugins,
		Watch:      f.configPath != "" && !f.noWatch,
		Terminal:   term,
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		if _, ok := <-signals; ok {
			_ = application.RequestQuit()
		}
	}()

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// flags holds parsed command line options.
type flags struct {
	fs *pflag.FlagSet

	configPath string
	logLevel   string
	logFile    string
	lat        float64
	lng        float64
	zoom       float64
	plugins    []string
	noWatch    bool
	disabled   bool
	version    bool
}

func parseFlags(args []string, out io.Writer) (*flags, error) {
	f := &flags{fs: pflag.NewFlagSet("slippy", pflag.ContinueOnError)}
	fs := f.fs
	fs.SetOutput(out)

	fs.StringVarP(&f.configPath, "config", "c", "", "Path to a TOML or YAML configuration file")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.logFile, "log-file", "", "Write logs to this file")
	fs.Float64Var(&f.lat, "lat", 0, "Initial center latitude")
	fs.Float64Var(&f.lng, "lng", 0, "Initial center longitude")
	fs.Float64VarP(&f.zoom, "zoom", "z", 0, "Initial zoom level")
	fs.StringArrayVarP(&f.plugins, "plugin", "p", nil, "Load a Lua plugin (repeatable)")
	fs.BoolVar(&f.noWatch, "no-watch", false, "Do not reload the configuration file on change")
	fs.BoolVar(&f.disabled, "no-keyboard", false, "Start with keyboard navigation disabled")
	fs.BoolVarP(&f.version, "version", "V", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(out, "slippy - terminal slippy map\n\n")
		fmt.Fprintf(out, "Usage: slippy [options]\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nKeys: arrows pan, +/- zoom, Shift accelerates, Esc closes a popup,\n")
		fmt.Fprintf(out, "      p/P open a popup, x closes it, e toggles navigation, q quits.\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return f, nil
}

// apply overrides cfg with the flags given on the command line.
func (f *flags) apply(cfg *config.Config) {
	if f.fs.Changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if f.fs.Changed("log-file") {
		cfg.Logging.File = f.logFile
	}
	if f.fs.Changed("lat") {
		cfg.Map.Lat = f.lat
	}
	if f.fs.Changed("lng") {
		cfg.Map.Lng = f.lng
	}
	if f.fs.Changed("zoom") {
		cfg.Map.Zoom = f.zoom
	}
	if f.disabled {
		cfg.Keyboard.Enabled = false
	}
}
