package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/kominak/ObservableUserDefault/internal/analyze"
	"github.com/kominak/ObservableUserDefault/internal/config"
)

// DefaultConfigFile is loaded from the working directory when --config is not given.
const DefaultConfigFile = "kvgen.yaml"

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// errFailed is returned by commands that already reported their failure.
var errFailed = errors.New("failed")

// LoadFunc loads the packages matching patterns, relative to dir.
type LoadFunc func(logger *zap.Logger, dir string, patterns []string) ([]*analyze.Package, error)

// Env is everything a run touches outside the process.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	// Fs holds the configuration and receives generated files.
	Fs afero.Fs
	// Load defaults to LoadPackages.
	Load LoadFunc
	// Color enables colored diagnostics.
	Color bool
}

// LoadPackages loads packages from disk with go/packages.
func LoadPackages(logger *zap.Logger, dir string, patterns []string) ([]*analyze.Package, error) {
	return analyze.NewLoader(logger).LoadPackages(dir, patterns...)
}

type globalOptions struct {
	Config  string `long:"config" short:"c" description:"Configuration file (default: kvgen.yaml when present)"`
	Dir     string `long:"dir" short:"C" default:"." description:"Directory package patterns are resolved against"`
	Verbose bool   `long:"verbose" short:"v" description:"Log debug output to stderr"`
	NoColor bool   `long:"no-color" description:"Disable colored diagnostics"`
}

type app struct {
	env    Env
	opts   globalOptions
	logger *zap.Logger
	report *reporter
}

// Run parses args (without the program name), runs the selected command and
// returns the process exit code.
func Run(args []string, env Env) int {
	if env.Load == nil {
		env.Load = LoadPackages
	}

	if env.Fs == nil {
		env.Fs = afero.NewOsFs()
	}

	a := &app{
		env:    env,
		logger: zap.NewNop(),
		report: newReporter(env.Stdout, env.Stderr, env.Color),
	}

	parser := flags.NewParser(&a.opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "kvgen"
	parser.CommandHandler = a.handle

	mustAddCommand(parser, "gen", "Generate accessors",
		"Generate getter and setter methods for every var carrying a //kvgen:persist directive.",
		&genCommand{app: a})
	mustAddCommand(parser, "check", "Report missing or stale generated files",
		"Regenerate in memory and compare with the files on disk. Exits non-zero when any file is out of date.",
		&checkCommand{app: a})
	mustAddCommand(parser, "analyze", "List persisted properties",
		"List every persisted property with the storage strategy chosen for it.",
		&analyzeCommand{app: a})

	_, err := parser.ParseArgs(args)

	var flagsErr *flags.Error

	switch {
	case err == nil:
		return ExitOK
	case flags.WroteHelp(err):
		fmt.Fprintln(env.Stdout, err)
		return ExitOK
	case errors.Is(err, errFailed):
		return ExitFailure
	case errors.As(err, &flagsErr):
		fmt.Fprintln(env.Stderr, err)
		parser.WriteHelp(env.Stderr)

		return ExitUsage
	default:
		a.report.failure(err)
		return ExitFailure
	}
}

func mustAddCommand(parser *flags.Parser, name, short, long string, data any) {
	if _, err := parser.AddCommand(name, short, long, data); err != nil {
		panic(err)
	}
}

// handle sets up logging and output before any command runs.
func (a *app) handle(command flags.Commander, args []string) error {
	a.report = newReporter(a.env.Stdout, a.env.Stderr, a.env.Color && !a.opts.NoColor)

	if a.opts.Verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.DisableCaller = true

		logger, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}

		a.logger = logger

		defer func() { _ = logger.Sync() }()
	}

	if command == nil {
		return nil
	}

	return command.Execute(args)
}

// loadConfig loads --config, or kvgen.yaml from --dir when present, and
// validates it.
func (a *app) loadConfig() (*config.Config, error) {
	path := a.opts.Config
	if path == "" {
		candidate := filepath.Join(a.opts.Dir, DefaultConfigFile)

		_, err := a.env.Fs.Stat(candidate)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return config.Default(), nil
		case err != nil:
			return nil, fmt.Errorf("checking %s: %w", candidate, err)
		}

		path = candidate
	}

	cfg, err := config.LoadFile(a.env.Fs, path)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("loaded config", zap.String("path", path))

	diags := config.Validate(cfg)
	a.report.diagnostics(*diags)

	if diags.HasErrors() {
		return nil, errFailed
	}

	return cfg, nil
}
