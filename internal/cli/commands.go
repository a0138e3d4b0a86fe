package cli

import (
	"fmt"

	"github.com/sourcegraph/conc/iter"
	"go.uber.org/zap"

	"github.com/kominak/ObservableUserDefault/internal/analyze"
	"github.com/kominak/ObservableUserDefault/internal/config"
	"github.com/kominak/ObservableUserDefault/internal/diagnostic"
	"github.com/kominak/ObservableUserDefault/internal/gen"
	"github.com/kominak/ObservableUserDefault/internal/plan"
)

type packageArgs struct {
	Patterns []string `positional-arg-name:"packages" description:"Package patterns (default: .)"`
}

// packageOutput is the generation result of one package.
type packageOutput struct {
	plan  *plan.ResolvedPlan
	files []gen.GeneratedFile
	dir   string
}

// pipelineOptions selects where generated files go.
type pipelineOptions struct {
	// outDir replaces the package directory when set.
	outDir string
	// sidecars writes unformatted sources next to the output when
	// formatting fails.
	sidecars bool
}

// pipeline loads, resolves and generates every matched package. It reports
// all diagnostics and fails when any of them is an error.
func (a *app) pipeline(patterns []string, opts pipelineOptions) ([]packageOutput, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	pkgs, err := a.env.Load(a.logger, a.opts.Dir, patterns)
	if err != nil {
		return nil, err
	}

	// Packages are independent; iter.MapErr keeps the input order.
	outputs, err := iter.MapErr(pkgs, func(pkg **analyze.Package) (packageOutput, error) {
		return a.processPackage(*pkg, cfg, opts)
	})
	if err != nil {
		return nil, err
	}

	var diags diagnostic.Diagnostics
	for _, out := range outputs {
		diags.Merge(out.plan.Diagnostics)
	}

	a.report.diagnostics(diags)

	if diags.HasErrors() {
		a.report.summary(len(diags.Errors), len(diags.Warnings))
		return nil, errFailed
	}

	return outputs, nil
}

// processPackage resolves one package and, when it has no errors, generates its files.
func (a *app) processPackage(pkg *analyze.Package, cfg *config.Config, opts pipelineOptions) (packageOutput, error) {
	p, err := plan.NewResolver(pkg, cfg, a.logger).Resolve()
	if err != nil {
		return packageOutput{}, fmt.Errorf("resolving %s: %w", pkg.Path, err)
	}

	out := packageOutput{plan: p, dir: pkg.Dir}
	if opts.outDir != "" {
		out.dir = opts.outDir
	}

	genCfg := gen.GeneratorConfig{FileSuffix: cfg.FileSuffix}
	if opts.sidecars {
		genCfg.DebugDir = out.dir
	}

	if !p.Diagnostics.HasErrors() {
		files, err := gen.NewGenerator(genCfg, a.env.Fs, a.logger).Generate(p)
		if err != nil {
			return packageOutput{}, fmt.Errorf("generating %s: %w", pkg.Path, err)
		}

		out.files = files
	}

	a.logger.Debug("processed package",
		zap.String("package", pkg.Path),
		zap.Int("properties", p.PropertyCount()),
		zap.Int("files", len(out.files)))

	return out, nil
}

type genCommand struct {
	app *app

	Out    string      `long:"out" short:"o" description:"Write generated files to this directory instead of the package directory"`
	DryRun bool        `long:"dry-run" short:"n" description:"Print generated files instead of writing them"`
	Args   packageArgs `positional-args:"yes"`
}

func (c *genCommand) Execute([]string) error {
	outputs, err := c.app.pipeline(c.Args.Patterns, pipelineOptions{outDir: c.Out, sidecars: !c.DryRun})
	if err != nil {
		return err
	}

	for _, out := range outputs {
		if c.DryRun {
			for _, f := range out.files {
				c.app.report.file(f)
			}

			continue
		}

		if len(out.files) == 0 {
			continue
		}

		if err := gen.WriteFiles(c.app.env.Fs, out.files, out.dir); err != nil {
			return err
		}

		for _, f := range out.files {
			c.app.logger.Info("wrote file", zap.String("dir", out.dir), zap.String("file", f.Filename))
			c.app.report.wrote(out.dir, f.Filename)
		}
	}

	return nil
}

type checkCommand struct {
	app *app

	Out  string      `long:"out" short:"o" description:"Directory the generated files were written to"`
	Args packageArgs `positional-args:"yes"`
}

func (c *checkCommand) Execute([]string) error {
	outputs, err := c.app.pipeline(c.Args.Patterns, pipelineOptions{outDir: c.Out})
	if err != nil {
		return err
	}

	outdated := 0

	for _, out := range outputs {
		statuses, err := gen.CheckFiles(c.app.env.Fs, out.files, out.dir)
		if err != nil {
			return err
		}

		for _, s := range gen.Outdated(statuses) {
			c.app.report.outdated(out.dir, s)
			outdated++
		}
	}

	if outdated > 0 {
		return errFailed
	}

	return nil
}

type analyzeCommand struct {
	app *app

	Dump bool        `long:"dump" description:"Print the full resolved plan of every package"`
	Args packageArgs `positional-args:"yes"`
}

func (c *analyzeCommand) Execute([]string) error {
	outputs, err := c.app.pipeline(c.Args.Patterns, pipelineOptions{})
	if err != nil {
		return err
	}

	for _, out := range outputs {
		if c.Dump {
			c.app.report.dump(out.plan)
			continue
		}

		c.app.report.plan(out.plan)
	}

	return nil
}
