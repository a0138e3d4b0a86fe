package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/k0kubun/pp/v3"

	"github.com/kominak/ObservableUserDefault/internal/diagnostic"
	"github.com/kominak/ObservableUserDefault/internal/gen"
	"github.com/kominak/ObservableUserDefault/internal/plan"
)

// reporter writes human-readable output. Diagnostics go to stderr,
// everything else to stdout.
type reporter struct {
	stdout io.Writer
	stderr io.Writer

	errorColor   *color.Color
	warningColor *color.Color
	infoColor    *color.Color
	okColor      *color.Color

	printer *pp.PrettyPrinter
}

func newReporter(stdout, stderr io.Writer, enabled bool) *reporter {
	r := &reporter{
		stdout:       stdout,
		stderr:       stderr,
		errorColor:   color.New(color.FgRed, color.Bold),
		warningColor: color.New(color.FgYellow),
		infoColor:    color.New(color.FgCyan),
		okColor:      color.New(color.FgGreen),
		printer:      pp.New(),
	}

	r.printer.SetColoringEnabled(enabled)

	for _, c := range []*color.Color{r.errorColor, r.warningColor, r.infoColor, r.okColor} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return r
}

func (r *reporter) severityColor(s diagnostic.Severity) *color.Color {
	switch s {
	case diagnostic.SeverityError:
		return r.errorColor
	case diagnostic.SeverityWarning:
		return r.warningColor
	default:
		return r.infoColor
	}
}

func (r *reporter) diagnostics(d diagnostic.Diagnostics) {
	for _, diag := range d.All() {
		fmt.Fprintf(r.stderr, "%s %s\n", r.severityColor(diag.Severity).Sprint(diag.Severity.String()+":"), diag)
	}
}

func (r *reporter) summary(errors, warnings int) {
	fmt.Fprintf(r.stderr, "%s %d error(s), %d warning(s); no files written\n",
		r.errorColor.Sprint("failed:"), errors, warnings)
}

func (r *reporter) failure(err error) {
	fmt.Fprintf(r.stderr, "%s %v\n", r.errorColor.Sprint("error:"), err)
}

func (r *reporter) wrote(dir, filename string) {
	fmt.Fprintf(r.stdout, "%s %s\n", r.okColor.Sprint("wrote"), filepath.Join(dir, filename))
}

func (r *reporter) file(f gen.GeneratedFile) {
	fmt.Fprintf(r.stdout, "// %s\n%s\n", f.Filename, f.Content)
}

func (r *reporter) outdated(dir string, s gen.FileStatus) {
	fmt.Fprintf(r.stderr, "%s %s\n", r.warningColor.Sprint(s.State.String()+":"), filepath.Join(dir, s.Filename))
}

func (r *reporter) plan(p *plan.ResolvedPlan) {
	for _, o := range p.Owners {
		for _, prop := range o.Properties {
			c := prop.Classification

			typ := c.BaseType
			if c.Optional {
				typ = "*" + typ
			}

			fmt.Fprintf(r.stdout, "%s.%s\t%s\t%s\tdefault=%s\tkey=%q\n",
				o.Name, prop.Name, typ, c.Strategy, c.DefaultValue, prop.StoreKey)
		}
	}
}

func (r *reporter) dump(p *plan.ResolvedPlan) {
	fmt.Fprintln(r.stdout, r.printer.Sprint(p))
}
