// Package main provides the CLI entrypoint for kvgen.
//
// kvgen generates persisted, observable accessors:
//   - Finds package-level vars marked with //kvgen:persist <Owner>
//   - Validates and classifies each declaration
//   - Writes getter/setter methods on the owner type, backed by a kvstore.Store
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/afero"

	"github.com/kominak/ObservableUserDefault/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], cli.Env{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Fs:     afero.NewOsFs(),
		Color:  !color.NoColor,
	}))
}
