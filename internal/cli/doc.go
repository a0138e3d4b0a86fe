// Package cli implements the kvgen command line: the gen, check and analyze
// subcommands over the analyze, plan and gen packages.
package cli
