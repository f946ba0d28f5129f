package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "as2js",
	Short: "ActionScript front-end parser and resolver",
	Long: `as2js is a Go implementation of an ActionScript-family front-end
compiler: lexer, parser, package database, and semantic resolver.

It parses and resolves source against the configured dialect gates
(spec §4.2) and package database (spec §4.4), reporting diagnostics.
It does not execute scripts or generate output code.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("rc", "", "path to an .rc resources file (default: search standard locations)")
	rootCmd.PersistentFlags().String("db", "", "path to a package database file")
}
