package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var compileExpression bool

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Parse and resolve a source file, reporting diagnostics",
	Long: `Compile runs the full pipeline: lexer, parser, and semantic
resolver (name binding, type resolution, overload resolution, module
loading against the configured package database).

If no file is provided, reads from stdin. Use -e to compile a single
expression supplied directly on the command line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().BoolVarP(&compileExpression, "expression", "e", false, "compile an expression from the command line")
}

func runCompile(cmd *cobra.Command, args []string) error {
	filename, source, err := readInput("<expression>", compileExpression, args)
	if err != nil {
		return err
	}

	engine, err := newEngine(cmd)
	if err != nil {
		return fmt.Errorf("loading engine configuration: %w", err)
	}

	_, cerr := engine.Compile(filename, source)
	if cerr != nil {
		for _, d := range cerr.Diagnostics {
			fmt.Fprintln(os.Stderr, d)
		}
		return fmt.Errorf("%s failed with %d error(s)", cerr.Stage, len(cerr.Errors()))
	}

	fmt.Printf("%s: no errors\n", filename)
	return nil
}
