package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var parseExpression bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a source file and print its AST",
	Long: `Parse runs the lexer and parser only (no semantic resolution) and
prints the resulting AST as a debug tree.

If no file is provided, reads from stdin. Use -e to parse a single
expression supplied directly on the command line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false, "parse an expression from the command line")
}

func runParse(cmd *cobra.Command, args []string) error {
	filename, source, err := readInput("<expression>", parseExpression, args)
	if err != nil {
		return err
	}

	engine, err := newEngine(cmd)
	if err != nil {
		return fmt.Errorf("loading engine configuration: %w", err)
	}

	prog, diags, err := engine.Parse(filename, source)
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}

	errorCount := 0
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d)
		if d.IsError() {
			errorCount++
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("parsing failed with %d error(s)", errorCount)
	}

	fmt.Println(prog.String())
	return nil
}

func readInput(defaultName string, expression bool, args []string) (filename, source string, err error) {
	switch {
	case expression:
		if len(args) == 0 {
			return "", "", fmt.Errorf("no expression provided")
		}
		return defaultName, args[0], nil
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("reading file: %w", err)
		}
		return args[0], string(data), nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}
}
