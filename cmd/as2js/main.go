// Command as2js parses and compiles ActionScript-family source files
// through the as2js front end and reports diagnostics.
package main

import (
	"os"

	"github.com/as2js-go/as2js/cmd/as2js/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
