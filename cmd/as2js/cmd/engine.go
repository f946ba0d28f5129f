package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/as2js-go/as2js/internal/database"
	"github.com/as2js-go/as2js/internal/resources"
	"github.com/as2js-go/as2js/pkg/as2js"
)

// newEngine builds an Engine from the --rc/--db persistent flags shared by
// the parse and compile subcommands.
func newEngine(cmd *cobra.Command) (*as2js.Engine, error) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	var opts []as2js.EngineOption

	rcPath, _ := cmd.Flags().GetString("rc")
	if rcPath != "" {
		res, err := resources.LoadFrom(rcPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, as2js.WithResources(res))
	}

	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath != "" {
		db, err := database.Load(dbPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, as2js.WithDatabase(db))
	}

	return as2js.New(opts...)
}
