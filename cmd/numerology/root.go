package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/phrazzld/numerology-api/internal/config"
)

// newRootCmd builds the command tree. Output goes to out; cobra's own
// messages go to errOut.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "numerology",
		Short:         "Pythagorean numerology engine and API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				return os.Setenv(config.ConfigFileEnv, configPath)
			}
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a YAML config file (overrides "+config.ConfigFileEnv+")")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newReportCmd(),
		newCompatCmd(),
		newNumberCmd(),
	)
	return root
}
