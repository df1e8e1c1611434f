package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/job-fit/internal/catalog"
	"github.com/spigell/job-fit/internal/interview"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the bundled catalog size",
	Run: func(cmd *cobra.Command, _ []string) {
		c := catalog.Default()
		fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s (%d questions, %d roles, %d companies)\n",
			app, version, len(interview.Questions()), len(c.Roles), len(c.Companies))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
