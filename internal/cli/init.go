package cli

import (
	"github.com/spf13/cobra"
)

var initFlags = &createFlags{}

// initCmd scaffolds a new project; it is the same flow as the
// standalone create-strata-app binary.
var initCmd = &cobra.Command{
	Use:   "init [project-name]",
	Short: "Scaffold a new strata project from a template",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd, args, initFlags)
	},
}

func init() {
	registerCreateFlags(initCmd, initFlags)
}
