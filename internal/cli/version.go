package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints build version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("strata %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}
