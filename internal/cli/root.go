// Package cli wires the cobra command trees for the strata and
// create-strata-app binaries.
package cli

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stratacms/strata/internal/logging"
	"github.com/stratacms/strata/internal/version"
)

// Alias version variables for build-time injection via main.
var (
	Version   = version.Version
	GitCommit = version.GitCommit
	BuildDate = version.BuildDate
)

// Global flags
var (
	globalNoColor   bool
	globalQuiet     bool
	globalVerbosity int
)

// rootCmd is the base command of the strata CLI.
var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Headless CMS toolkit",
	Long: `strata is the command-line entry point for strata projects.

Use "strata init [project-name]" to scaffold a new project from a
template. Templates are fetched from the strata template repository,
cached locally, and materialized with your project's name substituted
into files and paths.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyGlobalFlags()
	},
}

// Execute runs the strata CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// ExecuteCreateApp runs the create-strata-app CLI, a standalone
// scaffolding entry point with the same behavior as "strata init".
func ExecuteCreateApp() {
	if err := newCreateAppCommand().Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// newCreateAppCommand builds the create-strata-app root command.
func newCreateAppCommand() *cobra.Command {
	flags := &createFlags{}
	cmd := &cobra.Command{
		Use:   "create-strata-app [project-name]",
		Short: "Scaffold a new strata project",
		Long: `create-strata-app scaffolds a new strata project from a template.

Run it with no arguments for an interactive flow, or pass the project
name and --template to skip the prompts.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			applyGlobalFlags()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args, flags)
		},
	}
	registerGlobalFlags(cmd)
	registerCreateFlags(cmd, flags)
	return cmd
}

// registerGlobalFlags registers the persistent output flags.
func registerGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&globalNoColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().BoolVarP(&globalQuiet, "quiet", "q", false, "Suppress non-error output")
	cmd.PersistentFlags().CountVarP(&globalVerbosity, "verbose", "v", "Increase log verbosity (repeatable)")
}

// applyGlobalFlags configures logging and color from the global flags.
func applyGlobalFlags() {
	logging.Setup(globalVerbosity)
	if globalNoColor {
		color.NoColor = true
	}
}

func init() {
	registerGlobalFlags(rootCmd)

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
